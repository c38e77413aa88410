package query

import (
	"fmt"

	"github.com/LeLocTai/unityhub-launcher/internal/editors"
	"github.com/LeLocTai/unityhub-launcher/internal/models"
)

// ProjectPathFlag is the command-line flag both the editor and the Hub
// accept to open a project.
const ProjectPathFlag = "-projectPath"

// Target is a resolved launch: run Executable with Args.
type Target struct {
	Executable string
	Args       []string

	// UsedFallback is true when the required editor is missing and the
	// fallback launcher was chosen instead.
	UsedFallback bool
}

// ResolveTarget picks what should open p: the editor for its required
// version, otherwise fallback. With neither it returns an error wrapping
// models.ErrNoLauncher.
func ResolveTarget(p *models.Project, reg *editors.Registry, fallback string) (Target, error) {
	args := []string{ProjectPathFlag, p.Path}

	if editor, ok := reg.Lookup(p.RequiredVersion); ok {
		return Target{Executable: editor.Path, Args: args}, nil
	}
	if fallback != "" {
		return Target{Executable: fallback, Args: args, UsedFallback: true}, nil
	}

	return Target{}, fmt.Errorf("editor %s: %w", p.RequiredVersion, models.ErrNoLauncher)
}
