package plugin

import (
	"context"
	"fmt"
	"time"

	"github.com/LeLocTai/unityhub-launcher/internal/editors"
	"github.com/LeLocTai/unityhub-launcher/internal/models"
	"github.com/LeLocTai/unityhub-launcher/internal/projects"
	"github.com/LeLocTai/unityhub-launcher/internal/query"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const snapshotIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Snapshot is one immutable result of Reload. Queries and activations read
// a single Snapshot and never observe a reload in progress.
type Snapshot struct {
	ID            string
	BuiltAt       time.Time
	Registry      *editors.Registry
	Projects      []*models.Project
	HubExecutable string
	Warnings      []error

	// EditorRoots and ProjectsRoot are the directories this snapshot scanned.
	EditorRoots  []string
	ProjectsRoot string

	caseInsensitive bool
	byKey           map[string]*models.Project
	engine          *query.Engine
}

func newSnapshotID() (string, error) {
	id, err := gonanoid.Generate(snapshotIDAlphabet, 12)
	if err != nil {
		return "", fmt.Errorf("failed to generate snapshot id: %w", err)
	}
	return id, nil
}

// Lookup finds a project by path using the same normalization as indexing.
func (s *Snapshot) Lookup(path string) (*models.Project, bool) {
	if s == nil {
		return nil, false
	}
	p, ok := s.byKey[projects.PathKey(projects.CleanPath(path), s.caseInsensitive)]
	return p, ok
}

// Search runs a query against this snapshot.
func (s *Snapshot) Search(ctx context.Context, text string) ([]query.Result, error) {
	return s.engine.Search(ctx, text)
}
