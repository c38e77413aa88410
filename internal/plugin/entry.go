package plugin

import (
	"fmt"

	"github.com/LeLocTai/unityhub-launcher/internal/models"
	"github.com/LeLocTai/unityhub-launcher/internal/query"
)

// Ref points back at the project behind an Entry.
type Ref struct {
	SnapshotID string `json:"snapshot"`
	Path       string `json:"path"`
}

// Entry is one row shown by the host.
type Entry struct {
	Title    string          `json:"title"`
	SubTitle string          `json:"subtitle"`
	Ref      Ref             `json:"ref"`
	Score    int             `json:"score"`
	Project  *models.Project `json:"project"`
}

func newEntry(snapshotID string, r query.Result) Entry {
	return Entry{
		Title:    r.Project.Name,
		SubTitle: SubTitle(r.Project),
		Ref:      Ref{SnapshotID: snapshotID, Path: r.Project.Path},
		Score:    r.Score,
		Project:  r.Project,
	}
}

// SubTitle renders the favorite marker, the missing-version marker, the
// required version padded to 12 columns, a tab, and the path.
func SubTitle(p *models.Project) string {
	favorite := "  "
	if p.IsFavorite {
		favorite = "★ "
	}
	installed := " "
	if !p.IsVersionInstalled {
		installed = "❌"
	}
	return fmt.Sprintf("%s%s%-12s\t%s", favorite, installed, p.RequiredVersion, p.Path)
}
