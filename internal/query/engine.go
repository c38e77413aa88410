// Package query ranks indexed projects against free-text queries and
// resolves what to launch for a selected project.
package query

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/LeLocTai/unityhub-launcher/internal/models"
)

const (
	// FavoriteBonus is added to every favorite project.
	FavoriteBonus = 100

	// MaxRecencyBonus is the recency bonus of a project modified today.
	MaxRecencyBonus = 50

	// RecencyDecayPerDay is subtracted from MaxRecencyBonus per whole day.
	RecencyDecayPerDay = 3
)

// Result is one ranked project.
type Result struct {
	Project       *models.Project
	Score         int
	FuzzyScore    int
	FavoriteBonus int
	RecencyBonus  int
}

// Engine searches an immutable project list.
type Engine struct {
	projects   []*models.Project
	matcher    Matcher
	now        func() time.Time
	cache      *Cache
	snapshotID string
}

// Option configures an Engine.
type Option func(*Engine)

// WithMatcher replaces the default fuzzy matcher.
func WithMatcher(m Matcher) Option {
	return func(e *Engine) {
		if m != nil {
			e.matcher = m
		}
	}
}

// WithClock sets the time source used for recency.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithCache shares match results across engines built over the snapshot
// identified by snapshotID.
func WithCache(c *Cache, snapshotID string) Option {
	return func(e *Engine) {
		if snapshotID != "" {
			e.cache = c
			e.snapshotID = snapshotID
		}
	}
}

// NewEngine creates an Engine over projects. The slice is not copied and
// must not be modified afterwards.
func NewEngine(projects []*models.Project, options ...Option) *Engine {
	e := &Engine{
		projects: projects,
		matcher:  FuzzyMatcher{},
		now:      time.Now,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Len returns the number of searchable projects.
func (e *Engine) Len() int {
	return len(e.projects)
}

// Search returns projects matching text, best first. An empty text
// matches every project. On cancellation it returns ctx.Err() and no
// results.
func (e *Engine) Search(ctx context.Context, text string) ([]Result, error) {
	text = strings.TrimSpace(text)

	matches, err := e.match(ctx, text)
	if err != nil {
		return nil, err
	}

	now := e.now()
	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, e.rank(e.projects[m.index], m.score, now))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return less(results[i], results[j])
	})

	return results, nil
}

func (e *Engine) match(ctx context.Context, text string) ([]match, error) {
	if text == "" {
		all := make([]match, len(e.projects))
		for i := range e.projects {
			all[i] = match{index: i}
		}
		return all, nil
	}

	if cached, ok := e.cache.get(e.snapshotID, text); ok {
		return cached, nil
	}

	var matches []match
	for i, p := range e.projects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		score := e.matcher.Score(text, p.Name)
		if score <= 0 {
			continue
		}
		matches = append(matches, match{index: i, score: score})
	}

	e.cache.add(e.snapshotID, text, matches)
	return matches, nil
}

func (e *Engine) rank(p *models.Project, fuzzyScore int, now time.Time) Result {
	r := Result{
		Project:      p,
		FuzzyScore:   fuzzyScore,
		RecencyBonus: RecencyBonus(p.LastModified, now),
	}
	if p.IsFavorite {
		r.FavoriteBonus = FavoriteBonus
	}
	r.Score = r.FuzzyScore + r.FavoriteBonus + r.RecencyBonus
	return r
}

// RecencyBonus returns max(0, 50 - 3*days) where days is the number of
// whole days between modified and now. Future timestamps count as today.
func RecencyBonus(modified, now time.Time) int {
	days := int(now.Sub(modified) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	bonus := MaxRecencyBonus - RecencyDecayPerDay*days
	if bonus < 0 {
		return 0
	}
	return bonus
}

// less orders by score descending, then name case-insensitively, then path.
func less(a, b Result) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	an, bn := strings.ToLower(a.Project.Name), strings.ToLower(b.Project.Name)
	if an != bn {
		return an < bn
	}
	return a.Project.Path < b.Project.Path
}
