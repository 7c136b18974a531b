package history

import (
	"context"
	"fmt"
	"time"

	"github.com/abdulachik/descricoes/internal/catalog"
	"github.com/abdulachik/descricoes/internal/db"
)

// Summary is the analytics view of an account's history.
type Summary struct {
	Total            int64           `json:"total"`
	MostUsedCategory string          `json:"most_used_category"`
	MostUsedTemplate string          `json:"most_used_template"`
	FavoriteTemplate string          `json:"favorite_template"`
	LastActivity     *time.Time      `json:"last_activity,omitempty"`
	Categories       []db.ValueCount `json:"categories"`
	Templates        []db.ValueCount `json:"templates"`
}

// Summarize combines the rollup with the category and template distributions.
func (r *Recorder) Summarize(ctx context.Context, accountID int64) (*Summary, error) {
	rollup, err := r.Rollup(ctx, accountID)
	if err != nil {
		return nil, err
	}

	total, err := r.Count(ctx, accountID)
	if err != nil {
		return nil, err
	}

	categories, err := r.store.CountDescriptionsByCategory(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}

	templates, err := r.store.CountDescriptionsByTemplate(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("count by template: %w", err)
	}

	s := &Summary{
		Total:            total,
		MostUsedCategory: rollup.MostUsedCategory,
		MostUsedTemplate: rollup.MostUsedTemplate,
		Categories:       categories,
		Templates:        templates,
	}
	if rollup.MostUsedTemplate != "" {
		s.FavoriteTemplate = catalog.Name(rollup.MostUsedTemplate)
	}
	if rollup.LastActivity.Valid {
		t := rollup.LastActivity.Time
		s.LastActivity = &t
	}
	return s, nil
}
