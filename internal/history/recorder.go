// Package history persists generated descriptions and derives per-account usage
// statistics from them.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abdulachik/descricoes/internal/db"
	"github.com/abdulachik/descricoes/internal/prompt"
)

// DefaultLimit is used when ListFor is called without a positive limit.
const DefaultLimit = 20

// Recorder writes and reads generation history.
type Recorder struct {
	store *db.Store
	now   func() time.Time
}

// Config holds configuration for the recorder.
type Config struct {
	Store *db.Store
	Now   func() time.Time // Optional clock (default: time.Now)
}

// New creates a new Recorder.
func New(cfg Config) *Recorder {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Recorder{store: cfg.Store, now: now}
}

// Record stores one successful generation and refreshes the account rollup in
// the same transaction.
func (r *Recorder) Record(ctx context.Context, accountID int64, in prompt.ProductInput, output, format string) (int64, error) {
	createdAt := r.now().UTC()

	var id int64
	err := r.store.InTx(ctx, func(tx *sql.Tx) error {
		q := r.store.WithTx(tx)

		var err error
		id, err = q.CreateDescription(ctx, db.CreateDescriptionParams{
			AccountID:       accountID,
			ProductName:     in.Name,
			Category:        in.Category,
			Tone:            in.Tone,
			Keywords:        in.Keywords,
			Size:            prompt.NormalizeSize(in.Size),
			TemplateID:      in.TemplateID,
			IncludeHashtags: in.IncludeHashtags,
			IncludeSpecs:    in.IncludeSpecs,
			Output:          output,
			Format:          format,
			CreatedAt:       createdAt,
		})
		if err != nil {
			return fmt.Errorf("insert description: %w", err)
		}

		return refreshRollup(ctx, q, accountID, createdAt)
	})
	if err != nil {
		return 0, err
	}

	slog.Info("description recorded",
		"account_id", accountID,
		"description_id", id,
		"category", in.Category,
		"template", in.TemplateID,
	)
	return id, nil
}

// refreshRollup recomputes the most used fields from every stored record.
func refreshRollup(ctx context.Context, q *db.Queries, accountID int64, at time.Time) error {
	facets, err := q.ListDescriptionFacets(ctx, accountID)
	if err != nil {
		return fmt.Errorf("list facets: %w", err)
	}

	categories := make([]string, len(facets))
	templates := make([]string, len(facets))
	for i, f := range facets {
		categories[i] = f.Category
		templates[i] = f.TemplateID
	}

	err = q.UpsertAnalytics(ctx, db.UpsertAnalyticsParams{
		AccountID:         accountID,
		TotalDescriptions: int64(len(facets)),
		MostUsedCategory:  MostFrequent(categories),
		MostUsedTemplate:  MostFrequent(templates),
		LastActivity:      at,
	})
	if err != nil {
		return fmt.Errorf("update analytics: %w", err)
	}
	return nil
}

// ListFor returns the account's records, newest first.
func (r *Recorder) ListFor(ctx context.Context, accountID int64, limit int) ([]db.Description, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	items, err := r.store.ListDescriptions(ctx, db.ListDescriptionsParams{
		AccountID: accountID,
		Limit:     int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list descriptions: %w", err)
	}
	return items, nil
}

// Get returns one description owned by the account.
func (r *Recorder) Get(ctx context.Context, accountID, id int64) (db.Description, error) {
	d, err := r.store.GetDescription(ctx, db.GetDescriptionParams{ID: id, AccountID: accountID})
	if err != nil {
		return db.Description{}, db.NotFound(err)
	}
	return d, nil
}

// Count returns how many records the account owns.
func (r *Recorder) Count(ctx context.Context, accountID int64) (int64, error) {
	n, err := r.store.CountDescriptions(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("count descriptions: %w", err)
	}
	return n, nil
}

// Clear removes every record of the account and resets its rollup.
func (r *Recorder) Clear(ctx context.Context, accountID int64) (int64, error) {
	var removed int64
	err := r.store.InTx(ctx, func(tx *sql.Tx) error {
		q := r.store.WithTx(tx)

		var err error
		removed, err = q.DeleteDescriptions(ctx, accountID)
		if err != nil {
			return fmt.Errorf("delete descriptions: %w", err)
		}
		if err := q.DeleteAnalytics(ctx, accountID); err != nil {
			return fmt.Errorf("delete analytics: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("history cleared", "account_id", accountID, "removed", removed)
	return removed, nil
}

// Rollup returns the stored rollup. Accounts without records get an empty one.
func (r *Recorder) Rollup(ctx context.Context, accountID int64) (db.Analytics, error) {
	a, err := r.store.GetAnalytics(ctx, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Analytics{AccountID: accountID}, nil
	}
	if err != nil {
		return db.Analytics{}, fmt.Errorf("get analytics: %w", err)
	}
	return a, nil
}

// MostFrequent returns the value with the highest count. Ties go to the value
// seen first. An empty input yields "".
func MostFrequent(values []string) string {
	counts := make(map[string]int, len(values))
	best, bestCount := "", 0
	for _, v := range values {
		counts[v]++
	}
	for _, v := range values {
		if c := counts[v]; c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}
