package app

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/abdulachik/descricoes/internal/db"
	"github.com/abdulachik/descricoes/internal/export"
	"github.com/abdulachik/descricoes/internal/generator"
	"github.com/abdulachik/descricoes/internal/health"
	"github.com/abdulachik/descricoes/internal/history"
	"github.com/abdulachik/descricoes/internal/prompt"
	"github.com/abdulachik/descricoes/internal/quota"
)

// Result is a successful generation.
type Result struct {
	RecordID      int64        `json:"id"`
	Text          string       `json:"text"`
	Formatted     string       `json:"formatted"`
	Format        string       `json:"format"`
	Prompt        string       `json:"prompt"`
	Quota         quota.Report `json:"quota"`
	WordCount     int          `json:"word_count"`
	WordCeiling   int          `json:"word_ceiling"`
	WithinCeiling bool         `json:"within_ceiling"`
}

// Preview validates the input and returns the compiled prompt without using
// quota or calling the provider.
func (a *App) Preview(in prompt.ProductInput) (string, error) {
	if err := validateInput(in); err != nil {
		return "", err
	}
	return prompt.Compile(in), nil
}

// Generate runs the full pipeline: validate, compile, check quota, call the
// provider once and record the result. When the quota denies the request the
// provider is not called and nothing is written.
func (a *App) Generate(ctx context.Context, sess Session, in prompt.ProductInput, mc generator.ModelConfig) (*Result, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := mc.Validate(); err != nil {
		return nil, &ValidationError{Field: "temperature", Message: err.Error()}
	}
	if mc.Model == "" {
		mc.Model = a.Config.Model
	}
	if a.Config.APIKey() == "" {
		return nil, &ValidationError{Field: "api_key", Message: generator.ErrMissingCredential.Error()}
	}

	text := prompt.Compile(in)

	unlock := a.locks.Lock(sess.AccountID)
	defer unlock()

	report, err := a.Ledger.Check(ctx, sess.AccountID, sess.Plan)
	if err != nil {
		a.Health.Report(health.Database, err)
		return nil, err
	}
	if !report.Allowed {
		slog.Info("generation denied by quota", "account_id", sess.AccountID, "plan", sess.Plan, "used", report.Used)
		return nil, &QuotaExceededError{Report: report}
	}

	output, err := a.Gateway.Generate(ctx, text, mc)
	if err != nil {
		if errors.Is(err, generator.ErrMissingCredential) {
			return nil, &ValidationError{Field: "api_key", Message: err.Error()}
		}
		if !errors.Is(err, context.Canceled) {
			a.Health.Report(health.Provider, err)
		}
		return nil, err
	}
	a.Health.Report(health.Provider, nil)

	format := in.OutputFormat()
	id, err := a.Recorder.Record(ctx, sess.AccountID, in, output, format)
	a.Health.Report(health.Database, err)
	if err != nil {
		return nil, err
	}

	words := export.WordCount(output)
	ceiling := prompt.WordCeiling(in.Size)
	if words > ceiling {
		slog.Warn("description exceeds word ceiling",
			"account_id", sess.AccountID,
			"description_id", id,
			"words", words,
			"ceiling", ceiling,
		)
	}

	return &Result{
		RecordID:      id,
		Text:          output,
		Formatted:     export.FormatDescription(output, format),
		Format:        format,
		Prompt:        text,
		Quota:         quota.Evaluate(sess.Plan, report.Used+1),
		WordCount:     words,
		WordCeiling:   ceiling,
		WithinCeiling: words <= ceiling,
	}, nil
}

func validateInput(in prompt.ProductInput) error {
	if err := in.Validate(); err != nil {
		var fe *prompt.FieldError
		if errors.As(err, &fe) {
			return &ValidationError{Field: fe.Field, Message: fe.Message}
		}
		return err
	}
	return nil
}

// Quota reports the session's current usage.
func (a *App) Quota(ctx context.Context, sess Session) (quota.Report, error) {
	return a.Ledger.Check(ctx, sess.AccountID, sess.Plan)
}

// History lists the most recent descriptions. A non-positive limit uses the
// configured default.
func (a *App) History(ctx context.Context, sess Session, limit int) ([]db.Description, error) {
	if limit <= 0 {
		limit = a.Config.HistoryLimit
	}
	return a.Recorder.ListFor(ctx, sess.AccountID, limit)
}

// Description returns one of the session's descriptions.
func (a *App) Description(ctx context.Context, sess Session, id int64) (db.Description, error) {
	return a.Recorder.Get(ctx, sess.AccountID, id)
}

// ClearHistory removes every description of the session's account. This also
// resets free-plan usage.
func (a *App) ClearHistory(ctx context.Context, sess Session) (int64, error) {
	unlock := a.locks.Lock(sess.AccountID)
	defer unlock()
	return a.Recorder.Clear(ctx, sess.AccountID)
}

// Analytics summarizes the session's usage.
func (a *App) Analytics(ctx context.Context, sess Session) (*history.Summary, error) {
	return a.Recorder.Summarize(ctx, sess.AccountID)
}

// ExportCSV writes the session's full history as CSV.
func (a *App) ExportCSV(ctx context.Context, sess Session, w io.Writer) error {
	total, err := a.Recorder.Count(ctx, sess.AccountID)
	if err != nil {
		return err
	}
	items, err := a.Recorder.ListFor(ctx, sess.AccountID, int(total))
	if err != nil {
		return err
	}
	return export.WriteHistoryCSV(w, items)
}

// ExportPage writes a standalone HTML page for one description.
func (a *App) ExportPage(ctx context.Context, sess Session, id int64, w io.Writer) error {
	d, err := a.Recorder.Get(ctx, sess.AccountID, id)
	if err != nil {
		return err
	}
	return export.WritePage(w, d)
}
