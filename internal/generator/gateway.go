// Package generator calls the external text-generation provider and classifies
// its failures.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultTemperature matches the form's default creativity setting.
const DefaultTemperature = 0.7

// ModelConfig selects the model and sampling temperature for one call.
type ModelConfig struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
}

// Validate checks the temperature range.
func (mc ModelConfig) Validate() error {
	if mc.Temperature < 0 || mc.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0 and 1, got %v", mc.Temperature)
	}
	return nil
}

// Client sends a prompt to a provider and returns the generated text.
type Client interface {
	// Provider returns the provider name.
	Provider() string

	// Complete runs a single completion.
	Complete(ctx context.Context, prompt string, mc ModelConfig) (string, error)
}

// Gateway is the single entry point for generation calls. It performs exactly
// one attempt per call.
type Gateway struct {
	client Client
}

// NewGateway wraps client.
func NewGateway(client Client) *Gateway {
	return &Gateway{client: client}
}

// Provider returns the wrapped client's provider name.
func (g *Gateway) Provider() string {
	return g.client.Provider()
}

// Generate runs the prompt. Failures are returned as *Error, except for invalid
// configuration and ErrMissingCredential.
func (g *Gateway) Generate(ctx context.Context, prompt string, mc ModelConfig) (string, error) {
	if err := mc.Validate(); err != nil {
		return "", err
	}

	start := time.Now()
	text, err := g.client.Complete(ctx, prompt, mc)
	if err != nil {
		if errors.Is(err, ErrMissingCredential) || errors.Is(err, context.Canceled) {
			return "", err
		}
		ge := Classify(err)
		slog.Warn("generation failed",
			"provider", g.client.Provider(),
			"model", mc.Model,
			"code", ge.Code,
			"error", ge.Message,
		)
		return "", ge
	}

	slog.Debug("generation completed",
		"provider", g.client.Provider(),
		"model", mc.Model,
		"duration", time.Since(start),
		"chars", len(text),
	)
	return text, nil
}
