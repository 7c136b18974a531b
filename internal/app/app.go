// Package app wires the store, quota ledger, generator and history together
// and exposes the operations used by the CLI and the HTTP API.
package app

import (
	"context"
	"fmt"

	"github.com/abdulachik/descricoes/internal/account"
	"github.com/abdulachik/descricoes/internal/config"
	"github.com/abdulachik/descricoes/internal/db"
	"github.com/abdulachik/descricoes/internal/generator"
	"github.com/abdulachik/descricoes/internal/health"
	"github.com/abdulachik/descricoes/internal/history"
	"github.com/abdulachik/descricoes/internal/quota"
)

// App is the main application container holding all dependencies.
type App struct {
	Config   *config.Config
	Store    *db.Store
	Accounts *account.Service
	Tokens   *account.TokenIssuer
	Ledger   *quota.Ledger
	Recorder *history.Recorder
	Gateway  *generator.Gateway
	Health   *health.Tracker

	locks *keyedMutex
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Create database connection
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	client, err := NewClient(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	return Assemble(cfg, store, client), nil
}

// NewClient builds the generation client for the configured provider.
func NewClient(cfg *config.Config) (generator.Client, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		return generator.NewGeminiClient(generator.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.Model,
		}), nil
	case config.ProviderClaude:
		return generator.NewClaudeClient(generator.ClaudeConfig{
			APIKey: cfg.AnthropicAPIKey,
			Model:  cfg.Model,
		}), nil
	default:
		return nil, fmt.Errorf("invalid GENERATOR_PROVIDER: %s", cfg.Provider)
	}
}

// Assemble wires an App around an open, migrated store and a client.
func Assemble(cfg *config.Config, store *db.Store, client generator.Client) *App {
	tracker := health.NewTracker()
	tracker.Register(health.Database, func(ctx context.Context) error {
		return store.PingContext(ctx)
	})
	tracker.Register(health.Generator, func(ctx context.Context) error {
		if cfg.APIKey() == "" {
			return generator.ErrMissingCredential
		}
		return nil
	})

	return &App{
		Config:   cfg,
		Store:    store,
		Accounts: account.NewService(store),
		Tokens:   account.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Ledger:   quota.NewLedger(store),
		Recorder: history.New(history.Config{Store: store}),
		Gateway:  generator.NewGateway(client),
		Health:   tracker,
		locks:    newKeyedMutex(),
	}
}

// DefaultModelConfig returns the configured model and temperature.
func (a *App) DefaultModelConfig() generator.ModelConfig {
	return generator.ModelConfig{
		Model:       a.Config.Model,
		Temperature: a.Config.Temperature,
	}
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
