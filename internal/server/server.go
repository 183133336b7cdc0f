// Package server wires configuration into the services behind the HTTP API.
package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/dpolishuk/repoprofile/backend/internal/api"
	"github.com/dpolishuk/repoprofile/backend/internal/config"
	"github.com/dpolishuk/repoprofile/backend/internal/gemini"
	"github.com/dpolishuk/repoprofile/backend/internal/github"
	"github.com/dpolishuk/repoprofile/backend/internal/indexer"
	"github.com/dpolishuk/repoprofile/backend/internal/ledger"
	"github.com/dpolishuk/repoprofile/backend/internal/profile"
	"github.com/dpolishuk/repoprofile/backend/internal/selector"
)

type Services struct {
	Repos    *github.Client
	Pipeline *indexer.Pipeline
	Profiles *profile.Synthesizer

	ledger *ledger.Client
}

// NewServices builds every collaborator from cfg. An unreachable ledger is
// logged and indexing continues without auditing.
func NewServices(ctx context.Context, cfg *config.Config) *Services {
	repos := github.NewClient(github.Options{
		BaseURL:   cfg.GitHubAPIURL,
		Token:     cfg.GitHubToken,
		Timeout:   cfg.GitHubTimeout,
		CacheTTL:  cfg.RepoCacheTTL,
		CacheSize: cfg.RepoCacheSize,
	})

	sel := selector.DefaultOptions()
	if cfg.FilesPerRepo > 0 {
		sel.MaxFiles = cfg.FilesPerRepo
	}
	sel.Exclude = cfg.SelectorExclude

	pipeline := indexer.NewPipeline(repos, gemini.StoreFactory(cfg.GeminiModel), indexer.Options{
		Selector:        sel,
		PollInterval:    cfg.PollInterval,
		MaxPollAttempts: cfg.PollMaxAttempts,
	})

	svc := &Services{
		Repos:    repos,
		Pipeline: pipeline,
		Profiles: profile.NewSynthesizer(gemini.GeneratorFactory(cfg.GeminiModel)),
	}

	if cfg.LedgerEnabled() {
		client, err := ledger.NewClient(ctx, ledger.Config{
			URI:      cfg.Neo4jURI,
			Username: cfg.Neo4jUser,
			Password: cfg.Neo4jPass,
		})
		if err != nil {
			log.Printf("Warning: index run ledger disabled: %v", err)
		} else {
			svc.ledger = client
			pipeline.WithRecorder(ledger.NewRecorder(client))
		}
	}

	return svc
}

func (s *Services) Close() {
	s.Pipeline.Close()
	if s.ledger != nil {
		if err := s.ledger.Close(); err != nil {
			log.Printf("Error closing ledger: %v", err)
		}
	}
}

func NewApp(s *Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "RepoProfile API",
	})
	app.Use(recoverer.New())
	app.Use(logger.New())

	api.SetupRoutes(app, api.NewHandler(s.Repos, s.Pipeline, s.Profiles))
	return app
}
