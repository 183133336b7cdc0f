package api

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/dpolishuk/repoprofile/backend/internal/apperr"
	"github.com/dpolishuk/repoprofile/backend/internal/indexer"
	"github.com/dpolishuk/repoprofile/backend/internal/models"
)

type RepositoryLister interface {
	ListRepositories(ctx context.Context, username string) ([]models.RepositoryMetadata, error)
}

type Indexer interface {
	Index(ctx context.Context, req indexer.Request) (*models.IndexResult, error)
}

type ProfileGenerator interface {
	Generate(ctx context.Context, storeName, apiKey, focus string) (models.CodingProfile, error)
}

type Handler struct {
	repos    RepositoryLister
	indexer  Indexer
	profiles ProfileGenerator
}

func NewHandler(repos RepositoryLister, idx Indexer, profiles ProfileGenerator) *Handler {
	return &Handler{repos: repos, indexer: idx, profiles: profiles}
}

type IndexRepositoriesInput struct {
	Username     string   `json:"username"`
	Repositories []string `json:"repositories"`
	APIKey       string   `json:"apiKey"`
}

type GenerateProfileInput struct {
	StoreName string `json:"storeName"`
	APIKey    string `json:"apiKey"`
	Focus     string `json:"focus"`
}

// Health reports liveness only; upstream services are not probed.
func (h *Handler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "repoprofile-backend",
	})
}

// ListRepositories returns a user's public repositories, most recently
// updated first.
func (h *Handler) ListRepositories(c fiber.Ctx) error {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		return badRequest(c, "Username is required")
	}

	repos, err := h.repos.ListRepositories(c.Context(), username)
	if err != nil {
		return fail(c, "fetching repositories", err)
	}
	if repos == nil {
		repos = []models.RepositoryMetadata{}
	}

	return c.JSON(fiber.Map{
		"repositories": repos,
		"count":        len(repos),
	})
}

// IndexRepositories uploads a slice of each repository into a new store.
// The call blocks until every upload has been polled.
func (h *Handler) IndexRepositories(c fiber.Ctx) error {
	var input IndexRepositoriesInput
	if err := c.Bind().Body(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	if input.Username == "" || input.Repositories == nil {
		return badRequest(c, "Username and repositories array are required")
	}
	if input.APIKey == "" {
		return badRequest(c, "Gemini API key is required")
	}
	if len(input.Repositories) == 0 {
		return badRequest(c, "At least one repository is required")
	}

	result, err := h.indexer.Index(c.Context(), indexer.Request{
		Username:     input.Username,
		Repositories: input.Repositories,
		APIKey:       input.APIKey,
	})
	if err != nil {
		return fail(c, "indexing repositories", err)
	}

	return c.JSON(fiber.Map{
		"storeName":    result.StoreName,
		"filesIndexed": result.FilesIndexed,
		"message":      fmt.Sprintf("Successfully indexed %d repositories", len(input.Repositories)),
	})
}

// GenerateProfile asks the model for a 20-point profile of a store.
func (h *Handler) GenerateProfile(c fiber.Ctx) error {
	var input GenerateProfileInput
	if err := c.Bind().Body(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	if input.StoreName == "" {
		return badRequest(c, "Store name is required")
	}
	if input.APIKey == "" {
		return badRequest(c, "Gemini API key is required")
	}

	profile, err := h.profiles.Generate(c.Context(), input.StoreName, input.APIKey, input.Focus)
	if err != nil {
		return fail(c, "generating profile", err)
	}

	return c.JSON(fiber.Map{
		"profile": profile,
		"count":   len(profile),
	})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func fail(c fiber.Ctx, action string, err error) error {
	log.Printf("Error %s: %v", action, err)
	return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
}
