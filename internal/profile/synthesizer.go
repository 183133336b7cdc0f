// Package profile turns an indexed file search store into a fixed-size
// coding profile.
package profile

import (
	"context"
	"log"

	"google.golang.org/genai"

	"github.com/dpolishuk/repoprofile/backend/internal/apperr"
	"github.com/dpolishuk/repoprofile/backend/internal/models"
)

// Generator issues one retrieval-grounded generation request scoped to a
// single store.
type Generator interface {
	GenerateGrounded(ctx context.Context, prompt, storeName string) (*genai.GenerateContentResponse, error)
}

type GeneratorFactory func(ctx context.Context, apiKey string) (Generator, error)

type Synthesizer struct {
	generators GeneratorFactory
}

func NewSynthesizer(generators GeneratorFactory) *Synthesizer {
	return &Synthesizer{generators: generators}
}

// Generate asks the model for a profile of the store's contents. The result
// always has models.ProfileSize entries.
func (s *Synthesizer) Generate(ctx context.Context, storeName, apiKey, focus string) (models.CodingProfile, error) {
	gen, err := s.generators(ctx, apiKey)
	if err != nil {
		return nil, generationFailed(err)
	}

	resp, err := gen.GenerateGrounded(ctx, BuildPrompt(focus), storeName)
	if err != nil {
		log.Printf("Error generating profile for %s: %v", storeName, err)
		return nil, generationFailed(err)
	}

	answer := extractText(resp)
	if answer == "" {
		return nil, apperr.New(apperr.EmptyResponse, "Failed to generate profile: no response from model")
	}

	bullets := ParseBullets(answer)
	if len(bullets) != models.ProfileSize {
		log.Printf("Model returned %d bullet points for %s; normalizing to %d", len(bullets), storeName, models.ProfileSize)
	}
	return Normalize(answer), nil
}

func generationFailed(err error) error {
	return apperr.Wrap(apperr.ProfileGenerationFailed, "Failed to generate profile: "+err.Error(), err)
}
