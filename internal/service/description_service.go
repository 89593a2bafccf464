package service

import (
	"context"

	"catalogo/internal/gemini"
	"catalogo/internal/model"

	"github.com/rs/zerolog"
)

// descriptionService implements DescriptionService on top of a Generator.
type descriptionService struct {
	generator gemini.Generator
	logger    zerolog.Logger
}

// NewDescriptionService creates a new description service.
func NewDescriptionService(generator gemini.Generator, logger zerolog.Logger) DescriptionService {
	return &descriptionService{
		generator: generator,
		logger:    logger.With().Str("service", "description").Logger(),
	}
}

// Draft generates a description for the named product. Both inputs must be
// non-empty; generation failures propagate without partial text.
func (s *descriptionService) Draft(ctx context.Context, name, category string) (string, error) {
	if name == "" || category == "" {
		return "", model.NewValidationError("Informe nome e categoria do produto")
	}

	text, err := s.generator.Generate(ctx, name, category)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Str("category", category).Msg("description generation failed")
		return "", err
	}

	s.logger.Debug().Str("name", name).Int("length", len(text)).Msg("description generated")
	return text, nil
}
