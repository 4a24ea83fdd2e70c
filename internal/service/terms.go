package service

import (
	"context"
	"fmt"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	"github.com/base-angewandte/image-backend-sub000/internal/repository"
)

// DiscriminatoryTermService exposes the curated list of flagged historical
// terms so the frontend can annotate matching catalogue texts.
type DiscriminatoryTermService struct {
	repo repository.DiscriminatoryTermRepository
}

// NewDiscriminatoryTermService creates a new discriminatory-term service.
func NewDiscriminatoryTermService(repo repository.DiscriminatoryTermRepository) *DiscriminatoryTermService {
	return &DiscriminatoryTermService{repo: repo}
}

// List returns all flagged terms ordered alphabetically.
func (s *DiscriminatoryTermService) List(ctx context.Context) ([]domain.DiscriminatoryTerm, error) {
	terms, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list discriminatory terms: %w", err)
	}
	return terms, nil
}
