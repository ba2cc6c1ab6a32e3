package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"compliance-backend/internal/domains/guideline/model"
	"compliance-backend/internal/domains/guideline/repository"
)

type guidelineService struct {
	repo repository.GuidelineRepository
}

func NewGuidelineService(repo repository.GuidelineRepository) ServiceInterface {
	return &guidelineService{repo: repo}
}

func (s *guidelineService) ListGuidelines(ctx context.Context) ([]model.GuidelineResponse, error) {
	guidelines, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guidelines: %w", err)
	}

	out := make([]model.GuidelineResponse, 0, len(guidelines))
	for _, g := range guidelines {
		out = append(out, g.ToResponse())
	}
	return out, nil
}

func (s *guidelineService) GetGuideline(ctx context.Context, id uuid.UUID) (*model.GuidelineResponse, error) {
	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := g.ToResponse()
	return &resp, nil
}

func (s *guidelineService) CreateGuideline(ctx context.Context, req model.CreateGuidelineRequest) (*model.GuidelineResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g := &model.Guideline{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create guideline: %w", err)
	}

	log.Info().Str("guideline_id", g.ID.String()).Str("title", g.Title).Msg("Guideline created")

	resp := g.ToResponse()
	return &resp, nil
}

func (s *guidelineService) ReplaceGuideline(ctx context.Context, id uuid.UUID, req model.CreateGuidelineRequest) (*model.GuidelineResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Title = req.Title
	g.Description = req.Description

	return s.save(ctx, g)
}

func (s *guidelineService) PatchGuideline(ctx context.Context, id uuid.UUID, req model.PatchGuidelineRequest) (*model.GuidelineResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyTo(g)

	return s.save(ctx, g)
}

func (s *guidelineService) load(ctx context.Context, id uuid.UUID) (*model.Guideline, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrGuidelineNotFound) {
			return nil, model.NewGuidelineNotFoundError()
		}
		return nil, fmt.Errorf("get guideline: %w", err)
	}
	return g, nil
}

func (s *guidelineService) save(ctx context.Context, g *model.Guideline) (*model.GuidelineResponse, error) {
	if err := s.repo.Update(ctx, g); err != nil {
		if errors.Is(err, model.ErrGuidelineNotFound) {
			return nil, model.NewGuidelineNotFoundError()
		}
		return nil, fmt.Errorf("update guideline: %w", err)
	}

	log.Info().Str("guideline_id", g.ID.String()).Msg("Guideline updated")

	resp := g.ToResponse()
	return &resp, nil
}
