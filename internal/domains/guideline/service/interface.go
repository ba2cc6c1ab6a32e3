package service

import (
	"context"

	"github.com/google/uuid"

	"compliance-backend/internal/domains/guideline/model"
)

type ServiceInterface interface {
	ListGuidelines(ctx context.Context) ([]model.GuidelineResponse, error)
	GetGuideline(ctx context.Context, id uuid.UUID) (*model.GuidelineResponse, error)
	CreateGuideline(ctx context.Context, req model.CreateGuidelineRequest) (*model.GuidelineResponse, error)

	// ReplaceGuideline is the PUT form; both fields are required
	ReplaceGuideline(ctx context.Context, id uuid.UUID, req model.CreateGuidelineRequest) (*model.GuidelineResponse, error)
	PatchGuideline(ctx context.Context, id uuid.UUID, req model.PatchGuidelineRequest) (*model.GuidelineResponse, error)
}
