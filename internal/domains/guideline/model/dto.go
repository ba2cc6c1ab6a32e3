package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"compliance-backend/internal/shared/utils"
)

const msgRequired = "This field is required."

// CreateGuidelineRequest is used by POST and by the full PUT replacement
type CreateGuidelineRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Normalize trims surrounding whitespace from both fields
func (r *CreateGuidelineRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

func (r CreateGuidelineRequest) Validate() error {
	r.Normalize()
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error(msgRequired),
			validation.By(utils.ValidText),
			validation.RuneLength(1, MaxTitleLength).Error("Ensure this field has no more than 255 characters."),
		),
		validation.Field(&r.Description,
			validation.Required.Error(msgRequired),
			validation.By(utils.ValidText),
		),
	)
}

// PatchGuidelineRequest - only the provided fields change
type PatchGuidelineRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (r *PatchGuidelineRequest) Normalize() {
	r.Title = utils.TrimPtr(r.Title)
	r.Description = utils.TrimPtr(r.Description)
}

func (r PatchGuidelineRequest) Validate() error {
	r.Normalize()
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("This field may not be blank."),
			validation.By(utils.ValidText),
			validation.RuneLength(1, MaxTitleLength).Error("Ensure this field has no more than 255 characters."),
		),
		validation.Field(&r.Description,
			validation.NilOrNotEmpty.Error("This field may not be blank."),
			validation.By(utils.ValidText),
		),
	)
}

// ApplyTo copies the provided fields onto g
func (r PatchGuidelineRequest) ApplyTo(g *Guideline) {
	if r.Title != nil {
		g.Title = *r.Title
	}
	if r.Description != nil {
		g.Description = *r.Description
	}
}

type GuidelineResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (g *Guideline) ToResponse() GuidelineResponse {
	return GuidelineResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
	}
}
