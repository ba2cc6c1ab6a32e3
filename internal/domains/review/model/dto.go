package model

import (
	"encoding/json"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	guidelineModel "compliance-backend/internal/domains/guideline/model"
)

type UpdateReviewItemRequest struct {
	Status *string `json:"status"`
}

// UnmarshalJSON accepts any JSON type for status. A non-string value keeps
// its literal text so it fails choice validation after the item lookups
// instead of failing the bind.
func (r *UpdateReviewItemRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Status json.RawMessage `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Status = nil
	if len(raw.Status) == 0 || string(raw.Status) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw.Status, &s); err != nil {
		s = string(raw.Status)
	}
	r.Status = &s
	return nil
}

func (r UpdateReviewItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.NotNil.Error("This field is required."),
			validation.By(validChoice),
		),
	)
}

func validChoice(value interface{}) error {
	s, ok := value.(*string)
	if !ok || s == nil {
		return nil
	}
	if !Status(*s).IsValid() {
		return fmt.Errorf("%q is not a valid choice.", *s)
	}
	return nil
}

type ReviewItemResponse struct {
	ID         uuid.UUID                        `json:"id"`
	Guideline  guidelineModel.GuidelineResponse `json:"guideline"`
	Status     Status                           `json:"status"`
	Reviewer   *string                          `json:"reviewer"`
	ReviewedAt *time.Time                       `json:"reviewed_at"`
}

func (d *ReviewItemDetail) ToResponse() ReviewItemResponse {
	return ReviewItemResponse{
		ID: d.ID,
		Guideline: guidelineModel.GuidelineResponse{
			ID:          d.GuidelineID,
			Title:       d.GuidelineTitle,
			Description: d.GuidelineDescription,
			CreatedAt:   d.GuidelineCreatedAt,
		},
		Status:     d.Status,
		Reviewer:   d.ReviewerName,
		ReviewedAt: d.ReviewedAt,
	}
}
