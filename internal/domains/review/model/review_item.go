package model

import (
	"time"

	"github.com/google/uuid"
)

type ReviewItem struct {
	ID          uuid.UUID
	ContentID   uuid.UUID
	GuidelineID uuid.UUID
	Status      Status
	ReviewerID  *uuid.UUID
	ReviewedAt  *time.Time
}

// ReviewItemDetail is a review item joined with its guideline and reviewer
type ReviewItemDetail struct {
	ReviewItem
	GuidelineTitle       string
	GuidelineDescription string
	GuidelineCreatedAt   time.Time
	ReviewerName         *string
}
