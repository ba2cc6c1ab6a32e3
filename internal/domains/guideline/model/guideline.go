package model

import (
	"time"

	"github.com/google/uuid"
)

const MaxTitleLength = 255

// Guideline is one compliance rule every uploaded content is reviewed against
type Guideline struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
