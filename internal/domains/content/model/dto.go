package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"compliance-backend/internal/shared/utils"
)

const (
	msgRequired    = "This field is required."
	msgTitleLength = "Ensure this field has no more than 255 characters."
	msgInvalidType = "Invalid file type. Only images, Word documents, TXT, and PDF files are allowed."
)

// UploadContentRequest is the multipart form of POST /content/upload
type UploadContentRequest struct {
	Title string      `json:"title"`
	File  *FileUpload `json:"file"`
}

// Normalize trims surrounding whitespace from the title
func (r *UploadContentRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

func (r UploadContentRequest) Validate(maxSize int64) error {
	r.Normalize()
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error(msgRequired),
			validation.By(utils.ValidText),
			validation.RuneLength(1, MaxTitleLength).Error(msgTitleLength),
		),
		validation.Field(&r.File,
			validation.NotNil.Error("No file was submitted."),
			validation.By(fileRule(maxSize)),
		),
	)
}

// UpdateContentRequest - nil fields are left unchanged
type UpdateContentRequest struct {
	Title *string     `json:"title"`
	File  *FileUpload `json:"file"`
}

func (r *UpdateContentRequest) Normalize() {
	r.Title = utils.TrimPtr(r.Title)
}

func (r UpdateContentRequest) Validate(maxSize int64) error {
	r.Normalize()
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("This field may not be blank."),
			validation.By(utils.ValidText),
			validation.RuneLength(1, MaxTitleLength).Error(msgTitleLength),
		),
		validation.Field(&r.File, validation.By(fileRule(maxSize))),
	)
}

// IsEmpty reports whether the request changes nothing
func (r UpdateContentRequest) IsEmpty() bool {
	return r.Title == nil && r.File == nil
}

func fileRule(maxSize int64) validation.RuleFunc {
	return func(value interface{}) error {
		f, ok := value.(*FileUpload)
		if !ok || f == nil {
			return nil
		}
		// In skips empty values, so a missing extension is rejected explicitly
		ext := utils.FileExtension(f.Filename)
		if ext == "" || validation.In(AllowedExtensions...).Validate(ext) != nil {
			return errors.New(msgInvalidType)
		}
		if f.Size == 0 {
			return errors.New("The submitted file is empty.")
		}
		if maxSize > 0 && f.Size > maxSize {
			return fmt.Errorf("File size exceeds the maximum of %d MB.", maxSize>>20)
		}
		return nil
	}
}

type ContentResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	File         string    `json:"file"`
	Author       uuid.UUID `json:"author"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ReviewStatus string    `json:"review_status"`
}

// ToResponse needs the resolved file URL and the derived review status
func (c *Content) ToResponse(fileURL, reviewStatus string) ContentResponse {
	return ContentResponse{
		ID:           c.ID,
		Title:        c.Title,
		File:         fileURL,
		Author:       c.AuthorID,
		Version:      c.Version,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		ReviewStatus: reviewStatus,
	}
}
