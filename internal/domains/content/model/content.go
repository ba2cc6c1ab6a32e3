package model

import (
	"io"
	"time"

	"github.com/google/uuid"
)

const MaxTitleLength = 255

type Content struct {
	ID        uuid.UUID
	Title     string
	FileKey   string
	AuthorID  uuid.UUID
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FileUpload is a file received from a client, not yet stored
type FileUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// AllowedExtensions are matched case-insensitively against the filename suffix
var AllowedExtensions = []interface{}{".jpg", ".jpeg", ".png", ".docx", ".txt", ".pdf"}
