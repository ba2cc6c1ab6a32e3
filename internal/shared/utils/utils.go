package utils

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrNullCharacter = errors.New("Null characters are not allowed.")
	ErrInvalidText   = errors.New("Ensure this field contains valid UTF-8 text.")
)

// FileExtension returns the lower-cased extension of name including the dot
func FileExtension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// UniqueObjectKey builds prefix + random hex token + the original extension.
// The client filename never reaches the storage path.
func UniqueObjectKey(prefix, originalName string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	ext := FileExtension(filepath.Base(originalName))
	if ext == "." {
		ext = ""
	}
	return prefix + token + ext
}

// TrimPtr returns a trimmed copy of *s, nil stays nil
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// ValidText rejects text Postgres cannot store: NUL bytes and invalid UTF-8.
// Accepts string and *string so it plugs into validation.By.
func ValidText(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return nil
	}

	if strings.ContainsRune(s, 0) {
		return ErrNullCharacter
	}
	if !utf8.ValidString(s) {
		return ErrInvalidText
	}
	return nil
}
