package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User is a read-only projection of an account owned by the identity provider
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrUserNotFound is returned when the token subject has no provisioned account
var ErrUserNotFound = errors.New("user not found")
