package model

import (
	"errors"
	"fmt"
)

const (
	ErrCodeContentNotFound    = "REV001"
	ErrCodeReviewItemNotFound = "REV002"
)

var ErrReviewItemNotFound = errors.New("review item not found")

type ReviewError struct {
	Code    string
	Message string
	Err     error
}

func (e *ReviewError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ReviewError) Unwrap() error {
	return e.Err
}

func NewContentNotFoundError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeContentNotFound,
		Message: "No Content matches the given query.",
	}
}

func NewReviewItemNotFoundError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeReviewItemNotFound,
		Message: "No Review item matches the given query.",
		Err:     ErrReviewItemNotFound,
	}
}
