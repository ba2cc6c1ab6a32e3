package model

import (
	"errors"
	"fmt"
)

const (
	ErrCodeContentNotFound = "CNT001"
	ErrCodeDuplicateTitle  = "CNT002"
	ErrCodeNotOwner        = "CNT003"
)

var (
	ErrContentNotFound = errors.New("content not found")
	ErrDuplicateTitle  = errors.New("duplicate content title for author")
)

type ContentError struct {
	Code    string
	Message string
	Err     error
}

func (e *ContentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

func NewContentNotFoundError() *ContentError {
	return &ContentError{
		Code:    ErrCodeContentNotFound,
		Message: "No Content matches the given query.",
		Err:     ErrContentNotFound,
	}
}

func NewDuplicateTitleError() *ContentError {
	return &ContentError{
		Code:    ErrCodeDuplicateTitle,
		Message: "Content with the same title already exists. Please choose a unique title or update existing content.",
		Err:     ErrDuplicateTitle,
	}
}

func NewNotOwnerError() *ContentError {
	return &ContentError{
		Code:    ErrCodeNotOwner,
		Message: "You can only update content you own.",
	}
}
