package model

import (
	"errors"
	"fmt"
)

const ErrCodeGuidelineNotFound = "GDL001"

var ErrGuidelineNotFound = errors.New("guideline not found")

// GuidelineError carries the code the handler maps to a status
type GuidelineError struct {
	Code    string
	Message string
	Err     error
}

func (e *GuidelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GuidelineError) Unwrap() error {
	return e.Err
}

func NewGuidelineNotFoundError() *GuidelineError {
	return &GuidelineError{
		Code:    ErrCodeGuidelineNotFound,
		Message: "No Guideline matches the given query.",
		Err:     ErrGuidelineNotFound,
	}
}
