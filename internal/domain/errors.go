package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateSubmission = errors.New("already submitted today")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrMissingEvidence     = errors.New("photo evidence is required")
	ErrMissingNote         = errors.New("note is required")
	ErrInsufficientPoints  = errors.New("not enough points")
	ErrAlreadyJoined       = errors.New("already joined this event")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrValidation          = errors.New("validation failed")

	ErrUserNotFound       = errors.New("user not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrForbidden          = errors.New("admin session required")
)

// ValidationError reports a malformed input field. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
