package models

import "errors"

// Domain errors returned by services and mapped to HTTP statuses by handlers
var (
	ErrNotFound           = errors.New("not found")
	ErrCohortFull         = errors.New("cohort is full")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this cohort")
	ErrInvalidCode        = errors.New("invalid enrollment code")
	ErrEmailExists        = errors.New("email already exists")
	ErrCodeExists         = errors.New("enrollment code already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrAlreadySubmitted   = errors.New("submission already handed in")
	ErrNoEnrollment       = errors.New("no enrollment")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrInvalidTransition  = errors.New("invalid submission status transition")
)
