// Package service provides business logic for the application.
package service

import "errors"

// Input validation errors. These are raised before any upstream call is made.
var (
	ErrMissingJD     = errors.New("job description text is required")
	ErrMissingResume = errors.New("resume text is required")
	ErrMissingAnswer = errors.New("an answered question is required")
	ErrJDTooLong     = errors.New("job description text too long")
	ErrResumeTooLong = errors.New("resume text too long")
	ErrAnswerTooLong = errors.New("answer text too long")
)

// Input size limits. Inputs are pasted text; anything past these bounds is
// either abuse or a paste mistake, and would blow the upstream context window.
const (
	MaxJDLength     = 32 * 1024
	MaxResumeLength = 64 * 1024
	MaxAnswerLength = 16 * 1024
)
