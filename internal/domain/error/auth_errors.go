// Package error defines domain-specific errors for the bookkeeping application.
package error

import "errors"

// Authentication domain errors.
var (
	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrMissingTenant is returned when a token carries no company.
	ErrMissingTenant = errors.New("token carries no company")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Rate limiting (02XXXX)
	ErrCodeRateLimited AuthErrorCode = "AUTH-020003"

	// Token errors (03XXXX)
	ErrCodeInvalidToken  AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken  AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken  AuthErrorCode = "AUTH-030003"
	ErrCodeMissingTenant AuthErrorCode = "AUTH-030004"
)
