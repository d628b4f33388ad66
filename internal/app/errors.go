// Package app holds the application services and business logic.
package app

import "errors"

var (
	// ErrInvalidCredentials indicates that the login identity or secret was rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound indicates that no session is stored.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the stored session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrForbidden indicates a session whose role does not grant access.
	ErrForbidden = errors.New("insufficient privileges")
	// ErrStaleResponse indicates a response that arrived after the client navigated away.
	ErrStaleResponse = errors.New("stale response")
	// ErrInvalidCandidateID indicates a candidate ID that is not 3 to 10 digits.
	ErrInvalidCandidateID = errors.New("invalid candidate ID format")
	// ErrRecommendationNotFound indicates an application to an unknown recommendation.
	ErrRecommendationNotFound = errors.New("recommendation not found")
	// ErrAlreadyApplied indicates a repeated application to the same internship.
	ErrAlreadyApplied = errors.New("already applied to this internship")
	// ErrNoAllotment indicates that nothing has been allotted to the candidate.
	ErrNoAllotment = errors.New("no allotment available yet")
)

// AuthErrorKind classifies login failures.
type AuthErrorKind int

const (
	// InvalidCredentials covers bad identity shapes, wrong secrets and unknown roles.
	InvalidCredentials AuthErrorKind = iota + 1
)

// AuthError is returned by SessionStore.Login.
type AuthError struct {
	Kind   AuthErrorKind
	Reason string
}

func (e *AuthError) Error() string {
	return e.Reason
}

// Unwrap lets errors.Is match ErrInvalidCredentials.
func (e *AuthError) Unwrap() error {
	if e.Kind == InvalidCredentials {
		return ErrInvalidCredentials
	}
	return nil
}

func invalidCredentials(reason string) error {
	return &AuthError{Kind: InvalidCredentials, Reason: reason}
}
