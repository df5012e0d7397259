package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoProfile        = errors.New("no profile in session")
	ErrAlreadyResolved  = errors.New("session already resolved")
	ErrCommitInFlight   = errors.New("onboarding commit already in flight")

	// ErrInvalidCredentials carries the user-facing message verbatim; the
	// login form renders err.Error() inline.
	ErrInvalidCredentials = errors.New("Ongeldig e-mailadres of wachtwoord.")
)
