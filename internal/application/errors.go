package application

import (
	"errors"
	"fmt"
)

// Expected, user-facing outcomes. Callers dispatch on these with errors.Is.
var (
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrWeakPassword          = errors.New("password must contain 8+ characters, 1 uppercase, and 1 special character")
	ErrNoPendingRegistration = errors.New("no registration found for this email, please register first")
	ErrCodeMismatch          = errors.New("invalid verification code")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrNotVerified           = errors.New("account not verified, please verify your email first")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidOccupation     = errors.New("unknown occupation")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrInvalidResetToken     = errors.New("invalid reset token")
	ErrResetTokenExpired     = errors.New("reset token has expired")
	ErrInvalidSubject        = errors.New("unknown contact subject")
)

// ErrStaleState signals a broken internal invariant, e.g. a verification code
// that matched while its registration payload was gone.
var ErrStaleState = errors.New("registration state is inconsistent")

// statusCarrier is implemented by adapter errors that know the provider's HTTP status and body.
type statusCarrier interface {
	StatusCode() int
	ResponseBody() string
}

// ProviderError wraps a failure of an external collaborator (email, file store, ...).
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s failed (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func newProviderError(provider string, err error) *ProviderError {
	pe := &ProviderError{Provider: provider, Err: err}
	var sc statusCarrier
	if errors.As(err, &sc) {
		pe.StatusCode = sc.StatusCode()
		pe.Body = sc.ResponseBody()
	}
	return pe
}

// IsProviderError reports whether err is (or wraps) a ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
