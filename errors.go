package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

// Internal failure taxonomy. The three authentication failures are surfaced
// uniformly to callers at the transport boundary (see IsAuthFailure); the
// distinct sentinels exist for logging and tests.

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrInvalidCredentials is returned when the email is unknown or the password
// does not match.
var ErrInvalidCredentials = goerrors.New("invalid email or password", goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(goerrors.CodeUnauthorized)

// ErrAccountLocked is returned while the member's lockout window is open.
var ErrAccountLocked = goerrors.New("account temporarily locked", goerrors.CategoryAuth).
	WithTextCode("ACCOUNT_LOCKED").
	WithCode(goerrors.CodeUnauthorized)

// ErrInactiveAccount is returned when the member record is not active.
var ErrInactiveAccount = goerrors.New("account is not active", goerrors.CategoryAuth).
	WithTextCode("INACTIVE_ACCOUNT").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenInvalid covers malformed tokens and bad signatures.
var ErrTokenInvalid = goerrors.New("invalid authentication token", goerrors.CategoryAuth).
	WithTextCode("TOKEN_INVALID").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned for structurally valid tokens past their expiry.
var ErrTokenExpired = goerrors.New("authentication token expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(goerrors.CodeUnauthorized)

// ErrInvalidTokenType is returned when a refresh token is presented where an
// access token is required, or the other way around.
var ErrInvalidTokenType = goerrors.New("invalid token type", goerrors.CategoryAuth).
	WithTextCode("INVALID_TOKEN_TYPE").
	WithCode(goerrors.CodeUnauthorized)

// ErrAccessDenied is the base error for failed role and self-or-admin checks.
// Guards clone it and attach the human readable reason.
var ErrAccessDenied = goerrors.New("access denied", goerrors.CategoryAuthz).
	WithTextCode("ACCESS_DENIED").
	WithCode(goerrors.CodeForbidden)

// ErrPasswordPolicy is the base error for password policy violations; the
// specific unmet rule travels in the message and metadata.
var ErrPasswordPolicy = goerrors.New("password does not meet policy", goerrors.CategoryValidation).
	WithTextCode("PASSWORD_POLICY").
	WithCode(goerrors.CodeBadRequest)

// ErrNoEmptyString rejects empty input where a secret is required
var ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryBadInput).
	WithTextCode("EMPTY_STRING").
	WithCode(goerrors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the normalized bcrypt mismatch error
var ErrMismatchedHashAndPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH").
	WithCode(goerrors.CodeUnauthorized)

// authFailureTextCodes are the internal reasons that collapse into one
// uniform unauthorized outcome at the boundary. Keeping them externally
// indistinguishable avoids account enumeration.
var authFailureTextCodes = map[string]struct{}{
	"INVALID_CREDENTIALS": {},
	"ACCOUNT_LOCKED":      {},
	"INACTIVE_ACCOUNT":    {},
}

// IsAuthFailure reports whether err is one of the authentication failures
// that must be presented as a generic unauthorized response.
func IsAuthFailure(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	_, ok := authFailureTextCodes[richErr.TextCode]
	return ok
}

// IsTokenFailure reports whether err is any token verification failure
// (malformed, bad signature, expired, or wrong type).
func IsTokenFailure(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	switch richErr.TextCode {
	case "TOKEN_INVALID", "TOKEN_EXPIRED", "INVALID_TOKEN_TYPE":
		return true
	}
	return false
}

// FailureReason exposes the internal text code for observability. Returns
// the empty string for non-taxonomy errors.
func FailureReason(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode
	}
	return ""
}

func passwordPolicyError(rule string) error {
	clone := ErrPasswordPolicy.Clone()
	if clone == nil {
		return ErrPasswordPolicy
	}
	clone.Message = rule
	clone.Source = ErrPasswordPolicy
	return clone.WithMetadata(map[string]any{"rule": rule})
}

func accessDeniedError(reason string) error {
	clone := ErrAccessDenied.Clone()
	if clone == nil {
		return ErrAccessDenied
	}
	clone.Message = reason
	clone.Source = ErrAccessDenied
	return clone
}
