package tenantauth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes surfaced to API clients alongside the HTTP status.
const (
	TextCodeInvalidCreds        = "INVALID_CREDENTIALS"
	TextCodeDuplicateUsername   = "DUPLICATE_USERNAME"
	TextCodeTokenExpired        = "TOKEN_EXPIRED"
	TextCodeTokenMalformed      = "TOKEN_MALFORMED"
	TextCodeInvalidRegistration = "INVALID_REGISTRATION"
	TextCodeEmptyPassword       = "EMPTY_PASSWORD"
	TextCodeIdentityNotFound    = "IDENTITY_NOT_FOUND"
	TextCodeMissingToken        = "MISSING_AUTH_TOKEN"
)

// ErrIdentityNotFound is the error we return for non found identities.
// Login paths never expose it directly; they collapse it into
// ErrMismatchedHashAndPassword to avoid account enumeration.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode(TextCodeIdentityNotFound).
	WithCode(errors.CodeNotFound)

// ErrMismatchedHashAndPassword covers both unknown usernames and wrong
// passwords. One kind for both cases, on purpose.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrDuplicateUsername is returned when a registration derives a username
// that is already claimed.
var ErrDuplicateUsername = errors.New("username already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateUsername).
	WithCode(errors.CodeConflict)

// ErrInvalidRegistration rejects registration input before storage is
// touched (missing email, empty derived username).
var ErrInvalidRegistration = errors.New("registration request is invalid", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidRegistration).
	WithCode(errors.CodeBadRequest)

// ErrTokenExpired means the signature checked out but the validity window
// is over; the client has to authenticate again.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers bad signatures and undecodable tokens.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrUnableToFindSession is returned when a request carries no bearer token.
var ErrUnableToFindSession = errors.New("unable to find session", errors.CategoryAuth).
	WithTextCode(TextCodeMissingToken).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty plaintext passwords before hashing.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsDuplicateUsernameError reports whether err is a username conflict.
func IsDuplicateUsernameError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateUsername) {
		return true
	}
	var richErr *errors.Error
	return errors.As(err, &richErr) && richErr.TextCode == TextCodeDuplicateUsername
}

// isUniqueViolation matches the driver level messages for a violated
// unique index; covers the sqlite shim and postgres wire formats.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: users.username") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
