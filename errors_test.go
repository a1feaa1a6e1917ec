package tenantauth_test

import (
	stderrors "errors"
	"testing"

	"github.com/goliatone/go-errors"
	tenantauth "github.com/goliatone/go-tenant-auth"
	"github.com/stretchr/testify/assert"
)

func TestStructuredErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      *errors.Error
		category errors.Category
		textCode string
	}{
		{
			name:     "identity not found",
			err:      tenantauth.ErrIdentityNotFound,
			category: errors.CategoryNotFound,
			textCode: tenantauth.TextCodeIdentityNotFound,
		},
		{
			name:     "mismatched hash and password",
			err:      tenantauth.ErrMismatchedHashAndPassword,
			category: errors.CategoryAuth,
			textCode: tenantauth.TextCodeInvalidCreds,
		},
		{
			name:     "duplicate username",
			err:      tenantauth.ErrDuplicateUsername,
			category: errors.CategoryConflict,
			textCode: tenantauth.TextCodeDuplicateUsername,
		},
		{
			name:     "invalid registration",
			err:      tenantauth.ErrInvalidRegistration,
			category: errors.CategoryValidation,
			textCode: tenantauth.TextCodeInvalidRegistration,
		},
		{
			name:     "token expired",
			err:      tenantauth.ErrTokenExpired,
			category: errors.CategoryAuth,
			textCode: tenantauth.TextCodeTokenExpired,
		},
		{
			name:     "token malformed",
			err:      tenantauth.ErrTokenMalformed,
			category: errors.CategoryAuth,
			textCode: tenantauth.TextCodeTokenMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.textCode, tt.err.TextCode)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestIsTokenExpiredError(t *testing.T) {
	assert.False(t, tenantauth.IsTokenExpiredError(nil))
	assert.True(t, tenantauth.IsTokenExpiredError(tenantauth.ErrTokenExpired))
	assert.True(t, tenantauth.IsTokenExpiredError(stderrors.New("token is expired")))
	assert.False(t, tenantauth.IsTokenExpiredError(tenantauth.ErrTokenMalformed))
}

func TestIsMalformedError(t *testing.T) {
	assert.False(t, tenantauth.IsMalformedError(nil))
	assert.True(t, tenantauth.IsMalformedError(tenantauth.ErrTokenMalformed))
	assert.True(t, tenantauth.IsMalformedError(stderrors.New("missing or malformed JWT")))
	assert.False(t, tenantauth.IsMalformedError(tenantauth.ErrTokenExpired))
}

func TestIsDuplicateUsernameError(t *testing.T) {
	assert.False(t, tenantauth.IsDuplicateUsernameError(nil))
	assert.True(t, tenantauth.IsDuplicateUsernameError(tenantauth.ErrDuplicateUsername))

	wrapped := errors.Wrap(tenantauth.ErrDuplicateUsername, errors.CategoryConflict, "registration failed")
	assert.True(t, tenantauth.IsDuplicateUsernameError(wrapped))

	// shape produced by the unique-violation mapping in RegisterTx
	mapped := errors.Wrap(tenantauth.ErrDuplicateUsername, tenantauth.ErrDuplicateUsername.Category, tenantauth.ErrDuplicateUsername.Message).
		WithTextCode(tenantauth.TextCodeDuplicateUsername).
		WithMetadata(map[string]any{"username": "bob", "cause": "UNIQUE constraint failed: users.username"})
	assert.True(t, tenantauth.IsDuplicateUsernameError(mapped))

	tagged := errors.New("username already exists", errors.CategoryConflict).
		WithTextCode(tenantauth.TextCodeDuplicateUsername)
	assert.True(t, tenantauth.IsDuplicateUsernameError(tagged))

	assert.False(t, tenantauth.IsDuplicateUsernameError(tenantauth.ErrIdentityNotFound))
}
