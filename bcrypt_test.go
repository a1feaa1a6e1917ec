package tenantauth_test

import (
	"testing"

	tenantauth "github.com/goliatone/go-tenant-auth"
	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
			wantErr:  false,
		},
		{
			name:     "Username used as temporary password",
			password: "somchai",
			wantErr:  false,
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  true, // bcrypt can hash empty strings!
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := tenantauth.HashPassword(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tenantauth.ErrNoEmptyString)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)

			err = tenantauth.ComparePasswordAndHash(tt.password, hash)
			assert.NoError(t, err)
		})
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := tenantauth.HashPassword("secret")
	assert.NoError(t, err)

	second, err := tenantauth.HashPassword("secret")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, tenantauth.ComparePasswordAndHash("secret", first))
	assert.NoError(t, tenantauth.ComparePasswordAndHash("secret", second))
}

func TestComparePasswordAndHash(t *testing.T) {
	password := "testPassword123!"
	hash, err := tenantauth.HashPassword(password)
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  bool
	}{
		{
			name:     "Matching password",
			password: password,
			hash:     hash,
			wantErr:  false,
		},
		{
			name:     "Wrong password",
			password: "wrongPassword",
			hash:     hash,
			wantErr:  true,
		},
		{
			name:     "Invalid hash",
			password: password,
			hash:     "not-a-bcrypt-hash",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tenantauth.ComparePasswordAndHash(tt.password, tt.hash)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestComparePasswordAndHashMismatchError(t *testing.T) {
	hash, err := tenantauth.HashPassword("password123")
	assert.NoError(t, err)

	err = tenantauth.ComparePasswordAndHash("different", hash)
	assert.ErrorIs(t, err, tenantauth.ErrMismatchedHashAndPassword)
}
