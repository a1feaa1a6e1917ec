package tenantauth

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RegisterTenantMessage is the registration request: the identity fields
// the credential core acts on, plus the business profile forwarded
// verbatim to the tenant store.
type RegisterTenantMessage struct {
	DisplayName string          `json:"displayName"`
	Email       string          `json:"email"`
	Profile     BusinessProfile `json:"profile"`
	UseHashid   bool            `json:"-"`
}

func (e RegisterTenantMessage) Type() string { return "tenant.register" }

// RegistrationResult is what the caller gets back. It never carries the
// password hash.
type RegistrationResult struct {
	ID                 uuid.UUID `json:"id"`
	Username           string    `json:"userName"`
	Email              string    `json:"email"`
	DisplayName        string    `json:"displayName"`
	MustChangePassword bool      `json:"mustChangePassword"`
}

// DeriveUsername maps an email to a username: the part before the first
// "@", or the whole value when it has none. Empty input and an empty
// derived name are rejected rather than creating a blank identity.
func DeriveUsername(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", goerrors.Wrap(ErrInvalidRegistration, goerrors.CategoryValidation, "email is required to derive a username")
	}

	username := email
	if i := strings.Index(email, "@"); i >= 0 {
		username = email[:i]
	}

	if username == "" {
		return "", goerrors.Wrap(ErrInvalidRegistration, goerrors.CategoryValidation, "email yields an empty username")
	}

	return username, nil
}

type RegisterTenantHandler struct {
	repo   RepositoryManager
	logger Logger
}

func NewRegisterTenantHandler(repo RepositoryManager) *RegisterTenantHandler {
	return &RegisterTenantHandler{
		repo:   repo,
		logger: defLogger{},
	}
}

func (h *RegisterTenantHandler) WithLogger(l Logger) *RegisterTenantHandler {
	if l != nil {
		h.logger = l
	}
	return h
}

// Execute creates the identity: username derived from the email, initial
// password equal to the username (hashed), MustChangePassword set. The
// user write runs in a transaction; a duplicate username surfaces
// ErrDuplicateUsername with no partial write. Business profile
// persistence is the caller's follow-up step and is NOT rolled into this
// transaction: a later profile failure leaves the identity committed.
func (h *RegisterTenantHandler) Execute(ctx context.Context, event RegisterTenantMessage) (*RegistrationResult, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during tenant registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterTenantHandler) execute(ctx context.Context, event RegisterTenantMessage) (*RegistrationResult, error) {
	username, err := DeriveUsername(event.Email)
	if err != nil {
		return nil, err
	}

	user := &User{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err = h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// Onboarding convention: the temporary password IS the username.
		// MustChangePassword stays true until the user replaces it.
		hash, err := HashPassword(username)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid initial password")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		user.Username = username
		user.PasswordHash = hash
		user.Email = strings.TrimSpace(event.Email)
		user.FullName = event.DisplayName
		user.MustChangePassword = true
		if event.UseHashid {
			if id, err := hashid.NewUUID(event.Email); err == nil {
				user.ID = id
			}
		}

		if user, err = h.repo.Users().RegisterTx(ctx, tx, user); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "tenant registration transaction failed")
	}

	return &RegistrationResult{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		DisplayName:        user.FullName,
		MustChangePassword: user.MustChangePassword,
	}, nil
}
