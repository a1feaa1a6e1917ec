package tenantauth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// UserStore is the lookup capability the authentication path needs from
// the credential store.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// UserProvider handles users
type UserProvider struct {
	store  UserStore
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the user, compare to the password, and return
// identity. Unknown usernames and mismatched passwords come back as the
// same ErrMismatchedHashAndPassword so callers cannot probe for accounts.
func (u UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.store.GetByUsername(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) || errors.Is(err, ErrIdentityNotFound) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user == nil {
		return nil, ErrMismatchedHashAndPassword
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	return identityFromUser(user), nil
}

// FindIdentityByIdentifier resolves an identity without checking a
// password; session restoration uses it after token validation.
func (u UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.store.GetByUsername(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrIdentityNotFound
	}

	return identityFromUser(user), nil
}

type authIdentity struct {
	id                 string
	username           string
	email              string
	mustChangePassword bool
}

func identityFromUser(user *User) authIdentity {
	return authIdentity{
		id:                 user.ID.String(),
		username:           user.Username,
		email:              user.Email,
		mustChangePassword: user.MustChangePassword,
	}
}

func (a authIdentity) ID() string {
	return a.id
}

func (a authIdentity) Username() string {
	return a.username
}

func (a authIdentity) Email() string {
	return a.email
}

func (a authIdentity) MustChangePassword() bool {
	return a.mustChangePassword
}

var _ Identity = authIdentity{}
