package tenantauth_test

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-repository-bun"
	tenantauth "github.com/goliatone/go-tenant-auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockAuthenticator implements tenantauth.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, identifier, password string) (*tenantauth.LoginResult, error) {
	args := m.Called(ctx, identifier, password)
	result, _ := args.Get(0).(*tenantauth.LoginResult)
	return result, args.Error(1)
}

func (m *MockAuthenticator) SessionFromToken(token string) (tenantauth.Session, error) {
	args := m.Called(token)
	session, _ := args.Get(0).(tenantauth.Session)
	return session, args.Error(1)
}

func (m *MockAuthenticator) IdentityFromSession(ctx context.Context, session tenantauth.Session) (tenantauth.Identity, error) {
	args := m.Called(ctx, session)
	identity, _ := args.Get(0).(tenantauth.Identity)
	return identity, args.Error(1)
}

// MockUserStore implements tenantauth.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*tenantauth.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*tenantauth.User)
	return user, args.Error(1)
}

// MockUsers implements tenantauth.Users for the methods the commands
// exercise. The embedded interface covers the rest of the repository
// surface; calling an unmocked method panics, which is what we want.
type MockUsers struct {
	mock.Mock
	repository.Repository[*tenantauth.User]
}

func (m *MockUsers) Register(ctx context.Context, user *tenantauth.User) (*tenantauth.User, error) {
	args := m.Called(ctx, user)
	record, _ := args.Get(0).(*tenantauth.User)
	return record, args.Error(1)
}

func (m *MockUsers) RegisterTx(ctx context.Context, tx bun.IDB, user *tenantauth.User) (*tenantauth.User, error) {
	args := m.Called(ctx, tx, user)
	record, _ := args.Get(0).(*tenantauth.User)
	return record, args.Error(1)
}

func (m *MockUsers) GetByUsername(ctx context.Context, username string) (*tenantauth.User, error) {
	args := m.Called(ctx, username)
	record, _ := args.Get(0).(*tenantauth.User)
	return record, args.Error(1)
}

func (m *MockUsers) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*tenantauth.User, error) {
	args := m.Called(ctx, tx, username)
	record, _ := args.Get(0).(*tenantauth.User)
	return record, args.Error(1)
}

func (m *MockUsers) ClearMustChangePassword(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsers) ClearMustChangePasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

// MockBusinessProfiles implements tenantauth.BusinessProfiles
type MockBusinessProfiles struct {
	mock.Mock
	repository.Repository[*tenantauth.BusinessProfile]
}

func (m *MockBusinessProfiles) Create(ctx context.Context, record *tenantauth.BusinessProfile, criteria ...repository.InsertCriteria) (*tenantauth.BusinessProfile, error) {
	args := m.Called(ctx, record)
	created, _ := args.Get(0).(*tenantauth.BusinessProfile)
	return created, args.Error(1)
}

func (m *MockBusinessProfiles) GetByUserID(ctx context.Context, userID uuid.UUID) (*tenantauth.BusinessProfile, error) {
	args := m.Called(ctx, userID)
	record, _ := args.Get(0).(*tenantauth.BusinessProfile)
	return record, args.Error(1)
}

func (m *MockBusinessProfiles) GetByUserIDTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) (*tenantauth.BusinessProfile, error) {
	args := m.Called(ctx, tx, userID)
	record, _ := args.Get(0).(*tenantauth.BusinessProfile)
	return record, args.Error(1)
}

// MockRepositoryManager implements tenantauth.RepositoryManager
type MockRepositoryManager struct {
	mock.Mock
}

func (m *MockRepositoryManager) Users() tenantauth.Users {
	args := m.Called()
	return args.Get(0).(tenantauth.Users)
}

func (m *MockRepositoryManager) BusinessProfiles() tenantauth.BusinessProfiles {
	args := m.Called()
	return args.Get(0).(tenantauth.BusinessProfiles)
}

func (m *MockRepositoryManager) Validate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockRepositoryManager) MustValidate() {
	m.Called()
}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	args := m.Called(ctx, opts, f)
	return args.Error(0)
}

// MockIdentity implements tenantauth.Identity for testing
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Username() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) MustChangePassword() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockLogger implements tenantauth.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

type testLogger struct{}

func (testLogger) Debug(string, ...any) {}
func (testLogger) Info(string, ...any)  {}
func (testLogger) Warn(string, ...any)  {}
func (testLogger) Error(string, ...any) {}

// testConfig implements tenantauth.Config
type testConfig struct {
	signingKey      string
	tokenExpiration int
	issuer          string
	audience        []string
	contextKey      string
	authScheme      string
}

func newTestConfig() testConfig {
	return testConfig{
		signingKey:      "test-signing-key",
		tokenExpiration: 10,
		issuer:          "test-issuer",
		audience:        []string{"test-audience"},
		contextKey:      "user",
		authScheme:      "Bearer",
	}
}

func (c testConfig) GetSigningKey() string   { return c.signingKey }
func (c testConfig) GetTokenExpiration() int { return c.tokenExpiration }
func (c testConfig) GetIssuer() string       { return c.issuer }
func (c testConfig) GetAudience() []string   { return c.audience }
func (c testConfig) GetContextKey() string   { return c.contextKey }
func (c testConfig) GetAuthScheme() string   { return c.authScheme }
