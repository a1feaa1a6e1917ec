package tenantauth

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

type Middleware interface {
	ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc
}

// RegisterAuthRoutes mounts the credential endpoints. The returned
// controller can then be used to mount protected tenant routes.
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.
		Post(
			controller.Routes.Login,
			controller.LoginPost,
		).
		SetName("auth-login.post")

	app.Post(controller.Routes.Register, controller.RegistrationCreate).
		SetName("auth-register.post")

	return controller
}

// RegisterTenantRoutes mounts routes that require a verified bearer token.
func RegisterTenantRoutes[T any](app router.Router[T], controller *AuthController, protect router.MiddlewareFunc) {
	app.Get(controller.Routes.Profile, protect(controller.ProfileShow)).
		SetName("tenant-profile.get")
}

type AuthControllerRoutes struct {
	Login    string
	Register string
	Profile  string
}

type AuthController struct {
	Debug        bool
	Logger       Logger
	Repo         RepositoryManager
	Routes       *AuthControllerRoutes
	Auther       Authenticator
	ContextKey   string
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:       defLogger{},
		ErrorHandler: RenderError,
		ContextKey:   "user",
		Routes: &AuthControllerRoutes{
			Login:    "/auth/login",
			Register: "/auth/register",
			Profile:  "/tenant/profile",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

func WithControllerRepo(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

func WithControllerAuther(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithControllerContextKey(key string) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if key != "" {
			c.ContextKey = key
		}
		return c
	}
}

func WithControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

// LoginRequest payload
type LoginRequest struct {
	Identifier string `form:"identifier" json:"identifier"`
	Password   string `form:"password" json:"password"`
}

// GetIdentifier returns the identifier
func (r LoginRequest) GetIdentifier() string {
	return r.Identifier
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// Validate will run validation rules. The identifier is a username, not
// an email: registration derives usernames from the email local part.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Identifier,
			validation.Required,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse login payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("login validate payload", "error", err)
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload").
			WithCode(goerrors.CodeBadRequest).
			WithMetadata(map[string]any{"validation": FormatValidationErrorToMap(err)}))
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	result, err := a.Auther.Login(ctx.Context(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		a.Logger.Error("login error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, result)
}

// RegistrationCreatePayload is the registration payload. The email is
// required but deliberately NOT checked for email shape: values without
// an "@" are accepted and used verbatim as usernames.
type RegistrationCreatePayload struct {
	DisplayName string          `form:"displayName" json:"displayName"`
	Email       string          `form:"email" json:"email"`
	Profile     BusinessProfile `form:"businessInfo" json:"businessInfo"`
}

// Validate will validate the payload
func (r RegistrationCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DisplayName, validation.Length(0, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(1, 100)),
	)
}

func (a *AuthController) RegistrationCreate(ctx router.Context) error {
	payload := new(RegistrationCreatePayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register tenant parse payload", "error", err)
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse registration payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register tenant validate payload", "error", err)
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload").
			WithCode(goerrors.CodeBadRequest).
			WithMetadata(map[string]any{"validation": FormatValidationErrorToMap(err)}))
	}

	req := RegisterTenantMessage{
		DisplayName: payload.DisplayName,
		Email:       payload.Email,
		Profile:     payload.Profile,
	}

	registerTenant := NewRegisterTenantHandler(a.Repo).WithLogger(a.Logger)
	result, err := registerTenant.Execute(ctx.Context(), req)
	if err != nil {
		a.Logger.Error("register tenant error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	// The identity is committed at this point. A profile failure below
	// is reported but does not undo the registration.
	profile := payload.Profile
	profile.UserID = result.ID
	profile.NormalizePhone()

	if _, err := a.Repo.BusinessProfiles().Create(ctx.Context(), &profile); err != nil {
		a.Logger.Error("tenant profile create error", "error", err, "user_id", result.ID)
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryInternal, "identity registered but business profile was not saved").
			WithMetadata(map[string]any{"user_id": result.ID.String()}))
	}

	if a.Debug {
		fmt.Println("======= AUTH REGISTER ======")
		fmt.Println(print.MaybePrettyJSON(result))
		fmt.Println("============================")
	}

	return ctx.JSON(fiber.StatusOK, result)
}

func (a *AuthController) ProfileShow(ctx router.Context) error {
	session, ok := GetRouterSession(ctx, a.ContextKey)
	if !ok {
		return a.ErrorHandler(ctx, ErrUnableToFindSession)
	}

	identity, err := a.Auther.IdentityFromSession(ctx.Context(), session)
	if err != nil {
		a.Logger.Error("profile identity lookup", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	userID, err := uuid.Parse(identity.ID())
	if err != nil {
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryInternal, "identity carries a malformed id"))
	}

	profile, err := a.Repo.BusinessProfiles().GetByUserID(ctx.Context(), userID)
	if err != nil {
		a.Logger.Error("profile lookup", "error", err, "user_id", userID)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"id":                 identity.ID(),
		"userName":           identity.Username(),
		"email":              identity.Email(),
		"mustChangePassword": identity.MustChangePassword(),
		"businessInfo":       profile,
	})
}

// FormatValidationErrorToMap flattens ozzo field errors into a plain map
// for JSON responses.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var fieldErrs validation.Errors
	if goerrors.As(err, &fieldErrs) {
		for field, ferr := range fieldErrs {
			out[field] = ferr.Error()
		}
		return out
	}

	out["error"] = err.Error()
	return out
}
