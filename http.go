package tenantauth

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RouteAuthenticator wires the token service into the HTTP surface: it
// guards routes with bearer token validation and renders credential errors
// as JSON payloads.
type RouteAuthenticator struct {
	auth         Authenticator
	cfg          Config
	Logger       Logger
	ErrorHandler func(c router.Context, err error) error
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	a := &RouteAuthenticator{
		cfg:    cfg,
		auth:   auther,
		Logger: defLogger{},
	}

	a.ErrorHandler = a.defaultErrHandler

	return a, nil
}

// ProtectedRoute validates the Authorization header before the wrapped
// handler runs. Verified claims end up in router locals under the
// configured context key and in the request context.
func (a *RouteAuthenticator) ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			raw, err := extractBearerToken(ctx, cfg.GetAuthScheme())
			if err != nil {
				return errorHandler(ctx, err)
			}

			claims, err := a.auth.SessionFromToken(raw)
			if err != nil {
				if subject, serr := a.tokenSubject(raw); serr == nil {
					a.Logger.Debug("Token rejected", "subject", subject)
				}
				return errorHandler(ctx, err)
			}

			ctx.Locals(cfg.GetContextKey(), claims)
			ctx.SetContext(WithSessionContext(ctx.Context(), claims))

			return hf(ctx)
		}
	}
}

func (a *RouteAuthenticator) MakeClientRouteAuthErrorHandler(optional bool) func(router.Context, error) error {
	return func(ctx router.Context, err error) error {
		var richErr *errors.Error

		if IsTokenExpiredError(err) {
			richErr = ErrTokenExpired
		} else if IsMalformedError(err) {
			richErr = ErrTokenMalformed
		} else if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
				WithCode(errors.CodeUnauthorized)
		}

		if optional {
			a.Logger.Info("Optional auth failed, proceeding", "error", richErr.Message)
			return ctx.Next()
		}

		return a.ErrorHandler(ctx, richErr)
	}
}

func (a *RouteAuthenticator) tokenSubject(raw string) (string, error) {
	ts, ok := a.auth.(interface{ TokenService() TokenService })
	if !ok {
		return "", errors.New("authenticator has no token service", errors.CategoryInternal)
	}

	return ts.TokenService().ExtractSubject(raw)
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	a.Logger.Info(
		"Middleware error handler",
		"error", richErr.Message,
		"category", richErr.Category,
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	return RenderError(c, richErr)
}

// RenderError writes an error as the JSON envelope the API contract
// promises, deriving the HTTP status from the error category.
func RenderError(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := statusForError(richErr)

	return c.JSON(status, map[string]any{
		"error": map[string]any{
			"message":   richErr.Message,
			"text_code": richErr.TextCode,
		},
	})
}

func statusForError(err *errors.Error) int {
	if err.Code >= http.StatusBadRequest {
		return err.Code
	}

	switch err.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return http.StatusUnauthorized
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func extractBearerToken(ctx router.Context, authScheme string) (string, error) {
	header := ctx.GetString(router.HeaderAuthorization, "")
	if header == "" {
		return "", ErrUnableToFindSession
	}

	if authScheme == "" {
		return header, nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], authScheme) || parts[1] == "" {
		return "", ErrUnableToFindSession
	}

	return strings.TrimSpace(parts[1]), nil
}
