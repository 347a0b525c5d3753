package http

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"lechon/internal/adapters/in/http/auth"
	"lechon/internal/api/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const claimsKey = "claims"

// Authenticate requires a valid bearer token. The token may also come from the
// token query parameter, which browsers need for websocket upgrades.
func Authenticate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tokenStr, ok := bearerToken(ctx.Request())
			if !ok {
				return unauthorized(ctx, "missing authorization token")
			}

			claims, err := auth.ValidateToken(secret, tokenStr)
			if err != nil {
				return unauthorized(ctx, "invalid token")
			}

			ctx.Set(claimsKey, claims)
			return next(ctx)
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	if header := r.Header.Get(echo.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token, true
	}
	return "", false
}

// RequireRole lets through callers holding one of roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims := ClaimsFrom(ctx)
			if claims == nil {
				return unauthorized(ctx, "not authenticated")
			}
			if !slices.Contains(roles, claims.Role) {
				return ctx.JSON(http.StatusForbidden, servers.Error{
					Code:    http.StatusForbidden,
					Message: "insufficient permissions",
				})
			}
			return next(ctx)
		}
	}
}

// ClaimsFrom returns the claims stored by Authenticate, or nil.
func ClaimsFrom(ctx echo.Context) *auth.Claims {
	claims, _ := ctx.Get(claimsKey).(*auth.Claims)
	return claims
}

func unauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, servers.Error{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}

// OpenAPIValidator rejects requests that do not match doc with 400. Requests for
// paths outside doc pass through untouched. Authentication is left to Authenticate.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(ctx)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return ctx.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(err),
				})
			}
			return next(ctx)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return "invalid parameter " + reqErr.Parameter.Name + ": " + reqErr.Reason
		}
		if reqErr.RequestBody != nil {
			var schemaErr *openapi3.SchemaError
			if errors.As(reqErr.Err, &schemaErr) {
				return "invalid request body: " + schemaErr.Reason
			}
			return "invalid request body"
		}
	}
	return "invalid request"
}

// RequestLogger logs one line per request through slog.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.RequestID != "" {
				attrs = append(attrs, "request_id", v.RequestID)
			}
			if v.Error != nil {
				logger.WarnContext(ctx.Request().Context(), "request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(ctx.Request().Context(), "request", attrs...)
			return nil
		},
	})
}
