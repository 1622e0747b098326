package middleware

import (
	"context"
	"strings"

	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/modules/auth/entity"

	"github.com/labstack/echo/v4"
)

const principalContextKey = "principal"

// TokenValidator resolves a bearer token to a Principal. Implemented by the
// auth service; declared here so the middleware does not depend on it.
type TokenValidator interface {
	ValidatePrincipalToken(ctx context.Context, token string) (*entity.Principal, *errors.AppError)
}

type Middleware struct {
	validator TokenValidator
	base      controller.BaseController
}

func NewMiddleware(validator TokenValidator) *Middleware {
	return &Middleware{
		validator: validator,
		base:      controller.NewBaseController(),
	}
}

// AuthMiddleware authenticates the request and stores the resolved
// Principal in the echo context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return m.base.Error(c, errors.NewAppError(
					errors.ErrMissingAuthorizationHeader, "missing authorization header", nil))
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return m.base.Error(c, errors.NewAppError(
					errors.ErrInvalidTokenFormat, "authorization header must be a bearer token", nil))
			}

			principal, appErr := m.validator.ValidatePrincipalToken(c.Request().Context(), token)
			if appErr != nil {
				return m.base.Error(c, appErr)
			}

			c.Set(principalContextKey, *principal)
			c.Set("token", token)
			return next(c)
		}
	}
}

// PrincipalFromContext returns the Principal stored by AuthMiddleware.
func PrincipalFromContext(c echo.Context) (entity.Principal, bool) {
	p, ok := c.Get(principalContextKey).(entity.Principal)
	return p, ok
}

// TokenFromContext returns the raw bearer token of the current request.
func TokenFromContext(c echo.Context) string {
	t, _ := c.Get("token").(string)
	return t
}
