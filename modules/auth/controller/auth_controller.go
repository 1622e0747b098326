package controller

import (
	"net/http"

	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/middleware"
	"agenda-api/modules/auth/dto"
	"agenda-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	service service.AuthServiceInterface
	base    controller.BaseController
}

func NewAuthController(service service.AuthServiceInterface) *AuthController {
	return &AuthController{
		service: service,
		base:    controller.NewBaseController(),
	}
}

// Register creates a new Client or Owner account
// @Summary Register a client or an owner
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "registration payload"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx echo.Context) error {
	var req dto.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid request body", err))
	}

	if appErr := c.service.Register(ctx.Request().Context(), &req); appErr != nil {
		return c.base.Error(ctx, appErr)
	}
	return c.base.Success(ctx, nil, "registered")
}

// Login authenticates a principal and issues a bearer token
// @Summary Log in as a client or an owner
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "login payload"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx echo.Context) error {
	var req dto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid request body", err))
	}

	resp, appErr := c.service.Login(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.base.Error(ctx, appErr)
	}
	return c.base.Success(ctx, resp, "logged in")
}

// Logout revokes the current bearer token and sends the caller back to the
// login page.
// @Summary Log out
// @Tags auth
// @Security BearerAuth
// @Success 302
// @Router /auth/logout [get]
func (c *AuthController) Logout(ctx echo.Context) error {
	token := middleware.TokenFromContext(ctx)
	if token == "" {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrMissingAuthorizationHeader, "missing token", nil))
	}

	if appErr := c.service.Logout(ctx.Request().Context(), token); appErr != nil {
		return c.base.Error(ctx, appErr)
	}
	return ctx.Redirect(http.StatusFound, "/login")
}
