package controller

import (
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/middleware"
	authEntity "agenda-api/modules/auth/entity"
	"agenda-api/modules/owner/dto"
	"agenda-api/modules/owner/service"

	"github.com/labstack/echo/v4"
)

type OwnerController struct {
	service service.OwnerServiceInterface
	base    controller.BaseController
}

func NewOwnerController(service service.OwnerServiceInterface) *OwnerController {
	return &OwnerController{
		service: service,
		base:    controller.NewBaseController(),
	}
}

// AddClient puts a client on the owner's roster
// @Summary Add a client to the roster
// @Tags owner
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AddClientRequest true "client reference"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/owner/clients [post]
func (c *OwnerController) AddClient(ctx echo.Context) error {
	principal, appErr := c.requireOwner(ctx)
	if appErr != nil {
		return c.base.Error(ctx, appErr)
	}

	var req dto.AddClientRequest
	if err := ctx.Bind(&req); err != nil {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid request body", err))
	}

	if appErr := c.service.AddClient(ctx.Request().Context(), principal.ID, req.Email, req.IdentityNumber); appErr != nil {
		return c.base.Error(ctx, appErr)
	}
	return c.base.Success(ctx, nil, "client added")
}

// DeleteClient removes a client from the owner's roster
// @Summary Remove a client from the roster
// @Tags owner
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.DeleteClientRequest true "client identity number"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/owner/clients/delete [post]
func (c *OwnerController) DeleteClient(ctx echo.Context) error {
	principal, appErr := c.requireOwner(ctx)
	if appErr != nil {
		return c.base.Error(ctx, appErr)
	}

	var req dto.DeleteClientRequest
	if err := ctx.Bind(&req); err != nil {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid request body", err))
	}

	if appErr := c.service.DeleteClient(ctx.Request().Context(), principal.ID, req.IdentityNumber); appErr != nil {
		return c.base.Error(ctx, appErr)
	}
	return c.base.Success(ctx, nil, "client deleted")
}

// ListClients returns the owner's roster
// @Summary List roster clients
// @Tags owner
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.RosterResponse
// @Router /private/owner/clients [get]
func (c *OwnerController) ListClients(ctx echo.Context) error {
	principal, appErr := c.requireOwner(ctx)
	if appErr != nil {
		return c.base.Error(ctx, appErr)
	}

	clients, appErr := c.service.ListClients(ctx.Request().Context(), principal.ID)
	if appErr != nil {
		return c.base.Error(ctx, appErr)
	}

	resp := dto.RosterResponse{Clients: make([]dto.RosterClientResponse, 0, len(clients))}
	for i := range clients {
		resp.Clients = append(resp.Clients, dto.RosterClientResponse{
			Email:          clients[i].Email,
			FirstName:      clients[i].FirstName,
			LastName:       clients[i].LastName,
			IdentityNumber: clients[i].IdentityNumber,
		})
	}
	return c.base.Success(ctx, resp, "")
}

func (c *OwnerController) requireOwner(ctx echo.Context) (authEntity.Principal, *errors.AppError) {
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		return authEntity.Principal{}, errors.NewAppError(errors.ErrUnauthorized, "missing principal", nil)
	}
	if !principal.IsOwner() {
		return authEntity.Principal{}, errors.NewAppError(errors.ErrForbidden, "owners only", nil)
	}
	return principal, nil
}
