package controller

import (
	"time"

	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/middleware"
	"agenda-api/core/params"
	"agenda-api/modules/notification/dto"
	"agenda-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	service service.NotificationServiceInterface
	base    controller.BaseController
}

func NewNotificationController(service service.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		service: service,
		base:    controller.NewBaseController(),
	}
}

// GetMyNotifications returns the caller's notifications, newest first
// @Summary List my notifications
// @Tags notification
// @Security BearerAuth
// @Produce json
// @Param page query int false "page number"
// @Param page_size query int false "page size"
// @Success 200 {object} dto.NotificationListResponse
// @Router /private/notifications [get]
func (c *NotificationController) GetMyNotifications(ctx echo.Context) error {
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrUnauthorized, "missing principal", nil))
	}

	qp := params.FromEchoContext(ctx)
	page, appErr := c.service.GetMyNotifications(ctx.Request().Context(), principal.ID, qp)
	if appErr != nil {
		return c.base.Error(ctx, appErr)
	}

	resp := dto.NotificationListResponse{
		Items:      make([]dto.NotificationResponse, 0, len(page.Items)),
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
	for i := range page.Items {
		n := &page.Items[i]
		resp.Items = append(resp.Items, dto.NotificationResponse{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			Data:      n.Data,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.base.Success(ctx, resp, "")
}

// MarkAsRead marks the given notifications as read
// @Summary Mark notifications as read
// @Tags notification
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.MarkAsReadRequest true "notification ids"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/notifications/read [post]
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrUnauthorized, "missing principal", nil))
	}

	var req dto.MarkAsReadRequest
	if err := ctx.Bind(&req); err != nil {
		return c.base.Error(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid request body", err))
	}

	if appErr := c.service.MarkAsRead(ctx.Request().Context(), principal.ID, req.IDs); appErr != nil {
		return c.base.Error(ctx, appErr)
	}
	return c.base.Success(ctx, nil, "notifications marked as read")
}
