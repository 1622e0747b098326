package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

type NotificationRouter struct {
	controller *controller.NotificationController
}

func NewNotificationRouter(controller *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{controller: controller}
}

func (r *NotificationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	notifications := v1.Group("/private/notifications")
	notifications.Use(mw.AuthMiddleware())
	notifications.GET("", r.controller.GetMyNotifications)
	notifications.POST("/read", r.controller.MarkAsRead)
}
