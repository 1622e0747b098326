package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/owner/controller"

	"github.com/labstack/echo/v4"
)

type OwnerRouter struct {
	controller *controller.OwnerController
}

func NewOwnerRouter(controller *controller.OwnerController) *OwnerRouter {
	return &OwnerRouter{controller: controller}
}

func (r *OwnerRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	clients := v1.Group("/private/owner/clients")
	clients.Use(mw.AuthMiddleware())
	clients.GET("", r.controller.ListClients)
	clients.POST("", r.controller.AddClient)
	clients.POST("/delete", r.controller.DeleteClient)
}
