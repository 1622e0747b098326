package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	controller *controller.CalendarController
}

func NewCalendarRouter(controller *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{controller: controller}
}

func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public booking page data
	v1.GET("/public/calendars/:slug/events", r.controller.PublicFreeEvents)

	ownerRoutes := v1.Group("/private/owner")
	ownerRoutes.Use(mw.AuthMiddleware())
	ownerRoutes.POST("/calendar", r.controller.CreateCalendar)

	eventRoutes := v1.Group("/private/calendar/events")
	eventRoutes.Use(mw.AuthMiddleware())
	eventRoutes.GET("", r.controller.AvailableEvents)
	eventRoutes.POST("", r.controller.CreateEvent)
	eventRoutes.POST("/delete", r.controller.DeleteEvent)
	eventRoutes.POST("/assign", r.controller.AssignEvent)
	eventRoutes.POST("/book", r.controller.BookEvent)
	eventRoutes.POST("/cancel", r.controller.CancelEvent)
}
