package calendar

import (
	"agenda-api/core/cache"
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	auth "agenda-api/modules/auth"
	"agenda-api/modules/calendar/controller"
	"agenda-api/modules/calendar/repository"
	"agenda-api/modules/calendar/router"
	"agenda-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, cache cache.Cache, notifier service.Notifier) {
	calRepo := repository.NewCalendarRepository(db)
	eventRepo := repository.NewEventRepository(db)
	authSvc := auth.GetService(db, cache)

	calendarService := service.NewCalendarService(calRepo, eventRepo, authSvc, notifier)
	calendarController := controller.NewCalendarController(calendarService)
	mw := middleware.NewMiddleware(authSvc)

	router.NewCalendarRouter(calendarController).Setup(e, mw)
}
