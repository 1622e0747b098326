package owner

import (
	"agenda-api/core/cache"
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	auth "agenda-api/modules/auth"
	"agenda-api/modules/owner/controller"
	"agenda-api/modules/owner/repository"
	"agenda-api/modules/owner/router"
	"agenda-api/modules/owner/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, cache cache.Cache) {
	rosterRepo := repository.NewRosterRepository(db)
	authSvc := auth.GetService(db, cache)
	ownerService := service.NewOwnerService(rosterRepo, authSvc)
	ownerController := controller.NewOwnerController(ownerService)
	mw := middleware.NewMiddleware(authSvc)

	router.NewOwnerRouter(ownerController).Setup(e, mw)
}
