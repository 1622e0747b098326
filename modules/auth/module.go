package auth

import (
	"agenda-api/core/cache"
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	"agenda-api/modules/auth/controller"
	"agenda-api/modules/auth/repository"
	"agenda-api/modules/auth/router"
	"agenda-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, cache cache.Cache) {
	repo := repository.NewAuthRepository(db)
	authService := service.NewAuthService(repo, cache)
	authController := controller.NewAuthController(authService)
	mw := middleware.NewMiddleware(authService)

	router.NewAuthRouter(authController).Setup(e, mw)
}

// GetService creates an AuthService instance for use by other modules.
func GetService(db database.IDatabase, cache cache.Cache) service.AuthServiceInterface {
	repo := repository.NewAuthRepository(db)
	return service.NewAuthService(repo, cache)
}
