package notification

import (
	"agenda-api/core/cache"
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	auth "agenda-api/modules/auth"
	"agenda-api/modules/notification/controller"
	"agenda-api/modules/notification/repository"
	"agenda-api/modules/notification/router"
	"agenda-api/modules/notification/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init wires the notification module and returns its service so other
// modules can publish booking events through it.
func Init(e *echo.Echo, db database.IDatabase, cache cache.Cache, taskClient *asynq.Client) *service.NotificationService {
	notifRepo := repository.NewNotificationRepository(db)
	notificationService := service.NewNotificationService(notifRepo, taskClient)
	notificationController := controller.NewNotificationController(notificationService)

	authSvc := auth.GetService(db, cache)
	mw := middleware.NewMiddleware(authSvc)

	router.NewNotificationRouter(notificationController).Setup(e, mw)
	return notificationService
}
