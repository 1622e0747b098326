package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agenda-api/core/cache"
	"agenda-api/core/config"
	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/auth"
	"agenda-api/modules/calendar"
	"agenda-api/modules/notification"
	"agenda-api/modules/notification/mailer"
	"agenda-api/modules/notification/worker"
	"agenda-api/modules/owner"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Run boots the whole API: config, database, redis, HTTP routes, the
// email worker and the reminder scheduler. It blocks until SIGINT or
// SIGTERM and then shuts everything down in reverse order.
func Run() error {
	logger.Init("info")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Log.Level)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.SQLx().Close()

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisCache.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORS())
	e.Use(requestLogger())

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer taskClient.Close()

	notificationService := notification.Init(e, db, redisCache, taskClient)
	auth.Init(e, db, redisCache)
	owner.Init(e, db, redisCache)
	calendar.Init(e, db, redisCache, notificationService)

	mailWorker := worker.New(cfg.Redis, mailer.NewSMTPMailer(cfg.SMTP))
	if err := mailWorker.Start(); err != nil {
		return fmt.Errorf("failed to start mail worker: %w", err)
	}
	defer mailWorker.Shutdown()

	scheduler := cron.New()
	// Queue reminders for tomorrow's bookings every evening.
	if _, err := scheduler.AddFunc("0 18 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		tomorrow := time.Now().UTC().AddDate(0, 0, 1).Truncate(24 * time.Hour)
		if err := notificationService.SendDailyDigest(ctx, tomorrow); err != nil {
			logger.Error("Server:DailyDigest:Error", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule daily digest: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start:Error", "error", err)
		}
	}()
	logger.Info("Server started", "addr", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}

func requestLogger() echo.MiddlewareFunc {
	return echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
			)
			return nil
		},
	})
}
