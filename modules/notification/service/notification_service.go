package service

import (
	"context"
	"fmt"
	"time"

	"agenda-api/core/constants"
	appErrors "agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/params"
	calEntity "agenda-api/modules/calendar/entity"
	"agenda-api/modules/notification/entity"
	"agenda-api/modules/notification/repository"
	"agenda-api/modules/notification/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type NotificationServiceInterface interface {
	GetMyNotifications(ctx context.Context, userID uuid.UUID, qp params.QueryParams) (*entity.PaginatedNotificationEntity, *appErrors.AppError)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) *appErrors.AppError
	EventAssigned(ctx context.Context, clientID uuid.UUID, clientEmail string, event *calEntity.Event)
	EventFreed(ctx context.Context, clientID uuid.UUID, clientEmail string, event *calEntity.Event)
	SendDailyDigest(ctx context.Context, day time.Time) error
}

type NotificationService struct {
	repo  repository.NotificationRepositoryInterface
	tasks *asynq.Client
}

// NewNotificationService wires the repository and the asynq producer. The
// asynq client may be nil in tests; enqueueing is then skipped.
func NewNotificationService(repo repository.NotificationRepositoryInterface, taskClient *asynq.Client) *NotificationService {
	return &NotificationService{repo: repo, tasks: taskClient}
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, qp params.QueryParams) (*entity.PaginatedNotificationEntity, *appErrors.AppError) {
	page, err := s.repo.GetByUserID(ctx, userID, qp)
	if err != nil {
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to load notifications", err)
	}
	return page, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) *appErrors.AppError {
	if err := s.repo.MarkAsRead(ctx, userID, ids); err != nil {
		return appErrors.NewAppError(appErrors.ErrInternalServer, "failed to mark notifications as read", err)
	}
	return nil
}

// EventAssigned records an in-app notification for the client and queues
// the confirmation email. Failures here never fail the booking; they are
// logged and dropped.
func (s *NotificationService) EventAssigned(ctx context.Context, clientID uuid.UUID, clientEmail string, event *calEntity.Event) {
	day := event.Day.Format(constants.DayLayout)

	notification := &entity.Notification{
		UserID:  clientID,
		Title:   "Booking confirmed",
		Message: fmt.Sprintf("Your slot on %s from %s to %s is confirmed.", day, event.StartTime, event.EndTime),
		Type:    entity.TypeEventAssigned,
		Data: entity.JSONB{
			"day":        day,
			"start_time": event.StartTime,
			"end_time":   event.EndTime,
		},
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		logger.Error("NotificationService:EventAssigned:Create:Error", "error", err)
	}

	s.enqueueEmail(tasks.BookingEmailPayload{
		To:        clientEmail,
		Subject:   "Booking confirmed",
		Day:       day,
		StartTime: event.StartTime,
		EndTime:   event.EndTime,
		Kind:      tasks.KindConfirmation,
	})
}

// EventFreed records the cancellation for the previous holder and queues
// the cancellation email.
func (s *NotificationService) EventFreed(ctx context.Context, clientID uuid.UUID, clientEmail string, event *calEntity.Event) {
	day := event.Day.Format(constants.DayLayout)

	notification := &entity.Notification{
		UserID:  clientID,
		Title:   "Booking cancelled",
		Message: fmt.Sprintf("Your slot on %s from %s to %s was freed.", day, event.StartTime, event.EndTime),
		Type:    entity.TypeEventFreed,
		Data: entity.JSONB{
			"day":        day,
			"start_time": event.StartTime,
			"end_time":   event.EndTime,
		},
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		logger.Error("NotificationService:EventFreed:Create:Error", "error", err)
	}

	s.enqueueEmail(tasks.BookingEmailPayload{
		To:        clientEmail,
		Subject:   "Booking cancelled",
		Day:       day,
		StartTime: event.StartTime,
		EndTime:   event.EndTime,
		Kind:      tasks.KindCancellation,
	})
}

// SendDailyDigest queues a reminder email for every slot assigned on the
// given day. Run by the cron scheduler the evening before.
func (s *NotificationService) SendDailyDigest(ctx context.Context, day time.Time) error {
	reminders, err := s.repo.ListRemindersForDay(ctx, day)
	if err != nil {
		logger.Error("NotificationService:SendDailyDigest:ListRemindersForDay:Error", "error", err)
		return err
	}

	logger.Info("NotificationService:SendDailyDigest", "day", day.Format(constants.DayLayout), "count", len(reminders))
	for _, reminder := range reminders {
		s.enqueueEmail(tasks.BookingEmailPayload{
			To:        reminder.ClientEmail,
			Subject:   "Upcoming booking reminder",
			Summary:   reminder.Summary,
			Day:       reminder.Day,
			StartTime: reminder.StartTime,
			EndTime:   reminder.EndTime,
			Kind:      tasks.KindReminder,
		})
	}
	return nil
}

func (s *NotificationService) enqueueEmail(payload tasks.BookingEmailPayload) {
	if s.tasks == nil {
		return
	}
	task, err := tasks.NewBookingEmailTask(payload)
	if err != nil {
		logger.Error("NotificationService:enqueueEmail:NewBookingEmailTask:Error", "error", err)
		return
	}
	if _, err := s.tasks.Enqueue(task, asynq.Queue(constants.QueueDefault), asynq.MaxRetry(3)); err != nil {
		logger.Error("NotificationService:enqueueEmail:Enqueue:Error", "error", err)
	}
}
