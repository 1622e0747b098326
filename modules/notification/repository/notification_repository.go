package repository

import (
	"context"
	"time"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/core/params"
	"agenda-api/modules/notification/entity"

	"github.com/google/uuid"
)

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByUserID(ctx context.Context, userID uuid.UUID, params params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	ListRemindersForDay(ctx context.Context, day time.Time) ([]entity.BookingReminder, error)
}

type NotificationRepository struct {
	db database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, type, data, is_read)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		notification.UserID, notification.Title, notification.Message,
		notification.Type, notification.Data, notification.IsRead,
	).Scan(&notification.ID, &notification.CreatedAt, &notification.UpdatedAt)
	if err != nil {
		logger.Error("NotificationRepository:Create:Error", "error", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID, qp params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	offset := (qp.PageNumber - 1) * qp.PageSize

	var totalItems int
	err := r.db.GetContext(ctx, &totalItems,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		logger.Error("NotificationRepository:GetByUserID:Count:Error", "error", err)
		return nil, err
	}

	query := `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var notifications []entity.Notification
	err = r.db.SelectContext(ctx, &notifications, query, userID, qp.PageSize, offset)
	if err != nil {
		logger.Error("NotificationRepository:GetByUserID:Select:Error", "error", err)
		return nil, err
	}

	return &entity.PaginatedNotificationEntity{
		Items:      notifications,
		TotalItems: totalItems,
		PageNumber: qp.PageNumber,
		PageSize:   qp.PageSize,
	}, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	query := `
		UPDATE notifications
		SET is_read = true, updated_at = NOW()
		WHERE user_id = $1 AND id = ANY($2)
	`
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}
	return r.db.ExecContext(ctx, query, userID, "{"+joinStrings(idStrings, ",")+"}")
}

// ListRemindersForDay collects the assigned slots on the given day
// together with their holders' emails.
func (r *NotificationRepository) ListRemindersForDay(ctx context.Context, day time.Time) ([]entity.BookingReminder, error) {
	query := `
		SELECT cl.email AS client_email, ca.summary,
		       to_char(e.day, 'YYYY-MM-DD') AS day, e.start_time, e.end_time
		FROM events e
		JOIN clients cl ON cl.id = e.client_id
		JOIN calendars ca ON ca.id = e.calendar_id
		WHERE e.day = $1 AND NOT e.free
	`
	var reminders []entity.BookingReminder
	if err := r.db.SelectContext(ctx, &reminders, query, day); err != nil {
		return nil, err
	}
	return reminders, nil
}

func joinStrings(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}
