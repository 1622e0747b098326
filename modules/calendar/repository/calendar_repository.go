package repository

import (
	"context"
	"database/sql"
	"errors"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/calendar/entity"

	"github.com/google/uuid"
)

// CalendarRepositoryInterface persists calendars. Get* methods return
// (nil, nil) when no row matches.
type CalendarRepositoryInterface interface {
	Create(ctx context.Context, calendar *entity.Calendar) error
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Calendar, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Calendar, error)
}

type CalendarRepository struct {
	db database.IDatabase
}

func NewCalendarRepository(db database.IDatabase) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) Create(ctx context.Context, calendar *entity.Calendar) error {
	query := `
		INSERT INTO calendars (owner_id, summary, slug)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		calendar.OwnerID, calendar.Summary, calendar.Slug,
	).Scan(&calendar.ID, &calendar.CreatedAt, &calendar.UpdatedAt)
	if err != nil {
		logger.Error("CalendarRepository:Create:Error", "error", err)
		return err
	}
	return nil
}

func (r *CalendarRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Calendar, error) {
	var calendar entity.Calendar
	err := r.db.GetContext(ctx, &calendar, `SELECT * FROM calendars WHERE owner_id = $1`, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &calendar, nil
}

func (r *CalendarRepository) GetBySlug(ctx context.Context, slug string) (*entity.Calendar, error) {
	var calendar entity.Calendar
	err := r.db.GetContext(ctx, &calendar, `SELECT * FROM calendars WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &calendar, nil
}
