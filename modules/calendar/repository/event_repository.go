package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/calendar/entity"

	"github.com/google/uuid"
)

// EventRepositoryInterface persists the events of a calendar. GetByKey
// returns (nil, nil) when no row matches the exact
// (calendar, day, start, end) key.
type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.Event) error
	ListByCalendarAndDay(ctx context.Context, calendarID uuid.UUID, day time.Time) ([]entity.Event, error)
	GetByKey(ctx context.Context, calendarID uuid.UUID, day time.Time, startTime, endTime string) (*entity.Event, error)
	DeleteByKey(ctx context.Context, calendarID uuid.UUID, day time.Time, startTime, endTime string) error
	DeleteByWeekday(ctx context.Context, calendarID uuid.UUID, weekday time.Weekday, startTime, endTime string) (int64, error)
	List(ctx context.Context, calendarID uuid.UUID, filter entity.EventFilter) ([]entity.Event, error)
	ListForClientMonth(ctx context.Context, clientID uuid.UUID, month int, year int) ([]entity.Event, error)
	SetAssignment(ctx context.Context, eventID uuid.UUID, clientID *uuid.UUID, free bool) error
}

type EventRepository struct {
	db database.IDatabase
}

func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (calendar_id, day, start_time, end_time, location, free, client_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		event.CalendarID, event.Day, event.StartTime, event.EndTime,
		event.Location, event.Free, event.ClientID,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		logger.Error("EventRepository:Create:Error", "error", err)
		return err
	}
	return nil
}

func (r *EventRepository) ListByCalendarAndDay(ctx context.Context, calendarID uuid.UUID, day time.Time) ([]entity.Event, error) {
	var events []entity.Event
	query := `SELECT * FROM events WHERE calendar_id = $1 AND day = $2`
	if err := r.db.SelectContext(ctx, &events, query, calendarID, day); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) GetByKey(ctx context.Context, calendarID uuid.UUID, day time.Time, startTime, endTime string) (*entity.Event, error) {
	var event entity.Event
	query := `
		SELECT * FROM events
		WHERE calendar_id = $1 AND day = $2 AND start_time = $3 AND end_time = $4
	`
	err := r.db.GetContext(ctx, &event, query, calendarID, day, startTime, endTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) DeleteByKey(ctx context.Context, calendarID uuid.UUID, day time.Time, startTime, endTime string) error {
	query := `
		DELETE FROM events
		WHERE calendar_id = $1 AND day = $2 AND start_time = $3 AND end_time = $4
	`
	return r.db.ExecContext(ctx, query, calendarID, day, startTime, endTime)
}

// DeleteByWeekday removes every event on the calendar that shares the time
// range and falls on the given weekday. EXTRACT(DOW) numbers Sunday as 0,
// matching time.Weekday.
func (r *EventRepository) DeleteByWeekday(ctx context.Context, calendarID uuid.UUID, weekday time.Weekday, startTime, endTime string) (int64, error) {
	res, err := r.db.NamedExecContext(ctx, `
		DELETE FROM events
		WHERE calendar_id = :calendar_id AND start_time = :start_time AND end_time = :end_time
		AND EXTRACT(DOW FROM day) = :weekday
	`, map[string]any{
		"calendar_id": calendarID,
		"start_time":  startTime,
		"end_time":    endTime,
		"weekday":     int(weekday),
	})
	if err != nil {
		logger.Error("EventRepository:DeleteByWeekday:Error", "error", err)
		return 0, err
	}
	return res.RowsAffected()
}

// List returns the calendar's events narrowed by the filter, unordered.
func (r *EventRepository) List(ctx context.Context, calendarID uuid.UUID, filter entity.EventFilter) ([]entity.Event, error) {
	conditions := []string{"calendar_id = $1"}
	args := []any{calendarID}

	addCondition := func(expr string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(expr, len(args)))
	}

	if filter.Day != nil {
		addCondition("day = $%d", *filter.Day)
	}
	if filter.StartTime != nil {
		addCondition("start_time = $%d", *filter.StartTime)
	}
	if filter.EndTime != nil {
		addCondition("end_time = $%d", *filter.EndTime)
	}
	if filter.Free != nil {
		addCondition("free = $%d", *filter.Free)
	}
	if filter.ClientID != nil {
		addCondition("client_id = $%d", *filter.ClientID)
	}
	if filter.Month != nil {
		addCondition("EXTRACT(MONTH FROM day) = $%d", *filter.Month)
	}
	if filter.Year != nil {
		addCondition("EXTRACT(YEAR FROM day) = $%d", *filter.Year)
	}

	query := `SELECT * FROM events WHERE ` + strings.Join(conditions, " AND ")

	var events []entity.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, err
	}
	return events, nil
}

// ListForClientMonth returns what a client sees for a month: the free
// slots on calendars of owners whose roster includes the client, plus the
// slots the client already holds.
func (r *EventRepository) ListForClientMonth(ctx context.Context, clientID uuid.UUID, month int, year int) ([]entity.Event, error) {
	query := `
		SELECT e.* FROM events e
		JOIN calendars c ON c.id = e.calendar_id
		WHERE EXTRACT(MONTH FROM e.day) = $1 AND EXTRACT(YEAR FROM e.day) = $2
		AND (
			e.client_id = $3
			OR (e.free AND c.owner_id IN (
				SELECT owner_id FROM owner_clients WHERE client_id = $3
			))
		)
	`
	var events []entity.Event
	if err := r.db.SelectContext(ctx, &events, query, month, year, clientID); err != nil {
		return nil, err
	}
	return events, nil
}

// SetAssignment updates the holder and free flag together, keeping the
// free/client invariant.
func (r *EventRepository) SetAssignment(ctx context.Context, eventID uuid.UUID, clientID *uuid.UUID, free bool) error {
	query := `
		UPDATE events
		SET client_id = $1, free = $2, updated_at = NOW()
		WHERE id = $3
	`
	return r.db.ExecContext(ctx, query, clientID, free, eventID)
}
