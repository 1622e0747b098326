package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	coreEntity "agenda-api/core/entity"

	"github.com/google/uuid"
)

// Notification types.
const (
	TypeEventAssigned = "event_assigned"
	TypeEventFreed    = "event_freed"
)

// Notification is an in-app message shown to a client or owner.
type Notification struct {
	UserID  uuid.UUID `db:"user_id" json:"user_id"`
	Title   string    `db:"title" json:"title"`
	Message string    `db:"message" json:"message"`
	Type    string    `db:"type" json:"type"`
	Data    JSONB     `db:"data" json:"data"`
	IsRead  bool      `db:"is_read" json:"is_read"`
	coreEntity.BaseEntity
}

type JSONB map[string]interface{}

func (a JSONB) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *JSONB) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &a)
}

type PaginatedNotificationEntity = coreEntity.Pagination[Notification]

// BookingReminder is one row of the daily digest: an assigned slot
// happening on the digest's target day.
type BookingReminder struct {
	ClientEmail string `db:"client_email"`
	Summary     string `db:"summary"`
	Day         string `db:"day"`
	StartTime   string `db:"start_time"`
	EndTime     string `db:"end_time"`
}
