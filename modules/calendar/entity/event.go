package entity

import (
	"time"

	coreEntity "agenda-api/core/entity"

	"github.com/google/uuid"
)

// Event is one bookable slot on a calendar. Times are zero-padded "HH:MM"
// strings, so lexical order matches chronological order within a day.
//
// Free and ClientID always change together: a free event has no client and
// an assigned event always has one.
type Event struct {
	CalendarID uuid.UUID  `db:"calendar_id" json:"calendar_id"`
	Day        time.Time  `db:"day" json:"day"`
	StartTime  string     `db:"start_time" json:"start_time"`
	EndTime    string     `db:"end_time" json:"end_time"`
	Location   *string    `db:"location" json:"location,omitempty"`
	Free       bool       `db:"free" json:"free"`
	ClientID   *uuid.UUID `db:"client_id" json:"client_id,omitempty"`
	coreEntity.BaseEntity
}

// EventFilter selects events by field equality. Nil fields do not
// constrain the result.
type EventFilter struct {
	Day       *time.Time
	StartTime *string
	EndTime   *string
	Free      *bool
	ClientID  *uuid.UUID
	Month     *int
	Year      *int
}
