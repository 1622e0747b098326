package entity

import (
	"time"

	"github.com/google/uuid"
)

// RosterEntry links an owner to one of their clients. The pair is unique;
// the same client can sit on many owners' rosters.
type RosterEntry struct {
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	ClientID  uuid.UUID `db:"client_id" json:"client_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
