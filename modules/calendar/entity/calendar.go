package entity

import (
	coreEntity "agenda-api/core/entity"

	"github.com/google/uuid"
)

// Calendar is the single agenda an owner exposes to their clients. Slug is
// derived from the summary and identifies the calendar on public pages.
type Calendar struct {
	OwnerID uuid.UUID `db:"owner_id" json:"owner_id"`
	Summary string    `db:"summary" json:"summary"`
	Slug    string    `db:"slug" json:"slug"`
	coreEntity.BaseEntity
}
