package entity

import (
	coreEntity "agenda-api/core/entity"
)

// Client is a bookable-slot holder. identity_number is the natural unique
// key clients are referenced by across the system.
type Client struct {
	Email          string `db:"email" json:"email"`
	Password       string `db:"password" json:"-"`
	FirstName      string `db:"first_name" json:"first_name"`
	LastName       string `db:"last_name" json:"last_name"`
	IdentityNumber int64  `db:"identity_number" json:"identity_number"`
	coreEntity.BaseEntity
}

// Owner runs a calendar and a roster of clients. OwnerNumber is the
// generated numeric display id; it is assigned once at creation and never
// changes.
type Owner struct {
	Email          string `db:"email" json:"email"`
	Password       string `db:"password" json:"-"`
	FirstName      string `db:"first_name" json:"first_name"`
	LastName       string `db:"last_name" json:"last_name"`
	IdentityNumber int64  `db:"identity_number" json:"identity_number"`
	OwnerNumber    string `db:"owner_number" json:"owner_number"`
	coreEntity.BaseEntity
}
