package repository

import (
	"context"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	authEntity "agenda-api/modules/auth/entity"
	"agenda-api/modules/owner/entity"

	"github.com/google/uuid"
)

// RosterRepositoryInterface persists the owner↔client membership relation.
type RosterRepositoryInterface interface {
	Add(ctx context.Context, ownerID, clientID uuid.UUID) error
	RemoveByIdentityNumber(ctx context.Context, ownerID uuid.UUID, identityNumber int64) (int64, error)
	ListClients(ctx context.Context, ownerID uuid.UUID) ([]authEntity.Client, error)
}

type RosterRepository struct {
	db database.IDatabase
}

func NewRosterRepository(db database.IDatabase) *RosterRepository {
	return &RosterRepository{db: db}
}

// Add inserts the membership pair. Re-adding an existing pair is a no-op.
func (r *RosterRepository) Add(ctx context.Context, ownerID, clientID uuid.UUID) error {
	entry := entity.RosterEntry{OwnerID: ownerID, ClientID: clientID}
	query := `
		INSERT INTO owner_clients (owner_id, client_id)
		VALUES (:owner_id, :client_id)
		ON CONFLICT (owner_id, client_id) DO NOTHING
	`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		logger.Error("RosterRepository:Add:Error", "error", err)
		return err
	}
	return nil
}

// RemoveByIdentityNumber drops the roster entry whose client has the given
// identity number and returns how many rows went away.
func (r *RosterRepository) RemoveByIdentityNumber(ctx context.Context, ownerID uuid.UUID, identityNumber int64) (int64, error) {
	res, err := r.db.NamedExecContext(ctx, `
		DELETE FROM owner_clients
		WHERE owner_id = :owner_id
		AND client_id = (SELECT id FROM clients WHERE identity_number = :identity_number)
	`, map[string]any{
		"owner_id":        ownerID,
		"identity_number": identityNumber,
	})
	if err != nil {
		logger.Error("RosterRepository:RemoveByIdentityNumber:Error", "error", err)
		return 0, err
	}
	return res.RowsAffected()
}

func (r *RosterRepository) ListClients(ctx context.Context, ownerID uuid.UUID) ([]authEntity.Client, error) {
	query := `
		SELECT c.* FROM clients c
		JOIN owner_clients oc ON oc.client_id = c.id
		WHERE oc.owner_id = $1
	`
	var clients []authEntity.Client
	if err := r.db.SelectContext(ctx, &clients, query, ownerID); err != nil {
		return nil, err
	}
	return clients, nil
}
