package repository

import (
	"context"
	"database/sql"
	"errors"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/auth/entity"

	"github.com/google/uuid"
)

// AuthRepositoryInterface defines the persistence contract for principals.
// Get* methods return (nil, nil) when no row matches.
type AuthRepositoryInterface interface {
	CreateClient(ctx context.Context, client *entity.Client) error
	CreateOwner(ctx context.Context, owner *entity.Owner) error
	GetClientByEmail(ctx context.Context, email string) (*entity.Client, error)
	GetOwnerByEmail(ctx context.Context, email string) (*entity.Owner, error)
	GetClientByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	GetOwnerByID(ctx context.Context, id uuid.UUID) (*entity.Owner, error)
	GetClientByIdentityNumber(ctx context.Context, identityNumber int64) (*entity.Client, error)
}

type AuthRepository struct {
	DB database.IDatabase
}

func NewAuthRepository(db database.IDatabase) *AuthRepository {
	return &AuthRepository{DB: db}
}

func (r *AuthRepository) CreateClient(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (email, password, first_name, last_name, identity_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		client.Email, client.Password, client.FirstName, client.LastName, client.IdentityNumber,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		logger.Error("AuthRepository:CreateClient:Error", "error", err)
		return err
	}
	return nil
}

func (r *AuthRepository) CreateOwner(ctx context.Context, owner *entity.Owner) error {
	query := `
		INSERT INTO owners (email, password, first_name, last_name, identity_number, owner_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		owner.Email, owner.Password, owner.FirstName, owner.LastName,
		owner.IdentityNumber, owner.OwnerNumber,
	).Scan(&owner.ID, &owner.CreatedAt, &owner.UpdatedAt)
	if err != nil {
		logger.Error("AuthRepository:CreateOwner:Error", "error", err)
		return err
	}
	return nil
}

func (r *AuthRepository) GetClientByEmail(ctx context.Context, email string) (*entity.Client, error) {
	var client entity.Client
	err := r.DB.GetContext(ctx, &client, `SELECT * FROM clients WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *AuthRepository) GetOwnerByEmail(ctx context.Context, email string) (*entity.Owner, error) {
	var owner entity.Owner
	err := r.DB.GetContext(ctx, &owner, `SELECT * FROM owners WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &owner, nil
}

func (r *AuthRepository) GetClientByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := r.DB.GetContext(ctx, &client, `SELECT * FROM clients WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *AuthRepository) GetOwnerByID(ctx context.Context, id uuid.UUID) (*entity.Owner, error) {
	var owner entity.Owner
	err := r.DB.GetContext(ctx, &owner, `SELECT * FROM owners WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &owner, nil
}

func (r *AuthRepository) GetClientByIdentityNumber(ctx context.Context, identityNumber int64) (*entity.Client, error) {
	var client entity.Client
	err := r.DB.GetContext(ctx, &client, `SELECT * FROM clients WHERE identity_number = $1`, identityNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}
