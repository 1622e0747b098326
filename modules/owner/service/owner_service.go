package service

import (
	"context"

	appErrors "agenda-api/core/errors"
	"agenda-api/core/logger"
	authEntity "agenda-api/modules/auth/entity"
	authService "agenda-api/modules/auth/service"
	"agenda-api/modules/owner/repository"

	"github.com/google/uuid"
)

type OwnerServiceInterface interface {
	AddClient(ctx context.Context, ownerID uuid.UUID, email string, identityNumber int64) *appErrors.AppError
	DeleteClient(ctx context.Context, ownerID uuid.UUID, identityNumber int64) *appErrors.AppError
	ListClients(ctx context.Context, ownerID uuid.UUID) ([]authEntity.Client, *appErrors.AppError)
}

type OwnerService struct {
	roster repository.RosterRepositoryInterface
	auth   authService.AuthServiceInterface
}

func NewOwnerService(roster repository.RosterRepositoryInterface, auth authService.AuthServiceInterface) *OwnerService {
	return &OwnerService{roster: roster, auth: auth}
}

// AddClient puts a client on the owner's roster. The email must belong to
// the client with the given identity number. Adding a client that is
// already on the roster changes nothing.
func (s *OwnerService) AddClient(ctx context.Context, ownerID uuid.UUID, email string, identityNumber int64) *appErrors.AppError {
	client, appErr := s.auth.GetClientByIdentityNumber(ctx, identityNumber)
	if appErr != nil {
		return appErr
	}
	if client.Email != email {
		return appErrors.NewAppError(appErrors.ErrInvalidInput,
			"email does not match the client's identity number", nil)
	}

	logger.Info("OwnerService:AddClient", "owner_id", ownerID, "identity_number", identityNumber)
	if err := s.roster.Add(ctx, ownerID, client.ID); err != nil {
		return appErrors.NewAppError(appErrors.ErrInternalServer, "failed to add client", err)
	}
	return nil
}

// DeleteClient removes the matching client from the roster. A client that
// was never on the roster is only reported, not an error.
func (s *OwnerService) DeleteClient(ctx context.Context, ownerID uuid.UUID, identityNumber int64) *appErrors.AppError {
	logger.Info("OwnerService:DeleteClient", "owner_id", ownerID, "identity_number", identityNumber)

	removed, err := s.roster.RemoveByIdentityNumber(ctx, ownerID, identityNumber)
	if err != nil {
		return appErrors.NewAppError(appErrors.ErrInternalServer, "failed to delete client", err)
	}
	if removed == 0 {
		logger.Warn("OwnerService:DeleteClient:NotOnRoster",
			"owner_id", ownerID, "identity_number", identityNumber)
	}
	return nil
}

func (s *OwnerService) ListClients(ctx context.Context, ownerID uuid.UUID) ([]authEntity.Client, *appErrors.AppError) {
	clients, err := s.roster.ListClients(ctx, ownerID)
	if err != nil {
		logger.Error("OwnerService:ListClients:Error", "error", err)
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to list clients", err)
	}
	return clients, nil
}
