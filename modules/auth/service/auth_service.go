package service

import (
	"context"
	"errors"
	"time"

	"agenda-api/core/cache"
	appErrors "agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/utils"
	"agenda-api/modules/auth/dto"
	"agenda-api/modules/auth/entity"
	"agenda-api/modules/auth/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ownerNumberRetries bounds how often a colliding display number is
// regenerated before giving up.
const ownerNumberRetries = 3

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) *appErrors.AppError
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *appErrors.AppError)
	Logout(ctx context.Context, token string) *appErrors.AppError
	ValidatePrincipalToken(ctx context.Context, token string) (*entity.Principal, *appErrors.AppError)
	GetClientByIdentityNumber(ctx context.Context, identityNumber int64) (*entity.Client, *appErrors.AppError)
	GetClientByID(ctx context.Context, id uuid.UUID) (*entity.Client, *appErrors.AppError)
	GetClientByEmail(ctx context.Context, email string) (*entity.Client, *appErrors.AppError)
}

type AuthService struct {
	repo  repository.AuthRepositoryInterface
	cache cache.Cache
}

func NewAuthService(repo repository.AuthRepositoryInterface, cache cache.Cache) *AuthService {
	return &AuthService{repo: repo, cache: cache}
}

// Register creates a Client or an Owner. Exactly one of the two kind flags
// must be set; the check runs before anything is persisted.
func (service *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) *appErrors.AppError {
	if req.IsClient && req.IsOwner {
		return appErrors.NewAppError(appErrors.ErrInvalidInput,
			"only one of the fields 'is_client' or 'is_owner' can be set", nil)
	}
	if !req.IsClient && !req.IsOwner {
		return appErrors.NewAppError(appErrors.ErrInvalidInput,
			"one of the fields 'is_client' or 'is_owner' should be set", nil)
	}
	if req.Email == "" || req.Password == "" {
		return appErrors.NewAppError(appErrors.ErrInvalidInput,
			"email and password are required", nil)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("AuthService:Register:HashPassword:Error", "error", err)
		return appErrors.NewAppError(appErrors.ErrInternalServer, "failed to hash password", err)
	}

	if req.IsClient {
		if req.FirstName == "" || req.LastName == "" || req.IdentityNumber == 0 {
			return appErrors.NewAppError(appErrors.ErrInvalidInput,
				"first_name, last_name and identity_number are required for clients", nil)
		}
		client := &entity.Client{
			Email:          req.Email,
			Password:       hashed,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			IdentityNumber: req.IdentityNumber,
		}
		if err := service.repo.CreateClient(ctx, client); err != nil {
			if isUniqueViolation(err) {
				return appErrors.NewAppError(appErrors.ErrAlreadyExists,
					"a client with this email or identity number already exists", err)
			}
			logger.Error("AuthService:Register:CreateClient:Error", "error", err)
			return appErrors.NewAppError(appErrors.ErrInternalServer, "failed to create client", err)
		}
		logger.Info("AuthService:Register:ClientCreated", "client_id", client.ID)
		return nil
	}

	if req.FirstName == "" || req.LastName == "" || req.IdentityNumber == 0 {
		return appErrors.NewAppError(appErrors.ErrInvalidInput,
			"first_name, last_name and identity_number are required for owners", nil)
	}
	owner := &entity.Owner{
		Email:          req.Email,
		Password:       hashed,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		IdentityNumber: req.IdentityNumber,
	}
	for attempt := 0; ; attempt++ {
		owner.OwnerNumber = utils.GenerateOwnerNumber()
		err := service.repo.CreateOwner(ctx, owner)
		if err == nil {
			break
		}
		// Regenerate only when the display number collided; any other
		// conflict (email, identity number) belongs to the caller.
		if isUniqueViolationOn(err, "owners_owner_number_key") && attempt < ownerNumberRetries {
			logger.Warn("AuthService:Register:OwnerNumberCollision", "attempt", attempt+1)
			continue
		}
		if isUniqueViolation(err) {
			return appErrors.NewAppError(appErrors.ErrAlreadyExists,
				"an owner with this email or identity number already exists", err)
		}
		logger.Error("AuthService:Register:CreateOwner:Error", "error", err)
		return appErrors.NewAppError(appErrors.ErrInternalServer, "failed to create owner", err)
	}
	logger.Info("AuthService:Register:OwnerCreated", "owner_id", owner.ID, "owner_number", owner.OwnerNumber)
	return nil
}

// Login authenticates a principal of the requested kind by email and
// password and issues a bearer token.
func (service *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *appErrors.AppError) {
	if req.IsClient == req.IsOwner {
		return nil, appErrors.NewAppError(appErrors.ErrInvalidInput,
			"exactly one of the fields 'is_client' or 'is_owner' must be set", nil)
	}

	var (
		principalID uuid.UUID
		storedHash  string
		kind        entity.PrincipalKind
	)

	if req.IsClient {
		client, err := service.repo.GetClientByEmail(ctx, req.Email)
		if err != nil {
			logger.Error("AuthService:Login:GetClientByEmail:Error", "error", err)
			return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to look up client", err)
		}
		if client == nil {
			return nil, appErrors.NewAppError(appErrors.ErrUnauthorized, "incorrect user/password", nil)
		}
		principalID, storedHash, kind = client.ID, client.Password, entity.KindClient
	} else {
		owner, err := service.repo.GetOwnerByEmail(ctx, req.Email)
		if err != nil {
			logger.Error("AuthService:Login:GetOwnerByEmail:Error", "error", err)
			return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to look up owner", err)
		}
		if owner == nil {
			return nil, appErrors.NewAppError(appErrors.ErrUnauthorized, "incorrect user/password", nil)
		}
		principalID, storedHash, kind = owner.ID, owner.Password, entity.KindOwner
	}

	if !utils.ComparePassword(storedHash, req.Password) {
		return nil, appErrors.NewAppError(appErrors.ErrUnauthorized, "incorrect user/password", nil)
	}

	token, expiresAt, err := utils.GenerateToken(principalID, string(kind))
	if err != nil {
		logger.Error("AuthService:Login:GenerateToken:Error", "error", err)
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to issue token", err)
	}

	logger.Info("AuthService:Login:Success", "principal_id", principalID, "kind", kind)
	return &dto.LoginResponse{
		IsClient:  kind == entity.KindClient,
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}

// Logout blacklists the token until its natural expiry.
func (service *AuthService) Logout(ctx context.Context, token string) *appErrors.AppError {
	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return appErrors.NewAppError(appErrors.ErrUnauthorized, "invalid token", err)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := service.cache.AddToTokenBlacklist(ctx, token, ttl); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist:Error", "error", err)
		return appErrors.NewAppError(appErrors.ErrInternalServer, "failed to revoke token", err)
	}
	logger.Info("AuthService:Logout:Success", "principal_id", claims.PrincipalID)
	return nil
}

// ValidatePrincipalToken resolves a bearer token to a live Principal. Used
// by the auth middleware.
func (service *AuthService) ValidatePrincipalToken(ctx context.Context, token string) (*entity.Principal, *appErrors.AppError) {
	blacklisted, err := service.cache.IsTokenBlacklisted(ctx, token)
	if err != nil {
		logger.Error("AuthService:ValidatePrincipalToken:IsTokenBlacklisted:Error", "error", err)
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to check token", err)
	}
	if blacklisted {
		return nil, appErrors.NewAppError(appErrors.ErrUnauthorized, "token has been revoked", nil)
	}

	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return nil, appErrors.NewAppError(appErrors.ErrUnauthorized, "invalid token", err)
	}

	kind := entity.PrincipalKind(claims.Kind)
	switch kind {
	case entity.KindClient:
		client, err := service.repo.GetClientByID(ctx, claims.PrincipalID)
		if err != nil {
			return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to look up client", err)
		}
		if client == nil {
			return nil, appErrors.NewAppError(appErrors.ErrUnauthorized, "principal no longer exists", nil)
		}
	case entity.KindOwner:
		owner, err := service.repo.GetOwnerByID(ctx, claims.PrincipalID)
		if err != nil {
			return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to look up owner", err)
		}
		if owner == nil {
			return nil, appErrors.NewAppError(appErrors.ErrUnauthorized, "principal no longer exists", nil)
		}
	default:
		return nil, appErrors.NewAppError(appErrors.ErrInvalidTokenFormat, "unknown principal kind", nil)
	}

	return &entity.Principal{ID: claims.PrincipalID, Kind: kind}, nil
}

// GetClientByIdentityNumber exposes client lookup to the owner and calendar
// modules.
func (service *AuthService) GetClientByIdentityNumber(ctx context.Context, identityNumber int64) (*entity.Client, *appErrors.AppError) {
	client, err := service.repo.GetClientByIdentityNumber(ctx, identityNumber)
	if err != nil {
		logger.Error("AuthService:GetClientByIdentityNumber:Error", "error", err)
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to look up client", err)
	}
	if client == nil {
		return nil, appErrors.NewAppError(appErrors.ErrNotFound, "client not found", nil)
	}
	return client, nil
}

// GetClientByID exposes client lookup by primary key to other modules.
func (service *AuthService) GetClientByID(ctx context.Context, id uuid.UUID) (*entity.Client, *appErrors.AppError) {
	client, err := service.repo.GetClientByID(ctx, id)
	if err != nil {
		logger.Error("AuthService:GetClientByID:Error", "error", err)
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to look up client", err)
	}
	if client == nil {
		return nil, appErrors.NewAppError(appErrors.ErrNotFound, "client not found", nil)
	}
	return client, nil
}

// GetClientByEmail exposes client lookup by email to the owner module.
func (service *AuthService) GetClientByEmail(ctx context.Context, email string) (*entity.Client, *appErrors.AppError) {
	client, err := service.repo.GetClientByEmail(ctx, email)
	if err != nil {
		logger.Error("AuthService:GetClientByEmail:Error", "error", err)
		return nil, appErrors.NewAppError(appErrors.ErrInternalServer, "failed to look up client", err)
	}
	if client == nil {
		return nil, appErrors.NewAppError(appErrors.ErrNotFound, "client not found", nil)
	}
	return client, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isUniqueViolationOn(err error, constraint string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == constraint
}
