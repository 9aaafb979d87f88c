package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/payflowhq/payflow_backend/internal/apperrors"
	"github.com/payflowhq/payflow_backend/internal/core/domain"
	portsrepo "github.com/payflowhq/payflow_backend/internal/core/ports/repositories"
	portssvc "github.com/payflowhq/payflow_backend/internal/core/ports/services"
	"github.com/payflowhq/payflow_backend/internal/dto"
	"github.com/payflowhq/payflow_backend/internal/middleware"
	"github.com/payflowhq/payflow_backend/internal/utils"
)

// userService implements registration, the admin approval workflow, and
// credential checks.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register creates a new pending user. The account cannot authenticate until
// an admin approves it.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username %s: %w", req.Username, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, req.Username)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         domain.RoleMember,
		Status:       domain.UserPending,
		EVMAddress:   req.EVMAddress,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID, // self-registration
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// CreateOAuthUser finds the user bound to an external identity, creating a
// pending account on first login.
func (s *userService) CreateOAuthUser(ctx context.Context, provider, providerID, email, name string) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByProviderID(ctx, provider, providerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up provider identity: %w", err)
	}

	now := s.now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Username:     email,
		Name:         name,
		Role:         domain.RoleMember,
		Status:       domain.UserPending,
		AuthProvider: provider,
		ProviderID:   providerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create oauth user: %w", err)
	}
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.userRepo.FindUsers(ctx, limit, offset)
}

// UpdateUser lets a user edit their own profile; admins can edit anyone.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if userID != requestingUserID {
		requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
		if err != nil {
			return nil, err
		}
		if !requester.IsAdmin() {
			return nil, apperrors.ErrForbidden
		}
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.EVMAddress != nil {
		user.EVMAddress = *req.EVMAddress
	}
	user.LastUpdatedAt = s.now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return user, nil
}

// ReviewUser approves or rejects a pending registration.
func (s *userService) ReviewUser(ctx context.Context, userID string, approve bool, reviewerID string) (*domain.User, error) {
	reviewer, err := s.userRepo.FindUserByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	if !reviewer.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status != domain.UserPending {
		return nil, fmt.Errorf("%w: user %s is not pending review", apperrors.ErrValidation, userID)
	}

	if approve {
		user.Status = domain.UserApproved
	} else {
		user.Status = domain.UserRejected
	}
	user.LastUpdatedAt = s.now()
	user.LastUpdatedBy = reviewerID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to review user %s: %w", userID, err)
	}
	return user, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if userID != requestingUserID {
		requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
		if err != nil {
			return err
		}
		if !requester.IsAdmin() {
			return apperrors.ErrForbidden
		}
	}
	return s.userRepo.MarkUserDeleted(ctx, userID, s.now(), requestingUserID)
}

// AuthenticateUser checks credentials; only approved users may log in.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if user.Status != domain.UserApproved {
		return nil, fmt.Errorf("%w: account pending approval", apperrors.ErrForbidden)
	}
	return user, nil
}
