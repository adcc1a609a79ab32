package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodfast-user-service/internal/config"
	domainUser "foodfast-user-service/internal/domain/user"
	"foodfast-user-service/internal/events"
	"foodfast-user-service/internal/logger"
	appErrors "foodfast-user-service/pkg/errors"
	"foodfast-user-service/pkg/utils"
)

// PendingApprovalMessage is returned instead of a token when a restaurant
// registers: the account is not usable until approved.
const PendingApprovalMessage = "Restaurant registration submitted successfully. Your account is pending approval."

// Service orchestrates registration, login and account management. It
// holds no state across calls; all shared state lives in the repository.
type Service struct {
	repo      domainUser.Repository
	publisher events.Publisher
	cfg       *config.Config
}

func NewService(repo domainUser.Repository, publisher events.Publisher, cfg *config.Config) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Register creates a customer account and signs the caller in.
func (s *Service) Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error) {
	if err := ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := s.ensureEmailFree(ctx, request.Email); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, request.Email, request.Password, request.FullName,
		request.Phone, domainUser.RoleCustomer, true)
	if err != nil {
		return nil, err
	}

	return s.authResponse(user)
}

// RegisterRestaurant creates a restaurant account pending approval and
// notifies the provisioning pipeline. The publish is best-effort: the
// account write has already committed and is never rolled back for a
// failed notification.
func (s *Service) RegisterRestaurant(ctx context.Context, request *RegisterRestaurantRequest) (*RestaurantRegistrationResponse, error) {
	if err := ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := s.ensureEmailFree(ctx, request.Email); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, request.Email, request.Password, request.RestaurantName,
		request.Phone, domainUser.RoleRestaurant, false)
	if err != nil {
		return nil, err
	}

	event := events.Envelope{
		EventType: events.EventTypeRestaurantUserCreated,
		Payload: events.RestaurantUserCreated{
			UserID:            user.ID,
			Email:             user.Email,
			RestaurantName:    request.RestaurantName,
			RestaurantAddress: request.RestaurantAddress,
			Phone:             user.Phone,
			Timestamp:         time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, events.TopicRestaurantUserCreated, event); err != nil {
		logger.Warn("failed to publish restaurant created event, user was still created",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	return &RestaurantRegistrationResponse{
		User:    ToUserResponse(user),
		Message: PendingApprovalMessage,
	}, nil
}

// CreateAdmin provisions an administrator account. The boundary restricts
// this operation to admins.
func (s *Service) CreateAdmin(ctx context.Context, request *CreateAdminRequest) (*UserResponse, error) {
	if err := ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := s.ensureEmailFree(ctx, request.Email); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, request.Email, request.Password, request.FullName,
		request.Phone, domainUser.RoleAdmin, true)
	if err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

// Login verifies credentials and issues a token. An unknown email and a
// wrong password produce the same error so callers cannot enumerate
// accounts; a deactivated account is reported distinctly.
func (s *Service) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	if err := ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.repo.GetByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, appErrors.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, appErrors.ErrAccountInactive
	}

	if !utils.CheckPassword(user.PasswordHash, request.Password) {
		return nil, appErrors.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

// UpdateProfile applies the supplied fields; omitted fields keep their
// stored value.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, request *UpdateProfileRequest) (*UserResponse, error) {
	if err := ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if request.FullName != nil {
		user.FullName = *request.FullName
	}
	if request.Phone != nil {
		user.Phone = request.Phone
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

// DeleteAccount deactivates the account; the record is retained and there
// is no reactivation path through this service.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.repo.SoftDelete(ctx, userID)
}

// ListUsers returns one page of accounts for the admin boundary.
func (s *Service) ListUsers(ctx context.Context, request *ListUsersRequest) (*UserListResponse, error) {
	if err := ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid pagination parameters", err)
	}

	filter := domainUser.ListFilter{
		Role:     request.Role,
		IsActive: request.IsActive,
	}
	offset := (request.Page - 1) * request.PageSize

	users, total, err := s.repo.List(ctx, filter, offset, request.PageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, len(users))
	for i, u := range users {
		responses[i] = ToUserResponse(u)
	}

	totalPages := int((total + int64(request.PageSize) - 1) / int64(request.PageSize))

	return &UserListResponse{
		Users:      responses,
		TotalItems: total,
		Page:       request.Page,
		TotalPages: totalPages,
	}, nil
}

// ensureEmailFree is an optimization only; the unique constraint in the
// store remains the arbiter under concurrent registration.
func (s *Service) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, appErrors.ErrUserNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return appErrors.ErrEmailAlreadyUsed
	}
	return nil
}

func (s *Service) createUser(ctx context.Context, email, password, fullName string, phone *string, role string, active bool) (*domainUser.User, error) {
	hashedPassword, err := utils.HashPassword(password, s.cfg.Password.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     fullName,
		Phone:        phone,
		Role:         role,
		IsActive:     active,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) authResponse(user *domainUser.User) (*AuthResponse, error) {
	token, expiresAt, err := utils.GenerateToken(
		user.ID,
		user.Email,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.TokenTTL(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		User:      ToUserResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
