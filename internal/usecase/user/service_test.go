package user

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"foodfast-user-service/internal/config"
	domainUser "foodfast-user-service/internal/domain/user"
	"foodfast-user-service/internal/domain/user/mocks"
	"foodfast-user-service/internal/events"
	eventMocks "foodfast-user-service/internal/events/mocks"
	"foodfast-user-service/internal/logger"
	appErrors "foodfast-user-service/pkg/errors"
	"foodfast-user-service/pkg/utils"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-signing-secret",
			ExpiryHours: 1,
		},
		Password: config.PasswordConfig{
			BcryptCost: bcrypt.MinCost,
		},
	}
}

func newTestService(t *testing.T) (*Service, *mocks.MockRepository, *eventMocks.MockPublisher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	publisher := eventMocks.NewMockPublisher(ctrl)
	return NewService(repo, publisher, testConfig()), repo, publisher
}

func expectCreate(repo *mocks.MockRepository) *gomock.Call {
	return repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domainUser.User) error {
			u.ID = uuid.New()
			return nil
		})
}

func TestRegisterSuccess(t *testing.T) {
	service, repo, _ := newTestService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(nil, appErrors.ErrUserNotFound)
	var stored *domainUser.User
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domainUser.User) error {
			u.ID = uuid.New()
			stored = u
			return nil
		})

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "a@x.com",
		Password: "secret1",
		FullName: "Ann",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if resp.User.Role != domainUser.RoleCustomer {
		t.Fatalf("expected CUSTOMER role, got %s", resp.User.Role)
	}
	if !resp.User.IsActive {
		t.Fatal("expected customer account to be active")
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}

	if stored.PasswordHash == "secret1" {
		t.Fatal("password stored in plaintext")
	}
	if !utils.CheckPassword(stored.PasswordHash, "secret1") {
		t.Fatal("stored hash does not verify the password")
	}
}

func TestRegisterResponseNeverContainsPassword(t *testing.T) {
	service, repo, _ := newTestService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, appErrors.ErrUserNotFound)
	expectCreate(repo)

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "a@x.com",
		Password: "secret1",
		FullName: "Ann",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	payload := strings.ToLower(string(raw))
	if strings.Contains(payload, "password") || strings.Contains(payload, "hash") {
		t.Fatalf("response payload leaks credential material: %s", payload)
	}
}

func TestRegisterValidationFailsBeforeAnyIO(t *testing.T) {
	// No repository expectations: any store call fails the test.
	service, _, _ := newTestService(t)

	tests := []struct {
		name    string
		request *RegisterRequest
	}{
		{"malformed email", &RegisterRequest{Email: "not-an-email", Password: "secret1", FullName: "Ann"}},
		{"short password", &RegisterRequest{Email: "a@x.com", Password: "12345", FullName: "Ann"}},
		{"missing full name", &RegisterRequest{Email: "a@x.com", Password: "secret1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), tt.request)
			var appErr *appErrors.AppError
			if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, repo, _ := newTestService(t)

	existing := &domainUser.User{ID: uuid.New(), Email: "a@x.com"}
	repo.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(existing, nil)

	_, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "a@x.com",
		Password: "secret1",
		FullName: "Ann",
	})
	if !errors.Is(err, appErrors.ErrEmailAlreadyUsed) {
		t.Fatalf("expected ErrEmailAlreadyUsed, got %v", err)
	}
}

func TestRegisterDuplicateEmailLostRace(t *testing.T) {
	// Pre-check passes, but the unique constraint still rejects the
	// insert when a concurrent registration wins.
	service, repo, _ := newTestService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(nil, appErrors.ErrUserNotFound)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(appErrors.ErrEmailAlreadyUsed)

	_, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "a@x.com",
		Password: "secret1",
		FullName: "Ann",
	})
	if !errors.Is(err, appErrors.ErrEmailAlreadyUsed) {
		t.Fatalf("expected ErrEmailAlreadyUsed, got %v", err)
	}
}

func TestRegisterRestaurantPendingApproval(t *testing.T) {
	service, repo, publisher := newTestService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "r@x.com").Return(nil, appErrors.ErrUserNotFound)
	var stored *domainUser.User
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domainUser.User) error {
			u.ID = uuid.New()
			stored = u
			return nil
		})

	var published events.Envelope
	publisher.EXPECT().Publish(gomock.Any(), events.TopicRestaurantUserCreated, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, event any) error {
			published = event.(events.Envelope)
			return nil
		})

	phone := "555"
	resp, err := service.RegisterRestaurant(context.Background(), &RegisterRestaurantRequest{
		Email:             "r@x.com",
		Password:          "secret1",
		Phone:             &phone,
		RestaurantName:    "Pizza Co",
		RestaurantAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("register restaurant failed: %v", err)
	}

	if stored.Role != domainUser.RoleRestaurant {
		t.Fatalf("expected RESTAURANT role, got %s", stored.Role)
	}
	if stored.IsActive {
		t.Fatal("expected restaurant account to start deactivated")
	}
	if resp.Message != PendingApprovalMessage {
		t.Fatalf("unexpected message: %s", resp.Message)
	}

	payload, ok := published.Payload.(events.RestaurantUserCreated)
	if !ok {
		t.Fatalf("unexpected event payload type %T", published.Payload)
	}
	if payload.UserID != stored.ID || payload.RestaurantName != "Pizza Co" || payload.RestaurantAddress != "1 Main St" {
		t.Fatalf("unexpected event payload: %+v", payload)
	}
}

func TestRegisterRestaurantPublishFailureDoesNotFailRegistration(t *testing.T) {
	service, repo, publisher := newTestService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, appErrors.ErrUserNotFound)
	expectCreate(repo)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	resp, err := service.RegisterRestaurant(context.Background(), &RegisterRestaurantRequest{
		Email:             "r@x.com",
		Password:          "secret1",
		RestaurantName:    "Pizza Co",
		RestaurantAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("expected success despite publish failure, got %v", err)
	}
	if resp.User == nil || resp.Message != PendingApprovalMessage {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCreateAdminForcesAdminRole(t *testing.T) {
	service, repo, _ := newTestService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, appErrors.ErrUserNotFound)
	var stored *domainUser.User
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domainUser.User) error {
			u.ID = uuid.New()
			stored = u
			return nil
		})

	resp, err := service.CreateAdmin(context.Background(), &CreateAdminRequest{
		Email:    "admin@x.com",
		Password: "secret1",
		FullName: "Root",
	})
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	if stored.Role != domainUser.RoleAdmin || resp.Role != domainUser.RoleAdmin {
		t.Fatalf("expected ADMIN role, got stored=%s response=%s", stored.Role, resp.Role)
	}
	if !stored.IsActive {
		t.Fatal("expected admin account to be active")
	}
}

func loginFixture(t *testing.T, password string, active bool) *domainUser.User {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	return &domainUser.User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: hash,
		FullName:     "Ann",
		Role:         domainUser.RoleCustomer,
		IsActive:     active,
	}
}

func TestLoginUnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	service, repo, _ := newTestService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "missing@x.com").Return(nil, appErrors.ErrUserNotFound)
	_, unknownErr := service.Login(context.Background(), &LoginRequest{Email: "missing@x.com", Password: "secret1"})

	repo.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(loginFixture(t, "secret1", true), nil)
	_, wrongErr := service.Login(context.Background(), &LoginRequest{Email: "a@x.com", Password: "wrong"})

	if !errors.Is(unknownErr, appErrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, appErrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatal("expected identical error signals for both failure modes")
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	service, repo, _ := newTestService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(loginFixture(t, "secret1", false), nil)

	_, err := service.Login(context.Background(), &LoginRequest{Email: "a@x.com", Password: "secret1"})
	if !errors.Is(err, appErrors.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestLoginSuccessIssuesTokenWithRole(t *testing.T) {
	service, repo, _ := newTestService(t)

	fixture := loginFixture(t, "secret1", true)
	repo.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(fixture, nil)

	resp, err := service.Login(context.Background(), &LoginRequest{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := utils.ValidateToken(resp.Token, testConfig().JWT.Secret)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.Role != domainUser.RoleCustomer {
		t.Fatalf("expected CUSTOMER role in token, got %s", claims.Role)
	}
	if claims.UserID != fixture.ID {
		t.Fatalf("expected subject %s, got %s", fixture.ID, claims.UserID)
	}
}

func TestUpdateProfilePartialFields(t *testing.T) {
	service, repo, _ := newTestService(t)

	phone := "555"
	existing := &domainUser.User{
		ID:       uuid.New(),
		Email:    "a@x.com",
		FullName: "Ann",
		Phone:    &phone,
		Role:     domainUser.RoleCustomer,
		IsActive: true,
	}
	repo.EXPECT().GetByID(gomock.Any(), existing.ID).Return(existing, nil)

	var updated *domainUser.User
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domainUser.User) error {
			updated = u
			return nil
		})

	newName := "Ann Lee"
	resp, err := service.UpdateProfile(context.Background(), existing.ID, &UpdateProfileRequest{FullName: &newName})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.FullName != "Ann Lee" {
		t.Fatalf("expected name updated, got %s", updated.FullName)
	}
	if updated.Phone == nil || *updated.Phone != "555" {
		t.Fatal("expected omitted phone to keep its stored value")
	}
	if resp.FullName != "Ann Lee" {
		t.Fatalf("unexpected response name: %s", resp.FullName)
	}
}

func TestUpdateProfileNotFound(t *testing.T) {
	service, repo, _ := newTestService(t)

	missing := uuid.New()
	repo.EXPECT().GetByID(gomock.Any(), missing).Return(nil, appErrors.ErrUserNotFound)

	_, err := service.UpdateProfile(context.Background(), missing, &UpdateProfileRequest{})
	if !errors.Is(err, appErrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteAccountNotFound(t *testing.T) {
	service, repo, _ := newTestService(t)

	missing := uuid.New()
	repo.EXPECT().SoftDelete(gomock.Any(), missing).Return(appErrors.ErrUserNotFound)

	if err := service.DeleteAccount(context.Background(), missing); !errors.Is(err, appErrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListUsersComputesTotalPages(t *testing.T) {
	service, repo, _ := newTestService(t)

	records := make([]*domainUser.User, 10)
	for i := range records {
		records[i] = &domainUser.User{ID: uuid.New(), Role: domainUser.RoleCustomer, IsActive: true}
	}
	repo.EXPECT().List(gomock.Any(), gomock.Any(), 0, 10).Return(records, int64(25), nil)

	resp, err := service.ListUsers(context.Background(), &ListUsersRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if resp.TotalItems != 25 {
		t.Fatalf("expected 25 total, got %d", resp.TotalItems)
	}
	if resp.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", resp.TotalPages)
	}
	if resp.Page != 1 || len(resp.Users) != 10 {
		t.Fatalf("unexpected page payload: page=%d len=%d", resp.Page, len(resp.Users))
	}
}

func TestListUsersOffsetForLaterPages(t *testing.T) {
	service, repo, _ := newTestService(t)

	repo.EXPECT().List(gomock.Any(), gomock.Any(), 20, 10).Return(nil, int64(25), nil)

	resp, err := service.ListUsers(context.Background(), &ListUsersRequest{Page: 3, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if resp.Page != 3 {
		t.Fatalf("expected page 3, got %d", resp.Page)
	}
}

func TestListUsersRejectsBadPagination(t *testing.T) {
	service, _, _ := newTestService(t)

	tests := []struct {
		name    string
		request *ListUsersRequest
	}{
		{"zero page", &ListUsersRequest{Page: 0, PageSize: 10}},
		{"zero page size", &ListUsersRequest{Page: 1, PageSize: 0}},
		{"oversized page", &ListUsersRequest{Page: 1, PageSize: 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ListUsers(context.Background(), tt.request)
			var appErr *appErrors.AppError
			if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}
