package user

import (
	"time"

	"github.com/google/uuid"

	domainUser "foodfast-user-service/internal/domain/user"
)

type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName string  `json:"full_name" validate:"required,min=2,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
}

type RegisterRestaurantRequest struct {
	Email             string  `json:"email" validate:"required,email"`
	Password          string  `json:"password" validate:"required,min=6"`
	Phone             *string `json:"phone" validate:"omitempty,phone"`
	RestaurantName    string  `json:"restaurant_name" validate:"required,min=2,max=255"`
	RestaurantAddress string  `json:"restaurant_address" validate:"required,max=500"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
}

type CreateAdminRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName string  `json:"full_name" validate:"required,min=2,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
}

type ListUsersRequest struct {
	Role     *string `form:"role" validate:"omitempty,user_role"`
	IsActive *bool   `form:"is_active"`
	Page     int     `form:"page" validate:"required,min=1"`
	PageSize int     `form:"page_size" validate:"required,min=1,max=100"`
}

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Phone         *string   `json:"phone"`
	Role          string    `json:"role"`
	IsActive      bool      `json:"is_active"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

type AuthResponse struct {
	User      *UserResponse `json:"user"`
	Token     string        `json:"token"`
	ExpiresAt int64         `json:"expires_at"`
}

type RestaurantRegistrationResponse struct {
	User    *UserResponse `json:"user"`
	Message string        `json:"message"`
}

type UserListResponse struct {
	Users      []*UserResponse `json:"users"`
	TotalItems int64           `json:"total_items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Phone:         u.Phone,
		Role:          u.Role,
		IsActive:      u.IsActive,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}
