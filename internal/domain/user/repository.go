package user

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter restricts a user listing. Nil fields mean "no filter".
type ListFilter struct {
	Role     *string
	IsActive *bool
}

// Repository is the persistence boundary for user records. The storage
// layer owns email uniqueness: Create must fail atomically at the unique
// constraint even when two writers race past the service-level pre-check.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	Update(ctx context.Context, user *User) error
	SoftDelete(ctx context.Context, userID uuid.UUID) error
	List(ctx context.Context, filter ListFilter, offset, limit int) ([]*User, int64, error)
}
