package repository

import (
	"context"

	"fitclub/fitness-club/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("conflict")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error

	// FindFirstActiveStaff returns the first active staff member of the given
	// role servicing the category, in natural store order. ErrNotFound when no
	// staff matches.
	FindFirstActiveStaff(ctx context.Context, role domain.Role, category domain.Category) (*domain.User, error)

	ListStaffByStatus(ctx context.Context, status domain.Status) ([]domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)

	// ListByAssignedStaff returns members whose assignment reference for the
	// staff role points at staffID.
	ListByAssignedStaff(ctx context.Context, role domain.Role, staffID primitive.ObjectID) ([]domain.User, error)

	// ClearAssignedStaff unsets the assignment reference for the staff role on
	// every member currently pointing at staffID.
	ClearAssignedStaff(ctx context.Context, role domain.Role, staffID primitive.ObjectID) error

	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PlanRepository defines the interface for interacting with plan data.
type PlanRepository interface {
	// Create inserts a plan. The (assignedTo, week, assignedByRole) slot is
	// unique; inserting into an occupied slot returns ErrConflict.
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	ListByAssignee(ctx context.Context, memberID primitive.ObjectID, activeOnly bool) ([]domain.Plan, error)
	ListByCreator(ctx context.Context, staffID primitive.ObjectID) ([]domain.Plan, error)
	ListByAssigneeAndWeek(ctx context.Context, memberID primitive.ObjectID, week int) ([]domain.Plan, error)

	// UpdateContent persists title and instructions only. Week, type, and
	// assignee are fixed once a plan exists.
	UpdateContent(ctx context.Context, id primitive.ObjectID, title, instructions string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProgressRepository defines the interface for the append-only progress log.
type ProgressRepository interface {
	Create(ctx context.Context, entry *domain.Progress) (primitive.ObjectID, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error) // date ascending
}

// MessageRepository defines the interface for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (primitive.ObjectID, error)
	// Conversation returns every message exchanged between the two users in
	// either direction, oldest first.
	Conversation(ctx context.Context, a, b primitive.ObjectID) ([]domain.Message, error)
}
