package service

import (
	"context"
	"errors"
	"time"

	"fitclub/fitness-club/internal/domain"
	"fitclub/fitness-club/internal/repository"
	"fitclub/fitness-club/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidStatus    = errors.New("invalid staff status")
	ErrInvalidCategory  = errors.New("invalid category label")
	ErrNoCredentialFile = errors.New("staff member has no credential document on file")
)

// UserOverview is a user record with its weak assignment references resolved
// to display names at read time. References to since-deleted users resolve to
// an empty name rather than failing the listing.
type UserOverview struct {
	domain.User
	AssignedTrainerName      string `json:"assignedTrainerName,omitempty"`
	AssignedNutritionistName string `json:"assignedNutritionistName,omitempty"`
	AssignedPharmacistName   string `json:"assignedPharmacistName,omitempty"`
}

// --- Service Interface ---
type AdminService interface {
	ListPendingStaff(ctx context.Context) ([]domain.User, error)
	ListActiveStaff(ctx context.Context) ([]domain.User, error)
	UpdateStaffStatus(ctx context.Context, adminID, staffID primitive.ObjectID, status domain.Status, reason string) (*domain.User, error)
	UpdateStaffCategories(ctx context.Context, staffID primitive.ObjectID, categories []domain.Category) (*domain.User, error)
	ListUsers(ctx context.Context) ([]UserOverview, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	CredentialDownloadURL(ctx context.Context, staffID primitive.ObjectID) (string, error)
}

// adminService implements the AdminService interface.
type adminService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewAdminService creates a new instance of adminService.
func NewAdminService(userRepo repository.UserRepository, fileStorage storage.FileStorage) AdminService {
	return &adminService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// ListPendingStaff returns all staff awaiting approval.
func (s *adminService) ListPendingStaff(ctx context.Context) ([]domain.User, error) {
	staff, err := s.userRepo.ListStaffByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, err
	}
	stripHashes(staff)
	return staff, nil
}

// ListActiveStaff returns all approved staff, e.g. for category assignment.
func (s *adminService) ListActiveStaff(ctx context.Context) ([]domain.User, error) {
	staff, err := s.userRepo.ListStaffByStatus(ctx, domain.StatusActive)
	if err != nil {
		return nil, err
	}
	stripHashes(staff)
	return staff, nil
}

// UpdateStaffStatus approves, rejects, or deactivates a staff member. Both
// approval and rejection stamp the acting admin and timestamp; a rejection
// reason is stored only when one is supplied.
func (s *adminService) UpdateStaffStatus(ctx context.Context, adminID, staffID primitive.ObjectID, status domain.Status, reason string) (*domain.User, error) {
	switch status {
	case domain.StatusActive, domain.StatusInactive, domain.StatusRejected, domain.StatusPending:
	default:
		return nil, ErrInvalidStatus
	}

	user, err := s.userRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsStaff() {
		return nil, ErrNotStaff
	}

	user.Status = status
	if status == domain.StatusRejected && reason != "" {
		user.RejectionReason = reason
	}
	now := time.Now().UTC()
	user.ApprovedBy = &adminID
	user.ApprovedAt = &now

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// UpdateStaffCategories replaces a staff member's serviced categories
// wholesale. Existing members are not retroactively reassigned; they pick up
// the change on their next save.
func (s *adminService) UpdateStaffCategories(ctx context.Context, staffID primitive.ObjectID, categories []domain.Category) (*domain.User, error) {
	for _, c := range categories {
		if !domain.ValidCategory(c) {
			return nil, ErrInvalidCategory
		}
	}

	user, err := s.userRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsStaff() {
		return nil, ErrNotStaff
	}

	user.AssignedCategories = categories

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// ListUsers returns every user with assignment references resolved to names.
func (s *adminService) ListUsers(ctx context.Context) ([]UserOverview, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// Resolve names from the same listing instead of per-reference lookups.
	names := make(map[primitive.ObjectID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	overviews := make([]UserOverview, 0, len(users))
	for _, u := range users {
		u.PasswordHash = ""
		o := UserOverview{User: u}
		if u.AssignedTrainer != nil {
			o.AssignedTrainerName = names[*u.AssignedTrainer]
		}
		if u.AssignedNutritionist != nil {
			o.AssignedNutritionistName = names[*u.AssignedNutritionist]
		}
		if u.AssignedPharmacist != nil {
			o.AssignedPharmacistName = names[*u.AssignedPharmacist]
		}
		overviews = append(overviews, o)
	}
	return overviews, nil
}

// DeleteUser removes a user. Deleting a trainer or nutritionist first clears
// the matching assignment reference on every member pointing at them.
// Deleting a pharmacist performs no cascade: members keep the stale
// assignedPharmacist reference until their own next save recomputes it. The
// cascade and the delete are separate writes, not a transaction.
func (s *adminService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	switch user.Role {
	case domain.RoleTrainer, domain.RoleNutritionist:
		if err := s.userRepo.ClearAssignedStaff(ctx, user.Role, user.ID); err != nil {
			return err
		}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// CredentialDownloadURL returns a presigned URL for reviewing a staff
// member's uploaded credential document.
func (s *adminService) CredentialDownloadURL(ctx context.Context, staffID primitive.ObjectID) (string, error) {
	user, err := s.userRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if !user.IsStaff() {
		return "", ErrNotStaff
	}
	if user.CredentialFile == "" {
		return "", ErrNoCredentialFile
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, user.CredentialFile, storage.DefaultPresignedURLExpiry)
}

func stripHashes(users []domain.User) {
	for i := range users {
		users[i].PasswordHash = ""
	}
}
