package service

import (
	"context"
	"errors"
	"time"

	"fitclub/fitness-club/internal/domain"
	"fitclub/fitness-club/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidWeight       = errors.New("weight must be positive")
	ErrHistoryAccessDenied = errors.New("not authorized to view this progress history")
)

// --- Service Interface ---
type ProgressService interface {
	// Add appends an immutable weight log entry for the member and refreshes
	// their live weight, BMI, category, and staff assignments.
	Add(ctx context.Context, memberID primitive.ObjectID, weight float64, notes string) (*domain.Progress, error)

	// History returns a member's log ordered oldest to newest. Members may
	// read their own; any staff role or admin may read anyone's.
	History(ctx context.Context, requesterID primitive.ObjectID, requesterRole domain.Role, memberID primitive.ObjectID) ([]domain.Progress, error)
}

// progressService implements the ProgressService interface.
type progressService struct {
	progressRepo repository.ProgressRepository
	userRepo     repository.UserRepository
	matcher      *StaffMatcher
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(progressRepo repository.ProgressRepository, userRepo repository.UserRepository, matcher *StaffMatcher) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		userRepo:     userRepo,
		matcher:      matcher,
	}
}

// Add logs a new weight entry. The entry's BMI comes from the logged weight
// and the member's stored height; a member with no height on record carries
// their previous BMI forward unchanged. After the entry is written the
// member's live stats are updated and the matching pipeline reruns, so a
// category change here can pick up new staff assignments.
func (s *progressService) Add(ctx context.Context, memberID primitive.ObjectID, weight float64, notes string) (*domain.Progress, error) {
	if weight <= 0 {
		return nil, ErrInvalidWeight
	}

	member, err := s.userRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	bmi := member.BMI
	if member.Height > 0 {
		bmi = domain.CalculateBMI(weight, member.Height)
	}

	entry := &domain.Progress{
		UserID: memberID,
		Date:   time.Now().UTC(),
		Weight: weight,
		BMI:    bmi,
		Notes:  notes,
	}

	entryID, err := s.progressRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID

	// Refresh the member's live stats, recompute derived fields, persist.
	member.Weight = weight
	member.BMI = bmi
	if err := s.matcher.Recompute(ctx, member); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	return entry, nil
}

// History returns the ordered log for a member, subject to the coarse
// access rule: self, or any staff/admin role.
func (s *progressService) History(ctx context.Context, requesterID primitive.ObjectID, requesterRole domain.Role, memberID primitive.ObjectID) ([]domain.Progress, error) {
	if requesterID != memberID && !domain.IsStaffRole(requesterRole) && requesterRole != domain.RoleAdmin {
		return nil, ErrHistoryAccessDenied
	}
	return s.progressRepo.ListByUser(ctx, memberID)
}
