package service

import (
	"context"
	"errors"

	"fitclub/fitness-club/internal/domain"
	"fitclub/fitness-club/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaffMatcher recomputes a member's derived fields (BMI, category) and
// refreshes their staff assignment references. Callers invoke Recompute
// explicitly before persisting the member, so the write path reads:
// recompute, then save. There is no hidden persistence hook.
type StaffMatcher struct {
	userRepo repository.UserRepository
}

// NewStaffMatcher creates a StaffMatcher backed by the given user store.
func NewStaffMatcher(userRepo repository.UserRepository) *StaffMatcher {
	return &StaffMatcher{userRepo: userRepo}
}

// Recompute derives BMI and category from the member's current weight and
// height, then for each staff role looks up an active staff member servicing
// that category and points the corresponding assignment reference at them.
// When no staff matches a role, the member's existing reference is left
// untouched; a prior assignment is never cleared here.
//
// The first matching staff in natural store order wins when several service
// the same category. Mutates the member in memory only; the caller persists.
func (m *StaffMatcher) Recompute(ctx context.Context, member *domain.User) error {
	if !member.IsMember() || member.Weight <= 0 || member.Height <= 0 {
		return nil
	}

	member.BMI = domain.CalculateBMI(member.Weight, member.Height)
	member.Category = domain.CategoryForBMI(member.BMI)

	if err := m.matchRole(ctx, member.Category, domain.RoleTrainer, &member.AssignedTrainer); err != nil {
		return err
	}
	if err := m.matchRole(ctx, member.Category, domain.RoleNutritionist, &member.AssignedNutritionist); err != nil {
		return err
	}
	if err := m.matchRole(ctx, member.Category, domain.RolePharmacist, &member.AssignedPharmacist); err != nil {
		return err
	}
	return nil
}

func (m *StaffMatcher) matchRole(ctx context.Context, category domain.Category, role domain.Role, ref **primitive.ObjectID) error {
	staff, err := m.userRepo.FindFirstActiveStaff(ctx, role, category)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil // keep whatever reference was there before
		}
		return err
	}
	id := staff.ID
	*ref = &id
	return nil
}
