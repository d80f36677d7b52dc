package service

import (
	"context"
	"errors"
	"fmt"

	"fitclub/fitness-club/internal/domain"
	"fitclub/fitness-club/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound   = errors.New("plan not found")
	ErrNotPlanCreator = errors.New("not authorized: only the plan's creator may modify it")
	ErrInvalidPlan    = errors.New("invalid plan data")
)

// PlanConflictError reports a violated one-plan-per-role-per-week slot.
type PlanConflictError struct {
	Week int
	Role domain.Role
}

func (e *PlanConflictError) Error() string {
	return fmt.Sprintf("a plan for week %d has already been assigned by a %s; only one plan per role per week is allowed", e.Week, e.Role)
}

// CreatePlanInput carries the fields a staff member supplies when assigning
// a plan to a member.
type CreatePlanInput struct {
	AssignedTo   primitive.ObjectID
	Type         domain.PlanType
	Title        string
	Week         int
	Instructions string
}

// UpdatePlanInput carries the only mutable plan fields. Requests attempting
// to change week, type, or assignee are not rejected; those fields are simply
// never read.
type UpdatePlanInput struct {
	Title        string
	Instructions string
}

// --- Service Interface ---
type PlanService interface {
	Create(ctx context.Context, staffID primitive.ObjectID, staffRole domain.Role, input CreatePlanInput) (*domain.Plan, error)
	MyPlans(ctx context.Context, memberID primitive.ObjectID) ([]domain.Plan, error)
	CreatedPlans(ctx context.Context, staffID primitive.ObjectID) ([]domain.Plan, error)
	MemberPlans(ctx context.Context, memberID primitive.ObjectID) ([]domain.Plan, error)
	Update(ctx context.Context, staffID, planID primitive.ObjectID, input UpdatePlanInput) (*domain.Plan, error)
	Delete(ctx context.Context, staffID, planID primitive.ObjectID) error
}

// planService implements the PlanService interface.
type planService struct {
	planRepo repository.PlanRepository
	userRepo repository.UserRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, userRepo repository.UserRepository) PlanService {
	return &planService{
		planRepo: planRepo,
		userRepo: userRepo,
	}
}

// Create assigns a new weekly plan to a member. At most one plan per staff
// role may occupy a given (member, week): a trainer-authored and a
// nutritionist-authored plan can coexist for week 3, two trainer-authored
// plans cannot. The existing-plan walk gives the descriptive error in the
// common path; the store's unique slot index backstops concurrent creations.
func (s *planService) Create(ctx context.Context, staffID primitive.ObjectID, staffRole domain.Role, input CreatePlanInput) (*domain.Plan, error) {
	if !domain.IsStaffRole(staffRole) {
		return nil, ErrInvalidStaffRole
	}
	if input.AssignedTo == primitive.NilObjectID || input.Title == "" || input.Week <= 0 || !domain.ValidPlanType(input.Type) {
		return nil, ErrInvalidPlan
	}

	existing, err := s.planRepo.ListByAssigneeAndWeek(ctx, input.AssignedTo, input.Week)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.AssignedByRole == staffRole {
			return nil, &PlanConflictError{Week: input.Week, Role: staffRole}
		}
	}

	plan := &domain.Plan{
		AssignedBy:     staffID,
		AssignedByRole: staffRole,
		AssignedTo:     input.AssignedTo,
		Type:           input.Type,
		Title:          input.Title,
		Week:           input.Week,
		Instructions:   input.Instructions,
		Status:         domain.PlanStatusActive,
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, &PlanConflictError{Week: input.Week, Role: staffRole}
		}
		return nil, err
	}
	plan.ID = planID
	return plan, nil
}

// MyPlans returns the member's own plans, active only.
func (s *planService) MyPlans(ctx context.Context, memberID primitive.ObjectID) ([]domain.Plan, error) {
	return s.planRepo.ListByAssignee(ctx, memberID, true)
}

// CreatedPlans returns the plans a staff member has authored.
func (s *planService) CreatedPlans(ctx context.Context, staffID primitive.ObjectID) ([]domain.Plan, error) {
	return s.planRepo.ListByCreator(ctx, staffID)
}

// MemberPlans is the staff view of a member's plans, with no status filter.
func (s *planService) MemberPlans(ctx context.Context, memberID primitive.ObjectID) ([]domain.Plan, error) {
	return s.planRepo.ListByAssignee(ctx, memberID, false)
}

// Update applies title and instructions to a plan. Only the original creator
// may update; empty fields keep their previous values. Week, type, and
// assignee are never touched, so the per-week-per-role slot stays closed.
func (s *planService) Update(ctx context.Context, staffID, planID primitive.ObjectID, input UpdatePlanInput) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if plan.AssignedBy != staffID {
		return nil, ErrNotPlanCreator
	}

	if input.Title != "" {
		plan.Title = input.Title
	}
	if input.Instructions != "" {
		plan.Instructions = input.Instructions
	}

	if err := s.planRepo.UpdateContent(ctx, plan.ID, plan.Title, plan.Instructions); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// Delete removes a plan. Only the original creator may delete.
func (s *planService) Delete(ctx context.Context, staffID, planID primitive.ObjectID) error {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	if plan.AssignedBy != staffID {
		return ErrNotPlanCreator
	}

	if err := s.planRepo.Delete(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}
