package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanType categorizes what kind of instructions a plan carries.
type PlanType string

const (
	PlanTypeWorkout PlanType = "workout"
	PlanTypeDiet    PlanType = "diet"
	PlanTypeMedical PlanType = "medical"
)

// PlanStatus tracks whether a plan is currently in effect.
type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusArchived PlanStatus = "archived"
)

// Plan is a weekly instruction set authored by a staff member for a member.
// At most one plan per (member, week) may exist for each staff role: a
// trainer-authored and a nutritionist-authored plan can share a week, two
// trainer-authored plans cannot. AssignedByRole is denormalized from the
// creator so the store can enforce that slot with a unique index.
type Plan struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssignedBy     primitive.ObjectID `bson:"assignedBy" json:"assignedBy"`         // Staff member who created the plan
	AssignedByRole Role               `bson:"assignedByRole" json:"assignedByRole"` // Creator's role at creation time
	AssignedTo     primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`         // Member the plan is for
	Type           PlanType           `bson:"type" json:"type"`
	Title          string             `bson:"title" json:"title"`
	Week           int                `bson:"week" json:"week"` // Positive week number
	Instructions   string             `bson:"instructions" json:"instructions"`
	Status         PlanStatus         `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func ValidPlanType(t PlanType) bool {
	return t == PlanTypeWorkout || t == PlanTypeDiet || t == PlanTypeMedical
}
