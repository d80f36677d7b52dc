package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progress is one append-only weight log entry for a member. Entries are
// never mutated or deleted; the BMI is computed from the weight at logging
// time and the member's height at that moment.
type Progress struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Date      time.Time          `bson:"date" json:"date"`
	Weight    float64            `bson:"weight" json:"weight"` // kg
	BMI       float64            `bson:"bmi" json:"bmi"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
