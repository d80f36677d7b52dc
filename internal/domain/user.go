package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleMember       Role = "member"
	RoleTrainer      Role = "trainer"
	RoleNutritionist Role = "nutritionist"
	RolePharmacist   Role = "pharmacist"
	RoleAdmin        Role = "admin"
)

// StaffRoles lists the roles that require admin approval before activation.
var StaffRoles = []Role{RoleTrainer, RoleNutritionist, RolePharmacist}

// Status tracks the approval lifecycle of a staff account.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusRejected Status = "rejected"
)

// User represents any account in the system: a member tracking fitness
// metrics, a staff member (trainer/nutritionist/pharmacist) servicing
// categories, or an admin.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Member-specific ---
	Age               int      `bson:"age,omitempty" json:"age,omitempty"`
	Height            float64  `bson:"height,omitempty" json:"height,omitempty"` // meters
	Weight            float64  `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	BMI               float64  `bson:"bmi,omitempty" json:"bmi,omitempty"`
	Category          Category `bson:"category,omitempty" json:"category,omitempty"`
	Goal              string   `bson:"goal,omitempty" json:"goal,omitempty"`
	MedicalConditions string   `bson:"medicalConditions,omitempty" json:"medicalConditions,omitempty"`

	// Assignment references set by the matching pipeline. Nullable: a member
	// may have no matching staff for their category yet.
	AssignedTrainer      *primitive.ObjectID `bson:"assignedTrainer,omitempty" json:"assignedTrainer,omitempty"`
	AssignedNutritionist *primitive.ObjectID `bson:"assignedNutritionist,omitempty" json:"assignedNutritionist,omitempty"`
	AssignedPharmacist   *primitive.ObjectID `bson:"assignedPharmacist,omitempty" json:"assignedPharmacist,omitempty"`

	// --- Staff-specific ---
	Phone               string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Specialization      string              `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Experience          int                 `bson:"experience,omitempty" json:"experience,omitempty"` // years
	Bio                 string              `bson:"bio,omitempty" json:"bio,omitempty"`
	CertificationNumber string              `bson:"certificationNumber,omitempty" json:"certificationNumber,omitempty"`
	CredentialFile      string              `bson:"credentialFile,omitempty" json:"-"` // S3 object key of the uploaded credential document
	Status              Status              `bson:"status,omitempty" json:"status,omitempty"`
	RejectionReason     string              `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	AssignedCategories  []Category          `bson:"assignedCategories,omitempty" json:"assignedCategories,omitempty"`
	ApprovedBy          *primitive.ObjectID `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt          *time.Time          `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
}

func (u *User) IsMember() bool {
	return u.Role == RoleMember
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsStaff reports whether the user holds one of the approval-gated roles.
func (u *User) IsStaff() bool {
	return IsStaffRole(u.Role)
}

func IsStaffRole(role Role) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ServicesCategory reports whether a staff member is assigned to handle
// members of the given category.
func (u *User) ServicesCategory(category Category) bool {
	for _, c := range u.AssignedCategories {
		if c == category {
			return true
		}
	}
	return false
}
