package mongo

import (
	"context"
	"errors"
	"time"

	"fitclub/fitness-club/internal/domain"
	"fitclub/fitness-club/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

// assignmentField maps a staff role to the member field referencing it.
// Only trainer, nutritionist, and pharmacist have reference fields.
func assignmentField(role domain.Role) (string, bool) {
	switch role {
	case domain.RoleTrainer:
		return "assignedTrainer", true
	case domain.RoleNutritionist:
		return "assignedNutritionist", true
	case domain.RolePharmacist:
		return "assignedPharmacist", true
	default:
		return "", false
	}
}

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user into the database.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.PasswordHash == "" || user.Role == "" {
		return primitive.NilObjectID, errors.New("user email, password hash, and role are required")
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		// Unique index on email
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByEmail retrieves a user by their email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"email": email}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their MongoDB ObjectID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update replaces the mutable fields of a user document. Identity fields
// (email, role, createdAt) are not touched here.
func (r *mongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	if user.ID == primitive.NilObjectID {
		return errors.New("user ID is required for update")
	}

	filter := bson.M{"_id": user.ID}
	set := bson.M{
		"name":                user.Name,
		"passwordHash":        user.PasswordHash,
		"age":                 user.Age,
		"height":              user.Height,
		"weight":              user.Weight,
		"bmi":                 user.BMI,
		"category":            user.Category,
		"goal":                user.Goal,
		"medicalConditions":   user.MedicalConditions,
		"phone":               user.Phone,
		"specialization":      user.Specialization,
		"experience":          user.Experience,
		"bio":                 user.Bio,
		"certificationNumber": user.CertificationNumber,
		"credentialFile":      user.CredentialFile,
		"status":              user.Status,
		"assignedCategories":  user.AssignedCategories,
		"updatedAt":           time.Now().UTC(),
	}
	unset := bson.M{}

	// Nullable reference and rejection fields: clear them when unset so stale
	// values do not linger in the document.
	setOrUnset(set, unset, "assignedTrainer", user.AssignedTrainer)
	setOrUnset(set, unset, "assignedNutritionist", user.AssignedNutritionist)
	setOrUnset(set, unset, "assignedPharmacist", user.AssignedPharmacist)
	setOrUnset(set, unset, "approvedBy", user.ApprovedBy)
	if user.ApprovedAt != nil {
		set["approvedAt"] = user.ApprovedAt
	} else {
		unset["approvedAt"] = ""
	}
	if user.RejectionReason != "" {
		set["rejectionReason"] = user.RejectionReason
	} else {
		unset["rejectionReason"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func setOrUnset(set, unset bson.M, field string, id *primitive.ObjectID) {
	if id != nil && *id != primitive.NilObjectID {
		set[field] = id
	} else {
		unset[field] = ""
	}
}

// FindFirstActiveStaff returns the first active staff member of the role
// servicing the category. Natural store order decides ties between multiple
// matching staff; no fairness policy is applied.
func (r *mongoUserRepository) FindFirstActiveStaff(ctx context.Context, role domain.Role, category domain.Category) (*domain.User, error) {
	var staff domain.User
	filter := bson.M{
		"role":               role,
		"status":             domain.StatusActive,
		"assignedCategories": category,
	}

	err := r.collection.FindOne(ctx, filter).Decode(&staff)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &staff, nil
}

// ListStaffByStatus retrieves all staff-role users with the given status.
func (r *mongoUserRepository) ListStaffByStatus(ctx context.Context, status domain.Status) ([]domain.User, error) {
	filter := bson.M{
		"role":   bson.M{"$in": domain.StaffRoles},
		"status": status,
	}
	return r.findUsers(ctx, filter)
}

// ListAll retrieves every user.
func (r *mongoUserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	return r.findUsers(ctx, bson.M{})
}

// ListByAssignedStaff retrieves members whose assignment reference for the
// role points at staffID.
func (r *mongoUserRepository) ListByAssignedStaff(ctx context.Context, role domain.Role, staffID primitive.ObjectID) ([]domain.User, error) {
	field, ok := assignmentField(role)
	if !ok {
		return nil, errors.New("role has no assignment reference field")
	}
	return r.findUsers(ctx, bson.M{field: staffID})
}

func (r *mongoUserRepository) findUsers(ctx context.Context, filter bson.M) ([]domain.User, error) {
	var users []domain.User

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// ClearAssignedStaff unsets the assignment reference for the role on every
// member currently pointing at staffID.
func (r *mongoUserRepository) ClearAssignedStaff(ctx context.Context, role domain.Role, staffID primitive.ObjectID) error {
	field, ok := assignmentField(role)
	if !ok {
		return errors.New("role has no assignment reference field")
	}

	filter := bson.M{field: staffID}
	update := bson.M{
		"$unset": bson.M{field: ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	}

	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// Delete removes a user document.
func (r *mongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Staff matching: role + status + servicing category
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}, {Key: "assignedCategories", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "assignedTrainer", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "assignedNutritionist", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "assignedPharmacist", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is not fatal at startup; queries still work
		// without them, just slower / without the unique guard.
	}
}
