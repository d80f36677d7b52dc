package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"fitclub/fitness-club/internal/domain"
	"fitclub/fitness-club/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new Plan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a new plan. The unique (assignedTo, week, assignedByRole)
// index turns a same-role same-week duplicate into ErrConflict, so two
// concurrent creations cannot both land.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if plan.AssignedBy == primitive.NilObjectID || plan.AssignedTo == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan requires assignedBy and assignedTo")
	}
	if plan.AssignedByRole == "" || plan.Title == "" || plan.Week <= 0 {
		return primitive.NilObjectID, errors.New("plan requires creator role, title, and a positive week")
	}

	plan.ID = primitive.NewObjectID()
	if plan.Status == "" {
		plan.Status = domain.PlanStatusActive
	}
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single plan by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	var plan domain.Plan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// ListByAssignee retrieves plans assigned to a member, newest first.
// With activeOnly set, archived plans are filtered out (member's own view).
func (r *mongoPlanRepository) ListByAssignee(ctx context.Context, memberID primitive.ObjectID, activeOnly bool) ([]domain.Plan, error) {
	filter := bson.M{"assignedTo": memberID}
	if activeOnly {
		filter["status"] = domain.PlanStatusActive
	}
	return r.findPlans(ctx, filter)
}

// ListByCreator retrieves plans authored by a staff member, newest first.
func (r *mongoPlanRepository) ListByCreator(ctx context.Context, staffID primitive.ObjectID) ([]domain.Plan, error) {
	return r.findPlans(ctx, bson.M{"assignedBy": staffID})
}

// ListByAssigneeAndWeek retrieves every plan occupying the member's week,
// regardless of creator. Used for the per-role conflict pre-check.
func (r *mongoPlanRepository) ListByAssigneeAndWeek(ctx context.Context, memberID primitive.ObjectID, week int) ([]domain.Plan, error) {
	return r.findPlans(ctx, bson.M{"assignedTo": memberID, "week": week})
}

func (r *mongoPlanRepository) findPlans(ctx context.Context, filter bson.M) ([]domain.Plan, error) {
	var plans []domain.Plan
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	return plans, nil
}

// UpdateContent persists title and instructions only. Week, type, assignee,
// and creator are fixed once a plan exists.
func (r *mongoPlanRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, title, instructions string) error {
	if id == primitive.NilObjectID {
		return errors.New("plan ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"title":        title,
			"instructions": instructions,
			"updatedAt":    time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a plan.
func (r *mongoPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One plan per member per week per staff role, enforced by the
			// store so concurrent creations cannot both pass an app-level check.
			Keys:    bson.D{{Key: "assignedTo", Value: 1}, {Key: "week", Value: 1}, {Key: "assignedByRole", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "assignedBy", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "assignedTo", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// The unique slot index is the concurrency guard for plan creation.
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
