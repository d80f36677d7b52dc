package service

import (
	"context"
	"sort"
	"time"

	"fitclub/fitness-club/internal/domain"
	"fitclub/fitness-club/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. Slices keep insertion order so "first match in
// natural store order" is observable in tests.

// --- Users ---

type fakeUserRepo struct {
	users []*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.users = append(r.users, &stored)
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	for i, u := range r.users {
		if u.ID == user.ID {
			stored := *user
			stored.UpdatedAt = time.Now().UTC()
			r.users[i] = &stored
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeUserRepo) FindFirstActiveStaff(_ context.Context, role domain.Role, category domain.Category) (*domain.User, error) {
	for _, u := range r.users {
		if u.Role == role && u.Status == domain.StatusActive && u.ServicesCategory(category) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ListStaffByStatus(_ context.Context, status domain.Status) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.IsStaff() && u.Status == status {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByAssignedStaff(_ context.Context, role domain.Role, staffID primitive.ObjectID) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if ref := assignmentRef(u, role); ref != nil && *ref == staffID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ClearAssignedStaff(_ context.Context, role domain.Role, staffID primitive.ObjectID) error {
	for _, u := range r.users {
		switch role {
		case domain.RoleTrainer:
			if u.AssignedTrainer != nil && *u.AssignedTrainer == staffID {
				u.AssignedTrainer = nil
			}
		case domain.RoleNutritionist:
			if u.AssignedNutritionist != nil && *u.AssignedNutritionist == staffID {
				u.AssignedNutritionist = nil
			}
		case domain.RolePharmacist:
			if u.AssignedPharmacist != nil && *u.AssignedPharmacist == staffID {
				u.AssignedPharmacist = nil
			}
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func assignmentRef(u *domain.User, role domain.Role) *primitive.ObjectID {
	switch role {
	case domain.RoleTrainer:
		return u.AssignedTrainer
	case domain.RoleNutritionist:
		return u.AssignedNutritionist
	case domain.RolePharmacist:
		return u.AssignedPharmacist
	default:
		return nil
	}
}

// stored returns the live stored record, bypassing the clone-on-read the
// repo methods do. Test helper only.
func (r *fakeUserRepo) stored(id primitive.ObjectID) *domain.User {
	for _, u := range r.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// --- Plans ---

type fakePlanRepo struct {
	plans []*domain.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	// Unique (assignedTo, week, assignedByRole) slot, as the store enforces.
	for _, p := range r.plans {
		if p.AssignedTo == plan.AssignedTo && p.Week == plan.Week && p.AssignedByRole == plan.AssignedByRole {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	if plan.Status == "" {
		plan.Status = domain.PlanStatusActive
	}
	stored := *plan
	r.plans = append(r.plans, &stored)
	return plan.ID, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	for _, p := range r.plans {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) ListByAssignee(_ context.Context, memberID primitive.ObjectID, activeOnly bool) ([]domain.Plan, error) {
	var out []domain.Plan
	for _, p := range r.plans {
		if p.AssignedTo != memberID {
			continue
		}
		if activeOnly && p.Status != domain.PlanStatusActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePlanRepo) ListByCreator(_ context.Context, staffID primitive.ObjectID) ([]domain.Plan, error) {
	var out []domain.Plan
	for _, p := range r.plans {
		if p.AssignedBy == staffID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) ListByAssigneeAndWeek(_ context.Context, memberID primitive.ObjectID, week int) ([]domain.Plan, error) {
	var out []domain.Plan
	for _, p := range r.plans {
		if p.AssignedTo == memberID && p.Week == week {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) UpdateContent(_ context.Context, id primitive.ObjectID, title, instructions string) error {
	for _, p := range r.plans {
		if p.ID == id {
			p.Title = title
			p.Instructions = instructions
			p.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakePlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, p := range r.plans {
		if p.ID == id {
			r.plans = append(r.plans[:i], r.plans[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- Progress ---

type fakeProgressRepo struct {
	entries []*domain.Progress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{}
}

func (r *fakeProgressRepo) Create(_ context.Context, entry *domain.Progress) (primitive.ObjectID, error) {
	entry.ID = primitive.NewObjectID()
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}
	entry.CreatedAt = time.Now().UTC()
	stored := *entry
	r.entries = append(r.entries, &stored)
	return entry.ID, nil
}

func (r *fakeProgressRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Progress, error) {
	var out []domain.Progress
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// --- Messages ---

type fakeMessageRepo struct {
	messages []*domain.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(_ context.Context, message *domain.Message) (primitive.ObjectID, error) {
	message.ID = primitive.NewObjectID()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	stored := *message
	r.messages = append(r.messages, &stored)
	return message.ID, nil
}

func (r *fakeMessageRepo) Conversation(_ context.Context, a, b primitive.ObjectID) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.messages {
		if (m.Sender == a && m.Receiver == b) || (m.Sender == b && m.Receiver == a) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// --- File storage ---

type fakeFileStorage struct {
	deleted []string
}

func (s *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (s *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (s *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

// --- Shared helpers ---

func activeStaff(name string, role domain.Role, categories ...domain.Category) *domain.User {
	return &domain.User{
		Name:               name,
		Email:              name + "@fitclub.test",
		PasswordHash:       "x",
		Role:               role,
		Status:             domain.StatusActive,
		AssignedCategories: categories,
	}
}

func seedUser(repo *fakeUserRepo, user *domain.User) primitive.ObjectID {
	id, err := repo.Create(context.Background(), user)
	if err != nil {
		panic(err)
	}
	return id
}
