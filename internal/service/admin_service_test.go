package service

import (
	"context"
	"errors"
	"testing"

	"fitclub/fitness-club/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestAdminService(repo *fakeUserRepo) AdminService {
	return NewAdminService(repo, &fakeFileStorage{})
}

func seedAdmin(repo *fakeUserRepo) primitive.ObjectID {
	return seedUser(repo, &domain.User{
		Name:         "Admin",
		Email:        "admin@fitclub.test",
		PasswordHash: "x",
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
	})
}

func seedPendingStaff(repo *fakeUserRepo, name string, role domain.Role) primitive.ObjectID {
	staff := activeStaff(name, role)
	staff.Status = domain.StatusPending
	return seedUser(repo, staff)
}

func TestUpdateStaffStatus_ApproveStampsApprover(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	adminID := seedAdmin(repo)
	staffID := seedPendingStaff(repo, "applicant", domain.RoleTrainer)
	svc := newTestAdminService(repo)

	updated, err := svc.UpdateStaffStatus(context.Background(), adminID, staffID, domain.StatusActive, "")
	if err != nil {
		t.Fatalf("UpdateStaffStatus returned error: %v", err)
	}
	if updated.Status != domain.StatusActive {
		t.Fatalf("expected status active, got %q", updated.Status)
	}
	if updated.ApprovedBy == nil || *updated.ApprovedBy != adminID {
		t.Fatalf("expected approvedBy=%v, got %v", adminID, updated.ApprovedBy)
	}
	if updated.ApprovedAt == nil {
		t.Fatalf("expected approvedAt stamped")
	}
}

func TestUpdateStaffStatus_RejectStoresReasonAndStillStamps(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	adminID := seedAdmin(repo)
	staffID := seedPendingStaff(repo, "applicant", domain.RolePharmacist)
	svc := newTestAdminService(repo)

	updated, err := svc.UpdateStaffStatus(context.Background(), adminID, staffID, domain.StatusRejected, "missing license scan")
	if err != nil {
		t.Fatalf("UpdateStaffStatus returned error: %v", err)
	}
	if updated.Status != domain.StatusRejected {
		t.Fatalf("expected status rejected, got %q", updated.Status)
	}
	if updated.RejectionReason != "missing license scan" {
		t.Fatalf("expected rejection reason stored, got %q", updated.RejectionReason)
	}
	// Rejection stamps the reviewer fields the same way approval does.
	if updated.ApprovedBy == nil || *updated.ApprovedBy != adminID || updated.ApprovedAt == nil {
		t.Fatalf("expected reviewer stamp on rejection, got by=%v at=%v", updated.ApprovedBy, updated.ApprovedAt)
	}
}

func TestUpdateStaffStatus_NonStaffRejected(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	adminID := seedAdmin(repo)
	memberID := seedUser(repo, &domain.User{
		Name: "Member", Email: "m@fitclub.test", PasswordHash: "x", Role: domain.RoleMember,
	})
	svc := newTestAdminService(repo)

	if _, err := svc.UpdateStaffStatus(context.Background(), adminID, memberID, domain.StatusActive, ""); !errors.Is(err, ErrNotStaff) {
		t.Fatalf("expected ErrNotStaff, got %v", err)
	}
	if _, err := svc.UpdateStaffStatus(context.Background(), adminID, primitive.NewObjectID(), domain.StatusActive, ""); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateStaffCategories_ReplacesWholesale(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	staffID := seedUser(repo, activeStaff("trainer", domain.RoleTrainer, domain.CategoryNormal))
	svc := newTestAdminService(repo)

	updated, err := svc.UpdateStaffCategories(context.Background(), staffID, []domain.Category{domain.CategoryObese, domain.CategoryOverweight})
	if err != nil {
		t.Fatalf("UpdateStaffCategories returned error: %v", err)
	}
	if len(updated.AssignedCategories) != 2 {
		t.Fatalf("expected 2 categories, got %v", updated.AssignedCategories)
	}

	if _, err := svc.UpdateStaffCategories(context.Background(), staffID, []domain.Category{"Gigantic"}); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory for unknown label, got %v", err)
	}
}

func TestUpdateStaffCategories_DoesNotReassignExistingMembers(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	trainerID := seedUser(repo, activeStaff("trainer", domain.RoleTrainer, domain.CategoryNormal))
	seedUser(repo, activeStaff("other", domain.RoleTrainer, domain.CategoryNormal))
	memberID := seedUser(repo, &domain.User{
		Name: "Member", Email: "m@fitclub.test", PasswordHash: "x", Role: domain.RoleMember,
		Weight: 70, Height: 1.80, Category: domain.CategoryNormal,
		AssignedTrainer: &trainerID,
	})
	svc := newTestAdminService(repo)

	// Trainer drops Normal; the member keeps pointing at them until their
	// own next save.
	if _, err := svc.UpdateStaffCategories(context.Background(), trainerID, []domain.Category{domain.CategoryObese}); err != nil {
		t.Fatalf("UpdateStaffCategories returned error: %v", err)
	}

	member := repo.stored(memberID)
	if member.AssignedTrainer == nil || *member.AssignedTrainer != trainerID {
		t.Fatalf("expected member untouched by category change, got %v", member.AssignedTrainer)
	}
}

func TestDeleteUser_TrainerCascadeClearsMemberReferences(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	trainerID := seedUser(repo, activeStaff("trainer", domain.RoleTrainer, domain.CategoryNormal))
	nutritionistID := seedUser(repo, activeStaff("nutritionist", domain.RoleNutritionist, domain.CategoryNormal))
	memberID := seedUser(repo, &domain.User{
		Name: "Member", Email: "m@fitclub.test", PasswordHash: "x", Role: domain.RoleMember,
		AssignedTrainer:      &trainerID,
		AssignedNutritionist: &nutritionistID,
	})
	svc := newTestAdminService(repo)

	if err := svc.DeleteUser(context.Background(), trainerID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}

	member := repo.stored(memberID)
	if member.AssignedTrainer != nil {
		t.Fatalf("expected assignedTrainer cleared, got %v", member.AssignedTrainer)
	}
	if member.AssignedNutritionist == nil || *member.AssignedNutritionist != nutritionistID {
		t.Fatalf("expected assignedNutritionist untouched, got %v", member.AssignedNutritionist)
	}
	if repo.stored(trainerID) != nil {
		t.Fatalf("expected trainer removed")
	}
}

// Deleting a pharmacist performs no cascade: members keep the dangling
// reference until their own next save recomputes assignments. This pins the
// current asymmetry with the trainer/nutritionist cascade.
func TestDeleteUser_PharmacistReferencesLeftDangling(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	pharmacistID := seedUser(repo, activeStaff("pharmacist", domain.RolePharmacist, domain.CategoryNormal))
	memberID := seedUser(repo, &domain.User{
		Name: "Member", Email: "m@fitclub.test", PasswordHash: "x", Role: domain.RoleMember,
		AssignedPharmacist: &pharmacistID,
	})
	svc := newTestAdminService(repo)

	if err := svc.DeleteUser(context.Background(), pharmacistID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}

	member := repo.stored(memberID)
	if member.AssignedPharmacist == nil || *member.AssignedPharmacist != pharmacistID {
		t.Fatalf("expected dangling pharmacist reference preserved, got %v", member.AssignedPharmacist)
	}
	if repo.stored(pharmacistID) != nil {
		t.Fatalf("expected pharmacist removed")
	}
}

func TestListUsers_ResolvesAssignmentNames(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	trainerID := seedUser(repo, activeStaff("Coach Casey", domain.RoleTrainer, domain.CategoryNormal))
	seedUser(repo, &domain.User{
		Name: "Member", Email: "m@fitclub.test", PasswordHash: "x", Role: domain.RoleMember,
		AssignedTrainer: &trainerID,
	})
	svc := newTestAdminService(repo)

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}

	var member *UserOverview
	for i := range users {
		if users[i].Role == domain.RoleMember {
			member = &users[i]
		}
		if users[i].PasswordHash != "" {
			t.Fatalf("password hash leaked in listing")
		}
	}
	if member == nil {
		t.Fatalf("member missing from listing")
	}
	if member.AssignedTrainerName != "Coach Casey" {
		t.Fatalf("expected resolved trainer name, got %q", member.AssignedTrainerName)
	}
}

func TestListPendingStaff_FiltersByStatus(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	seedPendingStaff(repo, "pending-one", domain.RoleTrainer)
	seedPendingStaff(repo, "pending-two", domain.RoleNutritionist)
	seedUser(repo, activeStaff("already-active", domain.RolePharmacist, domain.CategoryNormal))
	svc := newTestAdminService(repo)

	pending, err := svc.ListPendingStaff(context.Background())
	if err != nil {
		t.Fatalf("ListPendingStaff returned error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending staff, got %d", len(pending))
	}

	active, err := svc.ListActiveStaff(context.Background())
	if err != nil {
		t.Fatalf("ListActiveStaff returned error: %v", err)
	}
	if len(active) != 1 || active[0].Name != "already-active" {
		t.Fatalf("expected only the active pharmacist, got %v", active)
	}
}

func TestCredentialDownloadURL(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	staff := activeStaff("trainer", domain.RoleTrainer)
	staff.CredentialFile = "credentials/abc.pdf"
	staffID := seedUser(repo, staff)
	bare := activeStaff("no-file", domain.RoleNutritionist)
	bareID := seedUser(repo, bare)
	svc := newTestAdminService(repo)

	url, err := svc.CredentialDownloadURL(context.Background(), staffID)
	if err != nil {
		t.Fatalf("CredentialDownloadURL returned error: %v", err)
	}
	if url != "https://storage.test/download/credentials/abc.pdf" {
		t.Fatalf("unexpected download URL %q", url)
	}

	if _, err := svc.CredentialDownloadURL(context.Background(), bareID); !errors.Is(err, ErrNoCredentialFile) {
		t.Fatalf("expected ErrNoCredentialFile, got %v", err)
	}
}
