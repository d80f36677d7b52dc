package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fitclub/fitness-club/internal/domain"
)

func TestAssignedMembers_FiltersByRoleReference(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	trainerID := seedUser(repo, activeStaff("trainer", domain.RoleTrainer, domain.CategoryNormal))
	seedUser(repo, &domain.User{
		Name: "Mine", Email: "mine@fitclub.test", PasswordHash: "x", Role: domain.RoleMember,
		AssignedTrainer: &trainerID,
	})
	seedUser(repo, &domain.User{
		Name: "Not mine", Email: "other@fitclub.test", PasswordHash: "x", Role: domain.RoleMember,
	})
	// Same staff ID in a different role slot must not match a trainer query.
	seedUser(repo, &domain.User{
		Name: "Wrong slot", Email: "slot@fitclub.test", PasswordHash: "x", Role: domain.RoleMember,
		AssignedNutritionist: &trainerID,
	})
	svc := NewStaffService(repo, &fakeFileStorage{})

	members, err := svc.AssignedMembers(context.Background(), trainerID, domain.RoleTrainer)
	if err != nil {
		t.Fatalf("AssignedMembers returned error: %v", err)
	}
	if len(members) != 1 || members[0].Name != "Mine" {
		t.Fatalf("expected only the assigned member, got %v", members)
	}
	if members[0].PasswordHash != "" {
		t.Fatalf("password hash leaked in listing")
	}

	if _, err := svc.AssignedMembers(context.Background(), trainerID, domain.RoleMember); !errors.Is(err, ErrInvalidStaffRole) {
		t.Fatalf("expected ErrInvalidStaffRole, got %v", err)
	}
}

func TestCredentialUploadURL_KeyShape(t *testing.T) {
	t.Parallel()

	svc := NewStaffService(newFakeUserRepo(), &fakeFileStorage{})

	upload, err := svc.CredentialUploadURL(context.Background(), "license.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("CredentialUploadURL returned error: %v", err)
	}
	if !strings.HasPrefix(upload.ObjectKey, "credentials/") || !strings.HasSuffix(upload.ObjectKey, ".pdf") {
		t.Fatalf("unexpected object key %q", upload.ObjectKey)
	}
	if upload.UploadURL != "https://storage.test/upload/"+upload.ObjectKey {
		t.Fatalf("unexpected upload URL %q", upload.UploadURL)
	}

	// Keys are unique per request even for identical file names.
	again, err := svc.CredentialUploadURL(context.Background(), "license.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("CredentialUploadURL returned error: %v", err)
	}
	if again.ObjectKey == upload.ObjectKey {
		t.Fatalf("expected unique object keys, got %q twice", upload.ObjectKey)
	}

	if _, err := svc.CredentialUploadURL(context.Background(), "", "application/pdf"); err == nil {
		t.Fatalf("expected error for missing file name")
	}
}
