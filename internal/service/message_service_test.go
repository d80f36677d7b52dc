package service

import (
	"context"
	"errors"
	"testing"

	"fitclub/fitness-club/internal/domain"
)

func newTestMessageService(messages *fakeMessageRepo, users *fakeUserRepo) MessageService {
	return NewMessageService(messages, users)
}

func TestSendMessage_ResolvesSender(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	messages := newFakeMessageRepo()
	memberID := seedUser(users, &domain.User{
		Name: "Member", Email: "m@fitclub.test", PasswordHash: "x", Role: domain.RoleMember,
	})
	trainerID := seedUser(users, activeStaff("Coach", domain.RoleTrainer, domain.CategoryNormal))
	svc := newTestMessageService(messages, users)

	view, err := svc.Send(context.Background(), memberID, trainerID, "how many sets today?")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if view.SenderName != "Member" || view.SenderRole != domain.RoleMember {
		t.Fatalf("expected sender resolved, got name=%q role=%q", view.SenderName, view.SenderRole)
	}
	if view.Text != "how many sets today?" {
		t.Fatalf("unexpected text %q", view.Text)
	}

	if _, err := svc.Send(context.Background(), memberID, trainerID, ""); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestConversation_BothDirectionsOldestFirst(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	messages := newFakeMessageRepo()
	memberID := seedUser(users, &domain.User{
		Name: "Member", Email: "m@fitclub.test", PasswordHash: "x", Role: domain.RoleMember,
	})
	trainerID := seedUser(users, activeStaff("Coach", domain.RoleTrainer, domain.CategoryNormal))
	outsiderID := seedUser(users, &domain.User{
		Name: "Outsider", Email: "out@fitclub.test", PasswordHash: "x", Role: domain.RoleMember,
	})
	svc := newTestMessageService(messages, users)

	texts := []struct {
		from, to string
		text     string
	}{
		{"member", "trainer", "how many sets today?"},
		{"trainer", "member", "five, keep the rests short"},
		{"member", "trainer", "done"},
	}
	for _, m := range texts {
		from, to := memberID, trainerID
		if m.from == "trainer" {
			from, to = trainerID, memberID
		}
		if _, err := svc.Send(context.Background(), from, to, m.text); err != nil {
			t.Fatalf("Send returned error: %v", err)
		}
	}
	// A third party's exchange must not leak into the conversation.
	if _, err := svc.Send(context.Background(), outsiderID, trainerID, "unrelated"); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	conversation, err := svc.Conversation(context.Background(), memberID, trainerID)
	if err != nil {
		t.Fatalf("Conversation returned error: %v", err)
	}
	if len(conversation) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(conversation))
	}
	for i, want := range []string{"how many sets today?", "five, keep the rests short", "done"} {
		if conversation[i].Text != want {
			t.Fatalf("message %d out of order: got %q, want %q", i, conversation[i].Text, want)
		}
	}
	if conversation[0].SenderName != "Member" || conversation[0].ReceiverName != "Coach" {
		t.Fatalf("expected names resolved, got sender=%q receiver=%q", conversation[0].SenderName, conversation[0].ReceiverName)
	}
	if conversation[1].SenderRole != domain.RoleTrainer {
		t.Fatalf("expected trainer role on reply, got %q", conversation[1].SenderRole)
	}
}

func TestConversation_DeletedCounterpartStillReadable(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	messages := newFakeMessageRepo()
	memberID := seedUser(users, &domain.User{
		Name: "Member", Email: "m@fitclub.test", PasswordHash: "x", Role: domain.RoleMember,
	})
	trainerID := seedUser(users, activeStaff("Coach", domain.RoleTrainer, domain.CategoryNormal))
	svc := newTestMessageService(messages, users)

	if _, err := svc.Send(context.Background(), trainerID, memberID, "see you monday"); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if err := users.Delete(context.Background(), trainerID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	conversation, err := svc.Conversation(context.Background(), memberID, trainerID)
	if err != nil {
		t.Fatalf("Conversation returned error: %v", err)
	}
	if len(conversation) != 1 {
		t.Fatalf("expected the message to survive the deletion, got %d", len(conversation))
	}
	if conversation[0].SenderName != "" {
		t.Fatalf("expected unresolved sender name for deleted user, got %q", conversation[0].SenderName)
	}
	if conversation[0].ReceiverName != "Member" {
		t.Fatalf("expected surviving party resolved, got %q", conversation[0].ReceiverName)
	}
}
