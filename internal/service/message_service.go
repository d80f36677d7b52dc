package service

import (
	"context"
	"errors"

	"fitclub/fitness-club/internal/domain"
	"fitclub/fitness-club/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrEmptyMessage = errors.New("message text cannot be empty")
)

// MessageView is a message with its sender and receiver resolved to
// name/role at read time for display.
type MessageView struct {
	domain.Message
	SenderName   string      `json:"senderName,omitempty"`
	SenderRole   domain.Role `json:"senderRole,omitempty"`
	ReceiverName string      `json:"receiverName,omitempty"`
	ReceiverRole domain.Role `json:"receiverRole,omitempty"`
}

// --- Service Interface ---
type MessageService interface {
	// Send stores a message from the sender to the receiver. There is no
	// check that the receiver exists or that the two users are assigned to
	// each other; any authenticated user may message any identity.
	Send(ctx context.Context, senderID, receiverID primitive.ObjectID, text string) (*MessageView, error)

	// Conversation returns every message between the caller and the
	// counterpart, oldest first.
	Conversation(ctx context.Context, userID, counterpartID primitive.ObjectID) ([]MessageView, error)
}

// messageService implements the MessageService interface.
type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewMessageService creates a new instance of messageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// Send stores a new message.
func (s *messageService) Send(ctx context.Context, senderID, receiverID primitive.ObjectID, text string) (*MessageView, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}

	message := &domain.Message{
		Sender:   senderID,
		Receiver: receiverID,
		Text:     text,
	}

	messageID, err := s.messageRepo.Create(ctx, message)
	if err != nil {
		return nil, err
	}
	message.ID = messageID

	view := MessageView{Message: *message}
	if sender, err := s.userRepo.GetByID(ctx, senderID); err == nil {
		view.SenderName = sender.Name
		view.SenderRole = sender.Role
	}
	return &view, nil
}

// Conversation retrieves the two-party history, oldest first, with names
// resolved for display. A counterpart deleted since the exchange still shows
// the messages, just without a resolved name.
func (s *messageService) Conversation(ctx context.Context, userID, counterpartID primitive.ObjectID) ([]MessageView, error) {
	messages, err := s.messageRepo.Conversation(ctx, userID, counterpartID)
	if err != nil {
		return nil, err
	}

	names := map[primitive.ObjectID]*domain.User{}
	for _, id := range []primitive.ObjectID{userID, counterpartID} {
		if u, err := s.userRepo.GetByID(ctx, id); err == nil {
			names[id] = u
		}
	}

	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		view := MessageView{Message: m}
		if u := names[m.Sender]; u != nil {
			view.SenderName = u.Name
			view.SenderRole = u.Role
		}
		if u := names[m.Receiver]; u != nil {
			view.ReceiverName = u.Name
			view.ReceiverRole = u.Role
		}
		views = append(views, view)
	}
	return views, nil
}
