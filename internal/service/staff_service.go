package service

import (
	"context"
	"errors"
	"time"

	"fitclub/fitness-club/internal/domain"
	"fitclub/fitness-club/internal/repository"
	"fitclub/fitness-club/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidStaffRole = errors.New("invalid staff role")
)

// CredentialUpload is the pair a staff member needs to push their credential
// document straight to object storage: the key recorded on their account and
// a short-lived URL to PUT the file to.
type CredentialUpload struct {
	ObjectKey string `json:"objectKey"`
	UploadURL string `json:"uploadUrl"`
}

// --- Service Interface ---
type StaffService interface {
	// AssignedMembers returns the members whose assignment reference for the
	// caller's role points at the caller.
	AssignedMembers(ctx context.Context, staffID primitive.ObjectID, role domain.Role) ([]domain.User, error)

	// CredentialUploadURL issues a presigned PUT URL for a credential
	// document and the object key to record on the account.
	CredentialUploadURL(ctx context.Context, fileName, contentType string) (*CredentialUpload, error)
}

// staffService implements the StaffService interface.
type staffService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewStaffService creates a new instance of staffService.
func NewStaffService(userRepo repository.UserRepository, fileStorage storage.FileStorage) StaffService {
	return &staffService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// AssignedMembers lists the members currently assigned to this staff member.
func (s *staffService) AssignedMembers(ctx context.Context, staffID primitive.ObjectID, role domain.Role) ([]domain.User, error) {
	if !domain.IsStaffRole(role) {
		return nil, ErrInvalidStaffRole
	}

	members, err := s.userRepo.ListByAssignedStaff(ctx, role, staffID)
	if err != nil {
		return nil, err
	}
	stripHashes(members)
	return members, nil
}

// CredentialUploadURL issues a presigned upload slot for a credential file.
func (s *staffService) CredentialUploadURL(ctx context.Context, fileName, contentType string) (*CredentialUpload, error) {
	if fileName == "" || contentType == "" {
		return nil, errors.New("file name and content type are required")
	}

	objectKey := storage.CredentialObjectKey(fileName)
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, 15*time.Minute)
	if err != nil {
		return nil, err
	}

	return &CredentialUpload{
		ObjectKey: objectKey,
		UploadURL: uploadURL,
	}, nil
}
