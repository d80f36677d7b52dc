package service

import (
	"context"
	"errors"
	"time"

	"fitclub/fitness-club/internal/domain"
	"fitclub/fitness-club/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidRegistration  = errors.New("invalid registration data")
	ErrNotStaff             = errors.New("user is not a staff member")
)

// RegisterInput is the role-tagged registration payload. The member and
// staff sections are mutually exclusive; Register validates the section
// required by Role and ignores the other.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Age      int

	// Member section
	Height            float64
	Weight            float64
	Goal              string
	MedicalConditions string

	// Staff section
	Phone               string
	Specialization      string
	Experience          int
	Bio                 string
	CertificationNumber string
	CredentialFile      string // S3 object key of the uploaded credential document
}

// ResubmitInput carries the staff profile fields a rejected applicant may
// revise. Empty fields keep their previous values.
type ResubmitInput struct {
	Phone               string
	Specialization      string
	Experience          int
	Bio                 string
	CertificationNumber string
	CredentialFile      string
}

// --- Service Interface ---
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (token string, user *domain.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	Profile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	Resubmit(ctx context.Context, userID primitive.ObjectID, input ResubmitInput) (token string, user *domain.User, err error)
}

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	matcher       *StaffMatcher
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, matcher *StaffMatcher, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		matcher:       matcher,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration. Staff accounts always start out
// pending regardless of what the caller supplies; members with weight and
// height present get BMI, category, and staff assignments computed before
// the document is persisted.
func (s *authService) Register(ctx context.Context, input RegisterInput) (string, *domain.User, error) {
	if err := validateRegistration(input); err != nil {
		return "", nil, err
	}

	// Check if user already exists
	_, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return "", nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		Age:          input.Age,
	}

	switch {
	case input.Role == domain.RoleMember:
		user.Height = input.Height
		user.Weight = input.Weight
		user.Goal = input.Goal
		user.MedicalConditions = input.MedicalConditions
		if err := s.matcher.Recompute(ctx, user); err != nil {
			return "", nil, err
		}
	case domain.IsStaffRole(input.Role):
		user.Phone = input.Phone
		user.Specialization = input.Specialization
		user.Experience = input.Experience
		user.Bio = input.Bio
		user.CertificationNumber = input.CertificationNumber
		user.CredentialFile = input.CredentialFile
		user.Status = domain.StatusPending // never caller-controlled
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique email index closes the race between the existence check
		// above and this insert.
		if errors.Is(err, repository.ErrConflict) {
			return "", nil, ErrUserAlreadyExists
		}
		return "", nil, err
	}
	user.ID = userID

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

func validateRegistration(input RegisterInput) error {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Role == "" {
		return ErrInvalidRegistration
	}
	switch {
	case input.Role == domain.RoleMember:
		// Weight/height are optional at registration; members may log them
		// later through progress entries. Negative values are rejected.
		if input.Height < 0 || input.Weight < 0 {
			return ErrInvalidRegistration
		}
	case domain.IsStaffRole(input.Role):
		if input.Specialization == "" || input.CertificationNumber == "" {
			return ErrInvalidRegistration
		}
	case input.Role == domain.RoleAdmin:
		// Admin accounts are seeded, not self-registered.
		return ErrInvalidRegistration
	default:
		return ErrInvalidRegistration
	}
	return nil
}

// Login handles user authentication and JWT generation. Pending and rejected
// staff may still log in so they can see their application status.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrAuthenticationFailed
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// Profile returns a fresh snapshot of the user's own record.
func (s *authService) Profile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Resubmit lets a rejected (or pending) staff member revise their application.
// The status resets to pending, the previous rejection reason is cleared, and
// a fresh token is issued.
func (s *authService) Resubmit(ctx context.Context, userID primitive.ObjectID, input ResubmitInput) (string, *domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}
	if !user.IsStaff() {
		return "", nil, ErrNotStaff
	}

	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Specialization != "" {
		user.Specialization = input.Specialization
	}
	if input.Experience > 0 {
		user.Experience = input.Experience
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.CertificationNumber != "" {
		user.CertificationNumber = input.CertificationNumber
	}
	if input.CredentialFile != "" {
		user.CredentialFile = input.CredentialFile
	}

	user.Status = domain.StatusPending
	user.RejectionReason = ""

	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fitness-club",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}
