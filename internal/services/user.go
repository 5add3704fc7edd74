package services

import (
	"context"
	"errors"

	"github.com/jobstack-io/apiserver/internal/store"
	"github.com/jobstack-io/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// UserService handles registration and credential verification.
// Passwords are stored only as bcrypt hashes.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new account. Every field is mandatory. A taken
// email surfaces as store.ErrDuplicate; concurrent registrations with
// the same email are resolved by the unique index, so exactly one wins.
func (s *UserService) Register(ctx context.Context, name, email, password, mobile string) (types.User, error) {
	if name == "" || email == "" || password == "" || mobile == "" {
		return types.User{}, ErrValidation
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	return s.repo.Create(ctx, types.User{
		Name:         name,
		Email:        email,
		Mobile:       mobile,
		PasswordHash: string(hashed),
	})
}

// Authenticate verifies an email/password pair and returns the matching
// user. A missing user and a bad password both return
// ErrWrongCredentials; bcrypt's comparison is constant-time.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrWrongCredentials
		}
		return types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrWrongCredentials
	}

	return user, nil
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}
