package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lettify/lettify/domains/accounts/be/repo"
	platformauth "github.com/lettify/lettify/platform/go/auth"
	"github.com/lettify/lettify/platform/go/persistence"
)

// FieldErrors maps request fields to validation issues.
type FieldErrors map[string][]string

// ValidationError is returned when the input payload is invalid.
type ValidationError struct {
	Fields FieldErrors
}

func (v *ValidationError) Error() string {
	return "validation error"
}

// Domain sentinel errors.
var (
	ErrNotFound   = errors.New("account not found")
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so the
	// response never leaks which one occurred.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Account represents the domain view of a landlord or tenant record. The
// password hash never leaves the repository layer through this type.
type Account struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SignUpInput represents the payload required to register a new account.
type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UpdateProfileInput replaces the mutable profile fields.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Email     string
}

// AuthResult carries the identity and session claim issued on signup/login.
type AuthResult struct {
	AccountID uuid.UUID
	Token     string
}

// Service defines the business operations for the accounts domain.
type Service interface {
	SignUp(ctx context.Context, role platformauth.Role, input SignUpInput) (AuthResult, error)
	LogIn(ctx context.Context, role platformauth.Role, email, password string) (AuthResult, error)
	Profile(ctx context.Context, role platformauth.Role, id uuid.UUID) (Account, error)
	UpdateProfile(ctx context.Context, role platformauth.Role, id uuid.UUID, input UpdateProfileInput) (Account, error)
	DeleteProfile(ctx context.Context, role platformauth.Role, id uuid.UUID) error
}

type service struct {
	repo      repo.Repository
	tokens    *platformauth.TokenIssuer
	passwords *platformauth.PasswordHasher
}

// New constructs an accounts Service backed by the provided repository.
func New(r repo.Repository, tokens *platformauth.TokenIssuer, passwords *platformauth.PasswordHasher) Service {
	if r == nil {
		panic("accounts repository is required")
	}
	if tokens == nil {
		panic("token issuer is required")
	}
	if passwords == nil {
		panic("password hasher is required")
	}
	return &service{repo: r, tokens: tokens, passwords: passwords}
}

func (s *service) SignUp(ctx context.Context, role platformauth.Role, input SignUpInput) (AuthResult, error) {
	fieldErrors := FieldErrors{}

	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" {
		fieldErrors.add("first_name", "first_name is required")
	}
	lastName := strings.TrimSpace(input.LastName)
	if lastName == "" {
		fieldErrors.add("last_name", "last_name is required")
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		fieldErrors.add("email", "email is required")
	} else if !strings.Contains(email, "@") {
		fieldErrors.add("email", "email must contain '@'")
	}

	if input.Password == "" {
		fieldErrors.add("password", "password is required")
	} else if len(input.Password) < 8 {
		fieldErrors.add("password", "password must be at least 8 characters")
	}

	if len(fieldErrors) > 0 {
		return AuthResult{}, &ValidationError{Fields: fieldErrors}
	}

	hash, err := s.passwords.Hash(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	record, err := s.repo.Create(ctx, role, persistence.CreateAccountParams{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return AuthResult{}, mapPersistenceError(err)
	}

	token, err := s.tokens.Issue(record.ID, role)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{AccountID: record.ID, Token: token}, nil
}

func (s *service) LogIn(ctx context.Context, role platformauth.Role, email, password string) (AuthResult, error) {
	record, err := s.repo.GetByEmail(ctx, role, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, persistence.ErrAccountNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if !s.passwords.Compare(record.PasswordHash, password) {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(record.ID, role)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{AccountID: record.ID, Token: token}, nil
}

func (s *service) Profile(ctx context.Context, role platformauth.Role, id uuid.UUID) (Account, error) {
	if id == uuid.Nil {
		return Account{}, ErrNotFound
	}

	record, err := s.repo.Get(ctx, role, id)
	if err != nil {
		return Account{}, mapPersistenceError(err)
	}

	return mapAccount(record), nil
}

func (s *service) UpdateProfile(ctx context.Context, role platformauth.Role, id uuid.UUID, input UpdateProfileInput) (Account, error) {
	if id == uuid.Nil {
		return Account{}, ErrNotFound
	}

	fieldErrors := FieldErrors{}

	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" {
		fieldErrors.add("first_name", "first_name is required")
	}
	lastName := strings.TrimSpace(input.LastName)
	if lastName == "" {
		fieldErrors.add("last_name", "last_name is required")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		fieldErrors.add("email", "email is required")
	} else if !strings.Contains(email, "@") {
		fieldErrors.add("email", "email must contain '@'")
	}

	if len(fieldErrors) > 0 {
		return Account{}, &ValidationError{Fields: fieldErrors}
	}

	record, err := s.repo.UpdateProfile(ctx, role, id, persistence.UpdateAccountProfileParams{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	})
	if err != nil {
		return Account{}, mapPersistenceError(err)
	}

	return mapAccount(record), nil
}

func (s *service) DeleteProfile(ctx context.Context, role platformauth.Role, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, role, id); err != nil {
		return mapPersistenceError(err)
	}

	return nil
}

func mapAccount(record persistence.Account) Account {
	return Account{
		ID:        record.ID,
		FirstName: record.FirstName,
		LastName:  record.LastName,
		Email:     record.Email,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func mapPersistenceError(err error) error {
	switch {
	case errors.Is(err, persistence.ErrAccountNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrAccountConflict):
		return ErrEmailTaken
	default:
		return err
	}
}

func (f FieldErrors) add(field, message string) {
	if f == nil {
		return
	}
	f[field] = append(f[field], message)
}
