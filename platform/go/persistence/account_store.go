package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountKind selects which credential table a store call operates on.
// Landlords and tenants share a record shape but live in separate tables.
type AccountKind struct {
	table    string
	idColumn string
}

var (
	Landlords = AccountKind{table: "landlords", idColumn: "landlord_id"}
	Tenants   = AccountKind{table: "tenants", idColumn: "tenant_id"}
)

// Account represents a row in the landlords or tenants table.
type Account struct {
	ID           uuid.UUID `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

var (
	// ErrAccountNotFound indicates a missing landlord or tenant record.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountConflict indicates a uniqueness violation (duplicated email).
	ErrAccountConflict = errors.New("account conflict")
)

// AccountStore exposes persistence helpers for the credential tables.
type AccountStore struct {
	pool *pgxpool.Pool
}

// NewAccountStore returns a store instance bound to the shared pool.
func NewAccountStore(pool *pgxpool.Pool) (*AccountStore, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}
	return &AccountStore{pool: pool}, nil
}

// CreateAccountParams captures the fields required to insert a new account.
type CreateAccountParams struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}

// CreateAccount inserts a new account and returns the persisted record.
func (s *AccountStore) CreateAccount(ctx context.Context, kind AccountKind, params CreateAccountParams) (Account, error) {
	if params.ID == uuid.Nil {
		return Account{}, errors.New("account id is required")
	}

	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (%s, first_name, last_name, email, password_hash)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING %s, first_name, last_name, email, password_hash, created_at, updated_at
    `, kind.table, kind.idColumn, kind.idColumn),
		params.ID,
		strings.TrimSpace(params.FirstName),
		strings.TrimSpace(params.LastName),
		strings.TrimSpace(params.Email),
		params.PasswordHash,
	)

	account, err := scanAccount(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Account{}, ErrAccountConflict
		}
		return Account{}, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

// GetAccount fetches an account by id.
func (s *AccountStore) GetAccount(ctx context.Context, kind AccountKind, id uuid.UUID) (Account, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        SELECT %s, first_name, last_name, email, password_hash, created_at, updated_at
        FROM %s
        WHERE %s = $1
    `, kind.idColumn, kind.table, kind.idColumn), id)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, fmt.Errorf("get account: %w", err)
	}

	return account, nil
}

// GetAccountByEmail fetches an account by its exact email.
func (s *AccountStore) GetAccountByEmail(ctx context.Context, kind AccountKind, email string) (Account, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        SELECT %s, first_name, last_name, email, password_hash, created_at, updated_at
        FROM %s
        WHERE email = $1
    `, kind.idColumn, kind.table), strings.TrimSpace(email))

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, fmt.Errorf("get account by email: %w", err)
	}

	return account, nil
}

// UpdateAccountProfileParams captures the profile fields replaced on update.
type UpdateAccountProfileParams struct {
	FirstName string
	LastName  string
	Email     string
}

// UpdateAccountProfile replaces the profile fields of an existing account.
func (s *AccountStore) UpdateAccountProfile(ctx context.Context, kind AccountKind, id uuid.UUID, params UpdateAccountProfileParams) (Account, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        UPDATE %s
        SET first_name = $2, last_name = $3, email = $4, updated_at = now()
        WHERE %s = $1
        RETURNING %s, first_name, last_name, email, password_hash, created_at, updated_at
    `, kind.table, kind.idColumn, kind.idColumn),
		id,
		strings.TrimSpace(params.FirstName),
		strings.TrimSpace(params.LastName),
		strings.TrimSpace(params.Email),
	)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		if isUniqueViolation(err) {
			return Account{}, ErrAccountConflict
		}
		return Account{}, fmt.Errorf("update account profile: %w", err)
	}

	return account, nil
}

// DeleteAccount hard-deletes an account. Owned properties, requests and
// tenancies go with it via ON DELETE CASCADE.
func (s *AccountStore) DeleteAccount(ctx context.Context, kind AccountKind, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`
        DELETE FROM %s WHERE %s = $1
    `, kind.table, kind.idColumn), id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (Account, error) {
	var account Account
	err := row.Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	return account, err
}
