package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lettify/lettify/domains/accounts/be/repo"
	platformauth "github.com/lettify/lettify/platform/go/auth"
)

func newTestService(t *testing.T) (Service, *repo.MemoryRepository) {
	t.Helper()

	issuer, err := platformauth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	memory := repo.NewMemoryRepository()
	return New(memory, issuer, platformauth.NewPasswordHasher(bcrypt.MinCost)), memory
}

func TestSignUpValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.SignUp(context.Background(), platformauth.RoleLandlord, SignUpInput{})
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Contains(t, validationErr.Fields, "first_name")
	require.Contains(t, validationErr.Fields, "last_name")
	require.Contains(t, validationErr.Fields, "email")
	require.Contains(t, validationErr.Fields, "password")
}

func TestSignUpShortPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.SignUp(context.Background(), platformauth.RoleTenant, SignUpInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "short",
	})

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Contains(t, validationErr.Fields, "password")
}

func TestSignUpIssuesVerifiableToken(t *testing.T) {
	t.Parallel()

	issuer, err := platformauth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	require.NoError(t, err)
	svc := New(repo.NewMemoryRepository(), issuer, platformauth.NewPasswordHasher(bcrypt.MinCost))

	result, err := svc.SignUp(context.Background(), platformauth.RoleLandlord, SignUpInput{
		FirstName: " Ada ",
		LastName:  " Lovelace ",
		Email:     " ada@example.com ",
		Password:  "correct horse",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, result.AccountID)

	actor, err := issuer.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, result.AccountID, actor.ID)
	require.Equal(t, platformauth.RoleLandlord, actor.Role)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	input := SignUpInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct horse",
	}

	_, err := svc.SignUp(context.Background(), platformauth.RoleLandlord, input)
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), platformauth.RoleLandlord, input)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUpSameEmailDifferentRole(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	input := SignUpInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct horse",
	}

	_, err := svc.SignUp(context.Background(), platformauth.RoleLandlord, input)
	require.NoError(t, err)

	// Landlords and tenants live in separate tables; the email is free per role.
	_, err = svc.SignUp(context.Background(), platformauth.RoleTenant, input)
	require.NoError(t, err)
}

func TestLogInUniformFailure(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.SignUp(context.Background(), platformauth.RoleTenant, SignUpInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct horse",
	})
	require.NoError(t, err)

	// Wrong password and unknown email both yield the same outcome.
	_, err = svc.LogIn(context.Background(), platformauth.RoleTenant, "ada@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.LogIn(context.Background(), platformauth.RoleTenant, "nobody@example.com", "correct horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogInSuccess(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	signedUp, err := svc.SignUp(context.Background(), platformauth.RoleTenant, SignUpInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct horse",
	})
	require.NoError(t, err)

	loggedIn, err := svc.LogIn(context.Background(), platformauth.RoleTenant, "ada@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, signedUp.AccountID, loggedIn.AccountID)
	require.NotEmpty(t, loggedIn.Token)
}

func TestUpdateProfileEmailConflictExcludesSelf(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.SignUp(ctx, platformauth.RoleLandlord, SignUpInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct horse",
	})
	require.NoError(t, err)

	second, err := svc.SignUp(ctx, platformauth.RoleLandlord, SignUpInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Password:  "correct horse",
	})
	require.NoError(t, err)

	// Keeping your own email is not a conflict.
	updated, err := svc.UpdateProfile(ctx, platformauth.RoleLandlord, first.AccountID, UpdateProfileInput{
		FirstName: "Ada",
		LastName:  "King",
		Email:     "ada@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "King", updated.LastName)

	// Taking someone else's is.
	_, err = svc.UpdateProfile(ctx, platformauth.RoleLandlord, second.AccountID, UpdateProfileInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "ada@example.com",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestDeleteProfile(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.SignUp(ctx, platformauth.RoleTenant, SignUpInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProfile(ctx, platformauth.RoleTenant, result.AccountID))

	_, err = svc.Profile(ctx, platformauth.RoleTenant, result.AccountID)
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteProfile(ctx, platformauth.RoleTenant, result.AccountID)
	require.ErrorIs(t, err, ErrNotFound)
}
