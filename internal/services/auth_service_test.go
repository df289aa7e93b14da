package services

import (
	"fmt"
	"testing"
	"time"

	"payroll_backend/internal/models"
	"payroll_backend/internal/repositories"
	"payroll_backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthRepo struct {
	usersByEmail map[string]*models.User
	usersByID    map[string]*models.User
	createErr    error
	created      []*models.User
	nextID       int
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		usersByEmail: map[string]*models.User{},
		usersByID:    map[string]*models.User{},
	}
}

func (f *fakeAuthRepo) CreateUser(_ repositories.SQLExecutor, user *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	stored := *user
	stored.ID = fmt.Sprintf("user-%d", f.nextID)
	f.created = append(f.created, &stored)
	f.usersByID[stored.ID] = &stored
	if stored.Email != nil {
		f.usersByEmail[*stored.Email] = &stored
	}
	result := stored
	return &result, nil
}

func (f *fakeAuthRepo) FindUserByEmail(email string) (*models.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	result := *user
	return &result, nil
}

func (f *fakeAuthRepo) FindUserByID(userID string) (*models.User, error) {
	user, ok := f.usersByID[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	result := *user
	return &result, nil
}

const testJWTSecret = "test-secret"

func newAuthFixture(repo *fakeAuthRepo, allowAnonymous bool) AuthService {
	return NewAuthService(repo, nil, testJWTSecret, time.Hour, allowAnonymous)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthFixture(newFakeAuthRepo(), true)

	_, err := svc.Register(RegisterRequest{Email: "not-an-email", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(RegisterRequest{Email: "a@b.com", Password: "12345"})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterSuccess(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newAuthFixture(repo, true)

	resp, err := svc.Register(RegisterRequest{Email: "  Owner@Example.COM ", Password: "secret1", DisplayName: "Owner"})
	require.NoError(t, err)

	require.NotNil(t, resp.User.Email)
	assert.Equal(t, "owner@example.com", *resp.User.Email)
	assert.Empty(t, resp.User.PasswordHash, "response must never carry the hash")
	assert.False(t, resp.User.IsAnonymous)

	claims, err := utils.ValidateToken([]byte(testJWTSecret), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.False(t, claims.IsAnonymous)

	// The stored record keeps a bcrypt hash, not the raw password.
	require.Len(t, repo.created, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created[0].PasswordHash), []byte("secret1")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeAuthRepo()
	repo.createErr = repositories.ErrDuplicateKey
	svc := newAuthFixture(repo, true)

	_, err := svc.Register(RegisterRequest{Email: "a@b.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newAuthFixture(repo, true)

	_, err := svc.Register(RegisterRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	resp, err := svc.Login(LoginRequest{Email: "A@B.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	// A wrong password and an unknown account are indistinguishable.
	_, err = svc.Login(LoginRequest{Email: "a@b.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginRequest{Email: "nobody@b.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGuestLogin(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newAuthFixture(repo, true)

	resp, err := svc.GuestLogin()
	require.NoError(t, err)
	assert.True(t, resp.User.IsAnonymous)
	assert.Nil(t, resp.User.Email)

	claims, err := utils.ValidateToken([]byte(testJWTSecret), resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAnonymous)

	// Each guest gets a fresh owner id and therefore an empty dataset.
	second, err := svc.GuestLogin()
	require.NoError(t, err)
	assert.NotEqual(t, resp.User.ID, second.User.ID)
}

func TestGuestLoginDisabled(t *testing.T) {
	svc := newAuthFixture(newFakeAuthRepo(), false)

	_, err := svc.GuestLogin()
	assert.ErrorIs(t, err, ErrOperationNotAllowed)
}

func TestGetUserProfile(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newAuthFixture(repo, true)

	resp, err := svc.GuestLogin()
	require.NoError(t, err)

	user, err := svc.GetUserProfile(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.GetUserProfile("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
