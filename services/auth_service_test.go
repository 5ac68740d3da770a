package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sinar-terang/models"
	"sinar-terang/utils"
)

const testSecret = "test-secret"

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(&memUserStore{}, testSecret, time.Hour, nil)

	user, err := svc.CreateUser(ctx, models.CreateUserRequest{Username: "sari", Password: "rahasia", FullName: "Sari"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleKasir, user.Role)
	assert.NotEqual(t, "rahasia", user.Password)

	resp, err := svc.Login(ctx, models.LoginRequest{Username: "sari", Password: "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := utils.ValidateToken(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleKasir, claims.Role)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "sari", Password: "salah!!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "nobody", Password: "rahasia"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceCreateUserDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(&memUserStore{}, testSecret, time.Hour, nil)

	req := models.CreateUserRequest{Username: "budi", Password: "123456", FullName: "Budi", Role: models.RoleAdmin}
	_, err := svc.CreateUser(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, req)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	req.Username = "budi2"
	req.Password = "123"
	_, err = svc.CreateUser(ctx, req)
	assert.ErrorIs(t, err, utils.ErrPasswordTooShort)
}

func TestAuthServiceProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(&memUserStore{}, testSecret, time.Hour, nil)
	user, err := svc.CreateUser(ctx, models.CreateUserRequest{Username: "sari", Password: "rahasia", FullName: "Sari"})
	require.NoError(t, err)

	got, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sari", got.FullName)

	_, err = svc.Profile(ctx, 77)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthServiceEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	store := &memUserStore{}
	svc := NewAuthService(store, testSecret, time.Hour, nil)

	require.NoError(t, svc.EnsureAdmin(ctx, "", ""))
	assert.Empty(t, store.users)

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin123"))
	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin123"))

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
}
