package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAuthService(db, testutil.Config())
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Username: " alice ", Email: "Alice@Example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, []string{models.RoleViewer}, resp.User.Roles)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.NotContains(t, claims, "roles")

	byEmail, err := svc.Login(ctx, &dto.LoginRequest{Email: "ALICE@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, byEmail.User.ID)

	byName, err := svc.Login(ctx, &dto.LoginRequest{Login: "alice", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, byName.User.ID)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "wrong-pass"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestRegisterValidationAndConflicts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAuthService(db, testutil.Config())
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Username: "al", Email: "a@b.co", Password: "password1"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Email: "a@b.co", Password: "short"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Email: "a@b.co", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Username: "alice2", Email: "A@B.CO", Password: "password1"})
	assert.True(t, errors.Is(err, ErrEmailTaken))

	_, err = svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Email: "other@b.co", Password: "password1"})
	assert.True(t, errors.Is(err, ErrUsernameTaken))
}

func TestRegisterBootstrapsAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := testutil.Config()
	cfg.AdminEmails = "owner@example.com, other@example.com"
	svc := NewAuthService(db, cfg)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "owner", Email: "Owner@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Contains(t, resp.User.Roles, models.RoleAdmin)
}

func TestRefreshRotatesToken(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAuthService(db, testutil.Config())
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "password1"})
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, next.RefreshToken)

	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.True(t, errors.Is(err, ErrInvalidToken))

	require.NoError(t, svc.Logout(ctx, &dto.LogoutRequest{RefreshToken: next.RefreshToken}))
	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: next.RefreshToken})
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestInactiveUserCannotLogin(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAuthService(db, testutil.Config())
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Username: "carol", Email: "carol@example.com", Password: "password1"})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", resp.User.ID).Update("is_active", false).Error)

	_, err = svc.Login(ctx, &dto.LoginRequest{Login: "carol", Password: "password1"})
	assert.True(t, errors.Is(err, ErrAccountInactive))
	assert.Equal(t, 401, apperr.Status(err))
}
