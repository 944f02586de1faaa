package service_test

import (
	"context"
	"testing"
	"time"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/service"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func seedAdmin(t *testing.T, repo *fakeAdminRepo, username, password string) *domain.Admin {
	t.Helper()
	hash, err := service.HashPassword(password)
	require.NoError(t, err)
	admin := &domain.Admin{
		Username:     username,
		Email:        username + "@fitzone.test",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	_, err = repo.Create(context.Background(), admin)
	require.NoError(t, err)
	return admin
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newFakeAdminRepo()
	admin := seedAdmin(t, repo, "boss", "correct horse")
	svc := service.NewAuthService(repo, testJWTSecret, time.Hour)

	token, got, err := svc.Login(context.Background(), "boss", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, admin.ID, got.ID)
	require.Equal(t, "boss", got.Username)
	require.Empty(t, got.PasswordHash)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newFakeAdminRepo()
	seedAdmin(t, repo, "boss", "correct horse")
	svc := service.NewAuthService(repo, testJWTSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "boss", "wrong")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := newFakeAdminRepo()
	seedAdmin(t, repo, "boss", "correct horse")
	svc := service.NewAuthService(repo, testJWTSecret, time.Hour)

	// An unknown username must fail identically to a wrong password.
	_, _, unknownErr := svc.Login(context.Background(), "nobody", "correct horse")
	_, _, wrongErr := svc.Login(context.Background(), "boss", "wrong")
	require.ErrorIs(t, unknownErr, service.ErrInvalidCredentials)
	require.Equal(t, wrongErr, unknownErr)
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := service.NewAuthService(repo, testJWTSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "", "")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_TokenCarriesIdentityClaims(t *testing.T) {
	repo := newFakeAdminRepo()
	admin := seedAdmin(t, repo, "boss", "correct horse")
	svc := service.NewAuthService(repo, testJWTSecret, time.Hour)

	tokenString, _, err := svc.Login(context.Background(), "boss", "correct horse")
	require.NoError(t, err)

	claims := &service.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	require.Equal(t, admin.ID.Hex(), claims.AdminID)
	require.Equal(t, "boss", claims.Username)
	require.Equal(t, domain.RoleAdmin, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestNewAuthService_EmptySecretPanics(t *testing.T) {
	require.Panics(t, func() {
		service.NewAuthService(newFakeAdminRepo(), "", time.Hour)
	})
}
