package service

import (
	"context"
	"errors"
	"time"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password. Keeping the two cases indistinguishable prevents
	// username enumeration through the login endpoint.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenGeneration    = errors.New("failed to generate authentication token")
	ErrHashingFailed      = errors.New("failed to hash password")
)

// Principal is the authenticated identity attached to a request after token
// verification.
type Principal struct {
	AdminID  string
	Username string
	Role     domain.Role
}

// AuthService verifies admin credentials and issues session tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, admin *domain.Admin, err error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	adminRepo     repository.AdminRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(adminRepo repository.AdminRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		adminRepo:     adminRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Login authenticates an admin by username and password and returns a signed
// token on success. Tokens are stateless; there is no server-side session
// table to invalidate.
func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(admin)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	admin.PasswordHash = ""
	return token, admin, nil
}

// --- JWT Helper ---

// AuthClaims defines the structure of the JWT payload. The middleware in the
// api package parses tokens back into the same shape.
type AuthClaims struct {
	AdminID  string      `json:"adminId"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new signed token binding the admin's identity.
func (s *authService) generateJWT(admin *domain.Admin) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		AdminID:  admin.ID.Hex(),
		Username: admin.Username,
		Role:     admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "fitzone",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}

// HashPassword produces a bcrypt hash for storage. Shared with the
// seed-admin CLI so provisioning and login agree on the algorithm.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(hash), nil
}
