package api

import (
	"errors"
	"net/http"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminResponse excludes the password hash.
type AdminResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	Admin AdminResponse `json:"admin"`
}

// --- Handler Methods ---

// Login godoc
// @Summary Log in an admin
// @Description Authenticates an admin and returns a JWT token.
// @Tags Admin
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} Response "Login successful"
// @Failure 400 {object} Response "Missing username or password"
// @Failure 401 {object} Response "Invalid credentials"
// @Failure 500 {object} Response "Internal Server Error"
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Please provide username and password")
		return
	}

	token, admin, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Same message for unknown username and wrong password.
			abortWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An error occurred during login")
		}
		return
	}

	respondData(c, http.StatusOK, LoginResponse{
		Token: token,
		Admin: AdminResponse{
			ID:       admin.ID.Hex(),
			Username: admin.Username,
			Email:    admin.Email,
			Role:     admin.Role,
		},
	})
}
