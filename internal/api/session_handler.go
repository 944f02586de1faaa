package api

import (
	"errors"
	"net/http"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionHandler holds the session service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs ---

type SessionRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Type        domain.SessionType     `json:"type" binding:"required"`
	Description string                 `json:"description"`
	TrainerID   string                 `json:"trainerId" binding:"required"`
	Capacity    int                    `json:"capacity" binding:"required"`
	Schedule    domain.SessionSchedule `json:"schedule"`
	Level       string                 `json:"level"`
	Price       domain.SessionPrice    `json:"price"`
	Location    domain.SessionLocation `json:"location"`
	Equipment   []domain.Equipment     `json:"equipment"`
	Status      domain.SessionStatus   `json:"status"`
}

func (r SessionRequest) toInput() (service.SessionInput, error) {
	trainerID, err := primitive.ObjectIDFromHex(r.TrainerID)
	if err != nil {
		return service.SessionInput{}, err
	}
	return service.SessionInput{
		Name:        r.Name,
		Type:        r.Type,
		Description: r.Description,
		TrainerID:   trainerID,
		Capacity:    r.Capacity,
		Schedule:    r.Schedule,
		Level:       r.Level,
		Price:       r.Price,
		Location:    r.Location,
		Equipment:   r.Equipment,
		Status:      r.Status,
	}, nil
}

func mapSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrTrainerNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionFull),
		errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, service.ErrNotEnrolled):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, genericErrorMessage)
	}
}

// memberIDFromToken resolves the acting member from the verified principal.
func memberIDFromToken(c *gin.Context) (primitive.ObjectID, bool) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify member from token")
		return primitive.NilObjectID, false
	}
	memberID, err := primitive.ObjectIDFromHex(principal.AdminID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid member ID in token")
		return primitive.NilObjectID, false
	}
	return memberID, true
}

// --- Handler Methods ---

// Create godoc
// @Summary Create a class session
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body SessionRequest true "Session details"
// @Success 201 {object} Response "Session created"
// @Failure 400 {object} Response "Validation failure"
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Session name, type, trainer and capacity are required")
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	detail, err := h.sessionService.CreateSession(c.Request.Context(), input)
	if err != nil {
		mapSessionError(c, err)
		return
	}
	respondData(c, http.StatusCreated, detail)
}

// List godoc
// @Summary List all class sessions
// @Tags Sessions
// @Produce json
// @Success 200 {object} Response "Sessions with count"
// @Router /sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.sessionService.ListSessions(c.Request.Context())
	if err != nil {
		mapSessionError(c, err)
		return
	}
	if sessions == nil {
		sessions = []service.SessionDetail{}
	}
	respondList(c, http.StatusOK, len(sessions), sessions)
}

// Get godoc
// @Summary Get a single class session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response "Session"
// @Failure 404 {object} Response "Not found"
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID")
		return
	}

	detail, err := h.sessionService.GetSession(c.Request.Context(), id)
	if err != nil {
		mapSessionError(c, err)
		return
	}
	respondData(c, http.StatusOK, detail)
}

// Update godoc
// @Summary Update a class session
// @Description Enrollment is untouched; only the descriptive fields change.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param session body SessionRequest true "Session details"
// @Success 200 {object} Response "Updated session"
// @Failure 404 {object} Response "Not found"
// @Router /sessions/{id} [put]
func (h *SessionHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID")
		return
	}

	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Session name, type, trainer and capacity are required")
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	detail, err := h.sessionService.UpdateSession(c.Request.Context(), id, input)
	if err != nil {
		mapSessionError(c, err)
		return
	}
	respondData(c, http.StatusOK, detail)
}

// Delete godoc
// @Summary Delete a class session
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} Response "Deleted"
// @Failure 404 {object} Response "Not found"
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID")
		return
	}

	if err := h.sessionService.DeleteSession(c.Request.Context(), id); err != nil {
		mapSessionError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{})
}

// Enroll godoc
// @Summary Enroll the authenticated member in a class session
// @Description Fails with 409 when the class is full or the member is
// @Description already enrolled.
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} Response "Session after enrollment"
// @Failure 404 {object} Response "Not found"
// @Failure 409 {object} Response "Full or already enrolled"
// @Router /sessions/{id}/enroll [post]
func (h *SessionHandler) Enroll(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID")
		return
	}
	memberID, ok := memberIDFromToken(c)
	if !ok {
		return
	}

	detail, err := h.sessionService.Enroll(c.Request.Context(), id, memberID)
	if err != nil {
		mapSessionError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Enrolled successfully", detail)
}

// Unenroll godoc
// @Summary Remove the authenticated member from a class session
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} Response "Session after removal"
// @Failure 404 {object} Response "Not found"
// @Failure 409 {object} Response "Not enrolled"
// @Router /sessions/{id}/unenroll [post]
func (h *SessionHandler) Unenroll(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID")
		return
	}
	memberID, ok := memberIDFromToken(c)
	if !ok {
		return
	}

	detail, err := h.sessionService.Unenroll(c.Request.Context(), id, memberID)
	if err != nil {
		mapSessionError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Unenrolled successfully", detail)
}
