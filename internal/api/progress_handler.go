package api

import (
	"errors"
	"net/http"
	"time"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressHandler holds the progress service dependency.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// --- DTOs ---

type ProgressRequest struct {
	Measurements []domain.Measurement  `json:"measurements"`
	Workouts     []domain.WorkoutLog   `json:"workouts"`
	Nutrition    []domain.NutritionLog `json:"nutrition"`
	Goals        []domain.Goal         `json:"goals"`
}

func (r ProgressRequest) toInput() service.ProgressInput {
	return service.ProgressInput{
		Measurements: r.Measurements,
		Workouts:     r.Workouts,
		Nutrition:    r.Nutrition,
		Goals:        r.Goals,
	}
}

func mapProgressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProgressNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProgressForbidden):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, genericErrorMessage)
	}
}

// ownerIDFromToken resolves the acting owner from the verified principal.
func ownerIDFromToken(c *gin.Context) (primitive.ObjectID, bool) {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return primitive.NilObjectID, false
	}
	ownerID, err := primitive.ObjectIDFromHex(principal.AdminID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID in token")
		return primitive.NilObjectID, false
	}
	return ownerID, true
}

// --- Handler Methods ---

// Create godoc
// @Summary Create a progress entry
// @Description The owner is taken from the token, never from the payload.
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body ProgressRequest true "Progress logs"
// @Success 201 {object} Response "Entry created"
// @Router /progress [post]
func (h *ProgressHandler) Create(c *gin.Context) {
	ownerID, ok := ownerIDFromToken(c)
	if !ok {
		return
	}

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid progress payload")
		return
	}

	entry, err := h.progressService.CreateEntry(c.Request.Context(), ownerID, req.toInput())
	if err != nil {
		mapProgressError(c, err)
		return
	}
	respondData(c, http.StatusCreated, entry)
}

// List godoc
// @Summary List the authenticated user's progress entries
// @Description Newest first.
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "Entries with count"
// @Router /progress [get]
func (h *ProgressHandler) List(c *gin.Context) {
	ownerID, ok := ownerIDFromToken(c)
	if !ok {
		return
	}

	entries, err := h.progressService.ListHistory(c.Request.Context(), ownerID)
	if err != nil {
		mapProgressError(c, err)
		return
	}
	if entries == nil {
		entries = []domain.ProgressEntry{}
	}
	respondList(c, http.StatusOK, len(entries), entries)
}

// Stats godoc
// @Summary Progress statistics over a date range
// @Description Weight change, workout totals and nutrition averages for the
// @Description authenticated user. Empty ranges produce zeroes.
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param startDate query string true "Range start (RFC 3339 or YYYY-MM-DD)"
// @Param endDate query string true "Range end (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} Response "Statistics"
// @Failure 400 {object} Response "Missing or malformed dates"
// @Router /progress/stats [get]
func (h *ProgressHandler) Stats(c *gin.Context) {
	ownerID, ok := ownerIDFromToken(c)
	if !ok {
		return
	}

	startDate, err := parseDateParam(c.Query("startDate"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Please provide a valid startDate")
		return
	}
	endDate, err := parseDateParam(c.Query("endDate"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Please provide a valid endDate")
		return
	}
	// A date-only endDate means "through that day".
	if endDate.Hour() == 0 && endDate.Minute() == 0 && endDate.Second() == 0 {
		endDate = endDate.Add(24*time.Hour - time.Nanosecond)
	}

	stats, err := h.progressService.ComputeStats(c.Request.Context(), ownerID, startDate, endDate)
	if err != nil {
		mapProgressError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

// Get godoc
// @Summary Get a single progress entry
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} Response "Entry"
// @Failure 403 {object} Response "Not the owner"
// @Failure 404 {object} Response "Not found"
// @Router /progress/{id} [get]
func (h *ProgressHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid progress entry ID")
		return
	}
	ownerID, ok := ownerIDFromToken(c)
	if !ok {
		return
	}

	entry, err := h.progressService.GetEntry(c.Request.Context(), id, ownerID)
	if err != nil {
		mapProgressError(c, err)
		return
	}
	respondData(c, http.StatusOK, entry)
}

// Update godoc
// @Summary Replace the logs of a progress entry
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param entry body ProgressRequest true "Progress logs"
// @Success 200 {object} Response "Updated entry"
// @Failure 403 {object} Response "Not the owner"
// @Failure 404 {object} Response "Not found"
// @Router /progress/{id} [put]
func (h *ProgressHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid progress entry ID")
		return
	}
	ownerID, ok := ownerIDFromToken(c)
	if !ok {
		return
	}

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid progress payload")
		return
	}

	entry, err := h.progressService.UpdateEntry(c.Request.Context(), id, ownerID, req.toInput())
	if err != nil {
		mapProgressError(c, err)
		return
	}
	respondData(c, http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete a progress entry
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} Response "Deleted"
// @Failure 403 {object} Response "Not the owner"
// @Failure 404 {object} Response "Not found"
// @Router /progress/{id} [delete]
func (h *ProgressHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid progress entry ID")
		return
	}
	ownerID, ok := ownerIDFromToken(c)
	if !ok {
		return
	}

	if err := h.progressService.DeleteEntry(c.Request.Context(), id, ownerID); err != nil {
		mapProgressError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Progress entry deleted successfully", nil)
}

// parseDateParam accepts RFC 3339 timestamps and bare dates.
func parseDateParam(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("missing date")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
