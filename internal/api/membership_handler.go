package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipHandler holds the membership service dependency.
type MembershipHandler struct {
	membershipService service.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(membershipService service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// --- DTOs ---

// SubmitMembershipRequest is the public signup form. A status field in the
// payload is ignored; new applications are always pending.
type SubmitMembershipRequest struct {
	FullName            string     `json:"fullName" binding:"required"`
	Email               string     `json:"email" binding:"required"`
	PhoneNumber         string     `json:"phoneNumber" binding:"required"`
	Plan                string     `json:"plan" binding:"required"`
	SpecialRequirements string     `json:"specialRequirements"`
	StartDate           *time.Time `json:"startDate"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// mapMembershipError translates service errors into the observed HTTP
// statuses: every validation failure, including a duplicate email, surfaces
// as a 400.
func mapMembershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMembershipNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMissingRequiredFields),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPhoneNumber),
		errors.Is(err, service.ErrInvalidPlan),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrEmailAlreadyRegistered):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, genericErrorMessage)
	}
}

// --- Handler Methods ---

// Submit godoc
// @Summary Submit a membership application
// @Description Public signup form submission; the stored status is always pending.
// @Tags Memberships
// @Accept json
// @Produce json
// @Param application body SubmitMembershipRequest true "Application details"
// @Success 201 {object} Response "Application submitted"
// @Failure 400 {object} Response "Validation failure or duplicate email"
// @Failure 500 {object} Response "Internal Server Error"
// @Router /memberships [post]
func (h *MembershipHandler) Submit(c *gin.Context) {
	var req SubmitMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	input := service.SubmitApplicationInput{
		FullName:            req.FullName,
		Email:               req.Email,
		PhoneNumber:         req.PhoneNumber,
		Plan:                req.Plan,
		SpecialRequirements: req.SpecialRequirements,
	}
	if req.StartDate != nil {
		input.StartDate = *req.StartDate
	}

	m, err := h.membershipService.SubmitApplication(c.Request.Context(), input)
	if err != nil {
		mapMembershipError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Membership application submitted successfully!", m)
}

// List godoc
// @Summary List membership applications
// @Description Public listing in insertion order, without a status filter.
// @Tags Memberships
// @Produce json
// @Success 200 {object} Response "Applications"
// @Router /memberships [get]
func (h *MembershipHandler) List(c *gin.Context) {
	memberships, err := h.membershipService.ListApplications(c.Request.Context(), "", false)
	if err != nil {
		mapMembershipError(c, err)
		return
	}
	if memberships == nil {
		memberships = []domain.Membership{}
	}
	respondData(c, http.StatusOK, memberships)
}

// AdminList godoc
// @Summary List membership applications for the admin panel
// @Description Optionally filtered by status, newest first, with a count.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending|active|expired)"
// @Success 200 {object} Response "Applications with count"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 403 {object} Response "Forbidden"
// @Router /admin/memberships [get]
func (h *MembershipHandler) AdminList(c *gin.Context) {
	memberships, err := h.membershipService.ListApplications(c.Request.Context(), c.Query("status"), true)
	if err != nil {
		mapMembershipError(c, err)
		return
	}
	if memberships == nil {
		memberships = []domain.Membership{}
	}
	respondList(c, http.StatusOK, len(memberships), memberships)
}

// Get godoc
// @Summary Get a single membership application
// @Tags Memberships
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} Response "Application"
// @Failure 404 {object} Response "Not found"
// @Router /memberships/{id} [get]
func (h *MembershipHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid membership ID")
		return
	}

	m, err := h.membershipService.GetApplication(c.Request.Context(), id)
	if err != nil {
		mapMembershipError(c, err)
		return
	}
	respondData(c, http.StatusOK, m)
}

// UpdateStatus godoc
// @Summary Update the status of an application
// @Description Any of pending/active/expired is reachable from any other.
// @Tags Memberships
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} Response "Updated application"
// @Failure 400 {object} Response "Invalid status"
// @Failure 404 {object} Response "Not found"
// @Router /memberships/{id}/status [patch]
func (h *MembershipHandler) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid membership ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Please provide a status")
		return
	}

	m, err := h.membershipService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		mapMembershipError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, fmt.Sprintf("Membership status updated to %s", m.Status), m)
}

// Delete godoc
// @Summary Delete a membership application
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} Response "Deleted"
// @Failure 404 {object} Response "Not found"
// @Router /admin/memberships/{id} [delete]
func (h *MembershipHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid membership ID")
		return
	}

	if err := h.membershipService.DeleteApplication(c.Request.Context(), id); err != nil {
		mapMembershipError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Membership deleted successfully", nil)
}

// Stats godoc
// @Summary Membership statistics
// @Description Aggregate counts by status and plan, recomputed per call.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "Statistics"
// @Router /admin/stats [get]
func (h *MembershipHandler) Stats(c *gin.Context) {
	stats, err := h.membershipService.ComputeStats(c.Request.Context())
	if err != nil {
		mapMembershipError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}
