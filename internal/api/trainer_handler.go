package api

import (
	"errors"
	"net/http"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerHandler holds the trainer service dependency.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- DTOs ---

type TrainerRequest struct {
	FullName        string                  `json:"fullName" binding:"required"`
	Email           string                  `json:"email" binding:"required"`
	PhoneNumber     string                  `json:"phoneNumber"`
	Specialization  []domain.Specialization `json:"specialization"`
	ExperienceYears int                     `json:"experienceYears"`
	Certifications  []domain.Certification  `json:"certifications"`
	IsAvailable     *bool                   `json:"isAvailable"`
}

func (r TrainerRequest) toInput() service.TrainerInput {
	input := service.TrainerInput{
		FullName:        r.FullName,
		Email:           r.Email,
		PhoneNumber:     r.PhoneNumber,
		Specialization:  r.Specialization,
		ExperienceYears: r.ExperienceYears,
		Certifications:  r.Certifications,
		IsAvailable:     true,
	}
	if r.IsAvailable != nil {
		input.IsAvailable = *r.IsAvailable
	}
	return input
}

type AddReviewRequest struct {
	Rating  float64 `json:"rating" binding:"required"`
	Comment string  `json:"comment"`
}

type SetScheduleRequest struct {
	Schedule []domain.ScheduleDay `json:"schedule" binding:"required"`
}

type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

func mapTrainerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTrainerNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTrainerValidation),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidSpecialization),
		errors.Is(err, service.ErrTrainerEmailTaken):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, genericErrorMessage)
	}
}

// --- Handler Methods ---

// Create godoc
// @Summary Create a trainer profile
// @Tags Trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trainer body TrainerRequest true "Trainer details"
// @Success 201 {object} Response "Trainer created"
// @Failure 400 {object} Response "Validation failure"
// @Router /trainers [post]
func (h *TrainerHandler) Create(c *gin.Context) {
	var req TrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Trainer full name and email are required")
		return
	}

	t, err := h.trainerService.CreateTrainer(c.Request.Context(), req.toInput())
	if err != nil {
		mapTrainerError(c, err)
		return
	}
	respondData(c, http.StatusCreated, t)
}

// List godoc
// @Summary List all trainers
// @Tags Trainers
// @Produce json
// @Success 200 {object} Response "Trainers with count"
// @Router /trainers [get]
func (h *TrainerHandler) List(c *gin.Context) {
	trainers, err := h.trainerService.ListTrainers(c.Request.Context())
	if err != nil {
		mapTrainerError(c, err)
		return
	}
	if trainers == nil {
		trainers = []domain.Trainer{}
	}
	respondList(c, http.StatusOK, len(trainers), trainers)
}

// Get godoc
// @Summary Get a single trainer
// @Tags Trainers
// @Produce json
// @Param id path string true "Trainer ID"
// @Success 200 {object} Response "Trainer"
// @Failure 404 {object} Response "Not found"
// @Router /trainers/{id} [get]
func (h *TrainerHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	t, err := h.trainerService.GetTrainer(c.Request.Context(), id)
	if err != nil {
		mapTrainerError(c, err)
		return
	}
	respondData(c, http.StatusOK, t)
}

// Update godoc
// @Summary Update a trainer profile
// @Tags Trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trainer ID"
// @Param trainer body TrainerRequest true "Trainer details"
// @Success 200 {object} Response "Updated trainer"
// @Failure 404 {object} Response "Not found"
// @Router /trainers/{id} [put]
func (h *TrainerHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	var req TrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Trainer full name and email are required")
		return
	}

	t, err := h.trainerService.UpdateTrainer(c.Request.Context(), id, req.toInput())
	if err != nil {
		mapTrainerError(c, err)
		return
	}
	respondData(c, http.StatusOK, t)
}

// Delete godoc
// @Summary Delete a trainer profile
// @Tags Trainers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trainer ID"
// @Success 200 {object} Response "Deleted"
// @Failure 404 {object} Response "Not found"
// @Router /trainers/{id} [delete]
func (h *TrainerHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	if err := h.trainerService.DeleteTrainer(c.Request.Context(), id); err != nil {
		mapTrainerError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{})
}

// AddReview godoc
// @Summary Add a review for a trainer
// @Description Appends the review and recomputes the average rating. The
// @Description rating is clamped to [1,5].
// @Tags Trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trainer ID"
// @Param review body AddReviewRequest true "Review"
// @Success 200 {object} Response "Trainer with updated rating"
// @Failure 404 {object} Response "Not found"
// @Router /trainers/{id}/reviews [post]
func (h *TrainerHandler) AddReview(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	principal, err := getPrincipalFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify reviewer from token")
		return
	}
	reviewerID, err := primitive.ObjectIDFromHex(principal.AdminID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid reviewer ID in token")
		return
	}

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Please provide a rating")
		return
	}

	t, err := h.trainerService.AddReview(c.Request.Context(), id, reviewerID, req.Rating, req.Comment)
	if err != nil {
		mapTrainerError(c, err)
		return
	}
	respondData(c, http.StatusOK, t)
}

// GetSchedule godoc
// @Summary Get a trainer's weekly schedule
// @Tags Trainers
// @Produce json
// @Param id path string true "Trainer ID"
// @Success 200 {object} Response "Schedule"
// @Failure 404 {object} Response "Not found"
// @Router /trainers/{id}/schedule [get]
func (h *TrainerHandler) GetSchedule(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	schedule, err := h.trainerService.GetSchedule(c.Request.Context(), id)
	if err != nil {
		mapTrainerError(c, err)
		return
	}
	respondData(c, http.StatusOK, schedule)
}

// SetSchedule godoc
// @Summary Replace a trainer's weekly schedule
// @Description Wholesale replace, not a merge.
// @Tags Trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trainer ID"
// @Param schedule body SetScheduleRequest true "New schedule"
// @Success 200 {object} Response "Schedule"
// @Failure 404 {object} Response "Not found"
// @Router /trainers/{id}/schedule [put]
func (h *TrainerHandler) SetSchedule(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	var req SetScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Please provide a schedule")
		return
	}

	schedule, err := h.trainerService.SetSchedule(c.Request.Context(), id, req.Schedule)
	if err != nil {
		mapTrainerError(c, err)
		return
	}
	respondData(c, http.StatusOK, schedule)
}

// ProfileImageUploadURL godoc
// @Summary Issue a presigned upload URL for a trainer's profile image
// @Tags Trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trainer ID"
// @Param upload body UploadURLRequest true "Upload details"
// @Success 200 {object} Response "Presigned URL and object key"
// @Failure 404 {object} Response "Not found"
// @Router /trainers/{id}/profile-image/upload-url [post]
func (h *TrainerHandler) ProfileImageUploadURL(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Please provide a content type")
		return
	}

	uploadURL, objectKey, err := h.trainerService.GenerateProfileImageUploadURL(c.Request.Context(), id, req.ContentType)
	if err != nil {
		mapTrainerError(c, err)
		return
	}
	respondData(c, http.StatusOK, UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey})
}

// ProfileImage godoc
// @Summary Resolve a download URL for a trainer's profile image
// @Tags Trainers
// @Produce json
// @Param id path string true "Trainer ID"
// @Success 200 {object} Response "Presigned download URL; empty when no image"
// @Failure 404 {object} Response "Not found"
// @Router /trainers/{id}/profile-image [get]
func (h *TrainerHandler) ProfileImage(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	url, err := h.trainerService.GetProfileImageURL(c.Request.Context(), id)
	if err != nil {
		mapTrainerError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"url": url})
}
