package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/repository"
	"fitzone/gym-backend/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTrainerNotFound       = errors.New("trainer not found")
	ErrTrainerEmailTaken     = errors.New("a trainer with this email already exists")
	ErrTrainerValidation     = errors.New("trainer full name and email are required")
	ErrInvalidSpecialization = errors.New("invalid specialization tag")
)

// Review ratings are clamped to this range on insert. The declared range of
// the rating field was previously not enforced; the clamp closes that gap.
const (
	minReviewRating = 1
	maxReviewRating = 5
)

// TrainerInput carries the mutable fields of a trainer profile.
type TrainerInput struct {
	FullName        string
	Email           string
	PhoneNumber     string
	Specialization  []domain.Specialization
	ExperienceYears int
	Certifications  []domain.Certification
	IsAvailable     bool
}

// TrainerService manages trainer profiles, reviews, and schedules.
type TrainerService interface {
	CreateTrainer(ctx context.Context, input TrainerInput) (*domain.Trainer, error)
	GetTrainer(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	ListTrainers(ctx context.Context) ([]domain.Trainer, error)
	UpdateTrainer(ctx context.Context, id primitive.ObjectID, input TrainerInput) (*domain.Trainer, error)
	DeleteTrainer(ctx context.Context, id primitive.ObjectID) error

	AddReview(ctx context.Context, trainerID, reviewerID primitive.ObjectID, rating float64, comment string) (*domain.Trainer, error)
	GetSchedule(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ScheduleDay, error)
	SetSchedule(ctx context.Context, trainerID primitive.ObjectID, schedule []domain.ScheduleDay) ([]domain.ScheduleDay, error)

	GenerateProfileImageUploadURL(ctx context.Context, trainerID primitive.ObjectID, contentType string) (uploadURL, objectKey string, err error)
	GetProfileImageURL(ctx context.Context, trainerID primitive.ObjectID) (string, error)
}

// trainerService implements the TrainerService interface.
type trainerService struct {
	trainerRepo repository.TrainerRepository
	fileStorage storage.FileStorage
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(trainerRepo repository.TrainerRepository, fileStorage storage.FileStorage) TrainerService {
	return &trainerService{
		trainerRepo: trainerRepo,
		fileStorage: fileStorage,
	}
}

func validateTrainerInput(input TrainerInput) error {
	if input.FullName == "" || input.Email == "" {
		return ErrTrainerValidation
	}
	if !emailPattern.MatchString(input.Email) {
		return ErrInvalidEmail
	}
	for _, spec := range input.Specialization {
		if !spec.IsValid() {
			return ErrInvalidSpecialization
		}
	}
	return nil
}

// CreateTrainer validates and stores a new trainer profile. New trainers
// start with the default rating of 5 until the first review lands.
func (s *trainerService) CreateTrainer(ctx context.Context, input TrainerInput) (*domain.Trainer, error) {
	if err := validateTrainerInput(input); err != nil {
		return nil, err
	}

	t := &domain.Trainer{
		FullName:        input.FullName,
		Email:           input.Email,
		PhoneNumber:     input.PhoneNumber,
		Specialization:  input.Specialization,
		ExperienceYears: input.ExperienceYears,
		Certifications:  input.Certifications,
		Rating:          maxReviewRating,
		IsAvailable:     input.IsAvailable,
	}

	id, err := s.trainerRepo.Create(ctx, t)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTrainerEmailTaken
		}
		return nil, err
	}
	t.ID = id

	return s.trainerRepo.GetByID(ctx, id)
}

// GetTrainer retrieves a single trainer profile.
func (s *trainerService) GetTrainer(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	t, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListTrainers retrieves all trainer profiles.
func (s *trainerService) ListTrainers(ctx context.Context) ([]domain.Trainer, error) {
	return s.trainerRepo.List(ctx)
}

// UpdateTrainer replaces the mutable profile fields of a trainer.
func (s *trainerService) UpdateTrainer(ctx context.Context, id primitive.ObjectID, input TrainerInput) (*domain.Trainer, error) {
	if err := validateTrainerInput(input); err != nil {
		return nil, err
	}

	t := &domain.Trainer{
		ID:              id,
		FullName:        input.FullName,
		Email:           input.Email,
		PhoneNumber:     input.PhoneNumber,
		Specialization:  input.Specialization,
		ExperienceYears: input.ExperienceYears,
		Certifications:  input.Certifications,
		IsAvailable:     input.IsAvailable,
	}

	err := s.trainerRepo.Update(ctx, t)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTrainerEmailTaken
		}
		return nil, err
	}
	return s.trainerRepo.GetByID(ctx, id)
}

// DeleteTrainer removes a trainer profile and its stored profile image.
func (s *trainerService) DeleteTrainer(ctx context.Context, id primitive.ObjectID) error {
	t, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}

	if err := s.trainerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}

	// Best effort: a leaked image is not worth failing the delete over.
	if t.ProfileImageKey != "" {
		_ = s.fileStorage.DeleteObject(ctx, t.ProfileImageKey)
	}
	return nil
}

// AddReview appends a review and recomputes the trainer's average rating.
// The rating is clamped to [1,5] before it is stored.
func (s *trainerService) AddReview(ctx context.Context, trainerID, reviewerID primitive.ObjectID, rating float64, comment string) (*domain.Trainer, error) {
	if rating < minReviewRating {
		rating = minReviewRating
	}
	if rating > maxReviewRating {
		rating = maxReviewRating
	}

	review := domain.Review{
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    comment,
		Date:       time.Now().UTC(),
	}

	err := s.trainerRepo.AddReview(ctx, trainerID, review)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return s.trainerRepo.GetByID(ctx, trainerID)
}

// GetSchedule returns the trainer's weekly schedule.
func (s *trainerService) GetSchedule(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ScheduleDay, error) {
	t, err := s.GetTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if t.Schedule == nil {
		return []domain.ScheduleDay{}, nil
	}
	return t.Schedule, nil
}

// SetSchedule wholesale-replaces the trainer's weekly schedule.
func (s *trainerService) SetSchedule(ctx context.Context, trainerID primitive.ObjectID, schedule []domain.ScheduleDay) ([]domain.ScheduleDay, error) {
	err := s.trainerRepo.SetSchedule(ctx, trainerID, schedule)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return schedule, nil
}

// GenerateProfileImageUploadURL issues a presigned PUT URL for the trainer's
// profile image and records the object key on the profile.
func (s *trainerService) GenerateProfileImageUploadURL(ctx context.Context, trainerID primitive.ObjectID, contentType string) (string, string, error) {
	if _, err := s.GetTrainer(ctx, trainerID); err != nil {
		return "", "", err
	}

	objectKey := fmt.Sprintf("trainers/%s/profile/%s", trainerID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", err
	}

	if err := s.trainerRepo.SetProfileImageKey(ctx, trainerID, objectKey); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrTrainerNotFound
		}
		return "", "", err
	}
	return uploadURL, objectKey, nil
}

// GetProfileImageURL resolves a presigned GET URL for the trainer's profile
// image. An empty string means no image has been uploaded.
func (s *trainerService) GetProfileImageURL(ctx context.Context, trainerID primitive.ObjectID) (string, error) {
	t, err := s.GetTrainer(ctx, trainerID)
	if err != nil {
		return "", err
	}
	if t.ProfileImageKey == "" {
		return "", nil
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, t.ProfileImageKey, storage.DefaultPresignedURLExpiry)
}
