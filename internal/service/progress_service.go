package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProgressNotFound  = errors.New("progress entry not found")
	ErrProgressForbidden = errors.New("not authorized to access this progress entry")
)

// ProgressInput carries the log arrays of a progress entry.
type ProgressInput struct {
	Measurements []domain.Measurement
	Workouts     []domain.WorkoutLog
	Nutrition    []domain.NutritionLog
	Goals        []domain.Goal
}

// ProgressService manages owner-scoped progress entries and statistics.
type ProgressService interface {
	CreateEntry(ctx context.Context, ownerID primitive.ObjectID, input ProgressInput) (*domain.ProgressEntry, error)
	GetEntry(ctx context.Context, id, requesterID primitive.ObjectID) (*domain.ProgressEntry, error)
	UpdateEntry(ctx context.Context, id, requesterID primitive.ObjectID, input ProgressInput) (*domain.ProgressEntry, error)
	DeleteEntry(ctx context.Context, id, requesterID primitive.ObjectID) error
	ListHistory(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ProgressEntry, error)
	ComputeStats(ctx context.Context, ownerID primitive.ObjectID, startDate, endDate time.Time) (*domain.ProgressStats, error)
}

// progressService implements the ProgressService interface.
type progressService struct {
	progressRepo repository.ProgressRepository
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(progressRepo repository.ProgressRepository) ProgressService {
	return &progressService{progressRepo: progressRepo}
}

// CreateEntry stores a new progress entry owned by ownerID.
func (s *progressService) CreateEntry(ctx context.Context, ownerID primitive.ObjectID, input ProgressInput) (*domain.ProgressEntry, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required")
	}

	entry := &domain.ProgressEntry{
		UserID:       ownerID,
		Measurements: input.Measurements,
		Workouts:     input.Workouts,
		Nutrition:    input.Nutrition,
		Goals:        input.Goals,
	}

	id, err := s.progressRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	return s.progressRepo.GetByID(ctx, id)
}

// getOwned fetches an entry and enforces the ownership invariant: the entry
// exists is not enough, the requester must be its owner.
func (s *progressService) getOwned(ctx context.Context, id, requesterID primitive.ObjectID) (*domain.ProgressEntry, error) {
	entry, err := s.progressRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	if entry.UserID != requesterID {
		return nil, ErrProgressForbidden
	}
	return entry, nil
}

// GetEntry retrieves a progress entry, enforcing ownership.
func (s *progressService) GetEntry(ctx context.Context, id, requesterID primitive.ObjectID) (*domain.ProgressEntry, error) {
	return s.getOwned(ctx, id, requesterID)
}

// UpdateEntry replaces the log arrays of an owned entry.
func (s *progressService) UpdateEntry(ctx context.Context, id, requesterID primitive.ObjectID, input ProgressInput) (*domain.ProgressEntry, error) {
	entry, err := s.getOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	entry.Measurements = input.Measurements
	entry.Workouts = input.Workouts
	entry.Nutrition = input.Nutrition
	entry.Goals = input.Goals

	if err := s.progressRepo.Update(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return s.progressRepo.GetByID(ctx, id)
}

// DeleteEntry removes an owned entry.
func (s *progressService) DeleteEntry(ctx context.Context, id, requesterID primitive.ObjectID) error {
	if _, err := s.getOwned(ctx, id, requesterID); err != nil {
		return err
	}

	err := s.progressRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgressNotFound
		}
		return err
	}
	return nil
}

// ListHistory returns the owner's entries, newest first.
func (s *progressService) ListHistory(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ProgressEntry, error) {
	return s.progressRepo.GetByUserID(ctx, ownerID)
}

// ComputeStats derives a report over the logs dated within [startDate,
// endDate]. Ranges with no workouts or no nutrition logs produce zeroes,
// never an error or NaN.
func (s *progressService) ComputeStats(ctx context.Context, ownerID primitive.ObjectID, startDate, endDate time.Time) (*domain.ProgressStats, error) {
	entries, err := s.progressRepo.GetByUserID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	inRange := func(d time.Time) bool {
		return !d.Before(startDate) && !d.After(endDate)
	}

	var measurements []domain.Measurement
	var workouts []domain.WorkoutLog
	var nutrition []domain.NutritionLog
	for _, entry := range entries {
		for _, m := range entry.Measurements {
			if inRange(m.Date) {
				measurements = append(measurements, m)
			}
		}
		for _, w := range entry.Workouts {
			if inRange(w.Date) {
				workouts = append(workouts, w)
			}
		}
		for _, n := range entry.Nutrition {
			if inRange(n.Date) {
				nutrition = append(nutrition, n)
			}
		}
	}

	stats := &domain.ProgressStats{}

	if len(measurements) > 0 {
		sort.Slice(measurements, func(i, j int) bool {
			return measurements[i].Date.Before(measurements[j].Date)
		})
		stats.WeightProgress.Start = measurements[0].Weight
		stats.WeightProgress.End = measurements[len(measurements)-1].Weight
		stats.WeightProgress.Change = stats.WeightProgress.End - stats.WeightProgress.Start
	}

	var totalCalories float64
	for _, w := range workouts {
		stats.WorkoutStats.TotalDuration += w.TotalDuration
		totalCalories += w.CaloriesBurned
	}
	stats.WorkoutStats.TotalWorkouts = len(workouts)
	stats.WorkoutStats.TotalCaloriesBurned = totalCalories
	if len(workouts) > 0 {
		stats.WorkoutStats.AverageDuration = float64(stats.WorkoutStats.TotalDuration) / float64(len(workouts))
	}

	var totalConsumed, totalProtein float64
	for _, n := range nutrition {
		totalConsumed += n.TotalCalories
		totalProtein += n.TotalProtein
	}
	if len(nutrition) > 0 {
		stats.NutritionStats.AverageCaloriesConsumed = totalConsumed / float64(len(nutrition))
		stats.NutritionStats.AverageProteinIntake = totalProtein / float64(len(nutrition))
	}

	return stats, nil
}
