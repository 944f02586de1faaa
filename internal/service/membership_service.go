package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMembershipNotFound     = errors.New("membership not found")
	ErrMissingRequiredFields  = errors.New("full name, email, phone number, and plan are required")
	ErrInvalidEmail           = errors.New("please provide a valid email address")
	ErrInvalidPhoneNumber     = errors.New("please provide a valid 10-digit phone number")
	ErrInvalidPlan            = errors.New("invalid membership plan selected")
	ErrInvalidStatus          = errors.New("invalid status: must be pending, active, or expired")
	ErrEmailAlreadyRegistered = errors.New("this email is already registered")
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// SubmitApplicationInput carries the fields of a public signup submission.
// Status is deliberately absent: a new application is always pending.
type SubmitApplicationInput struct {
	FullName            string
	Email               string
	PhoneNumber         string
	Plan                string
	SpecialRequirements string
	StartDate           time.Time
}

// MembershipService validates and manages membership applications.
type MembershipService interface {
	SubmitApplication(ctx context.Context, input SubmitApplicationInput) (*domain.Membership, error)
	ListApplications(ctx context.Context, status string, newestFirst bool) ([]domain.Membership, error)
	GetApplication(ctx context.Context, id primitive.ObjectID) (*domain.Membership, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*domain.Membership, error)
	DeleteApplication(ctx context.Context, id primitive.ObjectID) error
	ComputeStats(ctx context.Context) (*domain.MembershipStats, error)
}

// membershipService implements the MembershipService interface.
type membershipService struct {
	membershipRepo repository.MembershipRepository
}

// NewMembershipService creates a new instance of membershipService.
func NewMembershipService(membershipRepo repository.MembershipRepository) MembershipService {
	return &membershipService{membershipRepo: membershipRepo}
}

// SubmitApplication validates and stores a public signup. Whatever the
// caller sends, the stored status is pending.
func (s *membershipService) SubmitApplication(ctx context.Context, input SubmitApplicationInput) (*domain.Membership, error) {
	if input.FullName == "" || input.Email == "" || input.PhoneNumber == "" || input.Plan == "" {
		return nil, ErrMissingRequiredFields
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, ErrInvalidEmail
	}
	if !phonePattern.MatchString(input.PhoneNumber) {
		return nil, ErrInvalidPhoneNumber
	}
	plan := domain.MembershipPlan(input.Plan)
	if !plan.IsValid() {
		return nil, ErrInvalidPlan
	}

	// Pre-check for a friendly error; the unique index on email closes the
	// race between check and insert.
	_, err := s.membershipRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	m := &domain.Membership{
		FullName:            input.FullName,
		Email:               input.Email,
		PhoneNumber:         input.PhoneNumber,
		Plan:                plan,
		SpecialRequirements: input.SpecialRequirements,
		StartDate:           input.StartDate,
		Status:              domain.StatusPending,
	}

	id, err := s.membershipRepo.Create(ctx, m)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}
	m.ID = id

	return s.membershipRepo.GetByID(ctx, id)
}

// ListApplications returns applications, optionally filtered by status.
// An unknown status filter fails rather than silently matching nothing.
func (s *membershipService) ListApplications(ctx context.Context, status string, newestFirst bool) ([]domain.Membership, error) {
	filter := domain.MembershipStatus(status)
	if status != "" && !filter.IsValid() {
		return nil, ErrInvalidStatus
	}
	return s.membershipRepo.List(ctx, filter, newestFirst)
}

// GetApplication retrieves a single application.
func (s *membershipService) GetApplication(ctx context.Context, id primitive.ObjectID) (*domain.Membership, error) {
	m, err := s.membershipRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}
	return m, nil
}

// UpdateStatus moves an application to a new status. Any of the three
// statuses is reachable from any other; only enum membership is enforced.
func (s *membershipService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*domain.Membership, error) {
	newStatus := domain.MembershipStatus(status)
	if !newStatus.IsValid() {
		return nil, ErrInvalidStatus
	}

	err := s.membershipRepo.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}
	return s.membershipRepo.GetByID(ctx, id)
}

// DeleteApplication removes an application.
func (s *membershipService) DeleteApplication(ctx context.Context, id primitive.ObjectID) error {
	err := s.membershipRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMembershipNotFound
		}
		return err
	}
	return nil
}

// ComputeStats counts applications per status and per plan over the current
// store snapshot. No caching; every call recomputes.
func (s *membershipService) ComputeStats(ctx context.Context) (*domain.MembershipStats, error) {
	stats := &domain.MembershipStats{}
	var err error

	if stats.Total, err = s.membershipRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Pending, err = s.membershipRepo.CountByStatus(ctx, domain.StatusPending); err != nil {
		return nil, err
	}
	if stats.Active, err = s.membershipRepo.CountByStatus(ctx, domain.StatusActive); err != nil {
		return nil, err
	}
	if stats.Expired, err = s.membershipRepo.CountByStatus(ctx, domain.StatusExpired); err != nil {
		return nil, err
	}
	if stats.ByPlan.Basic, err = s.membershipRepo.CountByPlan(ctx, domain.PlanBasic); err != nil {
		return nil, err
	}
	if stats.ByPlan.Pro, err = s.membershipRepo.CountByPlan(ctx, domain.PlanPro); err != nil {
		return nil, err
	}
	if stats.ByPlan.Elite, err = s.membershipRepo.CountByPlan(ctx, domain.PlanElite); err != nil {
		return nil, err
	}

	return stats, nil
}
