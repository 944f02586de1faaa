package repository

import (
	"context"

	"fitzone/gym-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
	// ErrNoMatch is returned by conditional writes (enroll, unenroll) when no
	// document satisfied the filter. The service layer re-reads the document
	// to classify why.
	ErrNoMatch = RepositoryError("no document matched")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// AdminRepository persists administrator accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (primitive.ObjectID, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Admin, error)
}

// MembershipRepository persists membership applications.
type MembershipRepository interface {
	Create(ctx context.Context, m *domain.Membership) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Membership, error)
	GetByEmail(ctx context.Context, email string) (*domain.Membership, error)
	// List returns applications, optionally filtered by status (empty status
	// means all). newestFirst sorts by creation time descending (the admin
	// listing); otherwise the natural insertion order is kept.
	List(ctx context.Context, status domain.MembershipStatus, newestFirst bool) ([]domain.Membership, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Membership, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.MembershipStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.MembershipStatus) (int64, error)
	CountByPlan(ctx context.Context, plan domain.MembershipPlan) (int64, error)
}

// TrainerRepository persists trainer profiles.
type TrainerRepository interface {
	Create(ctx context.Context, t *domain.Trainer) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Trainer, error)
	List(ctx context.Context) ([]domain.Trainer, error)
	Update(ctx context.Context, t *domain.Trainer) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AddReview appends the review and recomputes the derived rating as one
	// atomic write against the trainer document.
	AddReview(ctx context.Context, id primitive.ObjectID, review domain.Review) error
	SetSchedule(ctx context.Context, id primitive.ObjectID, schedule []domain.ScheduleDay) error
	SetProfileImageKey(ctx context.Context, id primitive.ObjectID, key string) error
}

// SessionRepository persists class sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.ClassSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ClassSession, error)
	List(ctx context.Context) ([]domain.ClassSession, error)
	Update(ctx context.Context, s *domain.ClassSession) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AddMember appends memberID only if the session exists, has free
	// capacity and does not already contain the member. Returns ErrNoMatch
	// when any of those conditions fail.
	AddMember(ctx context.Context, sessionID, memberID primitive.ObjectID) error
	// RemoveMember removes memberID only if present. Returns ErrNoMatch when
	// the session is missing or the member is not enrolled.
	RemoveMember(ctx context.Context, sessionID, memberID primitive.ObjectID) error
}

// ProgressRepository persists progress entries.
type ProgressRepository interface {
	Create(ctx context.Context, e *domain.ProgressEntry) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressEntry, error)
	// GetByUserID returns all entries owned by userID, newest first.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgressEntry, error)
	Update(ctx context.Context, e *domain.ProgressEntry) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
