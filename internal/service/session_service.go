package service

import (
	"context"
	"errors"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound   = errors.New("class session not found")
	ErrSessionValidation = errors.New("session name, type, trainer, and a positive capacity are required")
	ErrSessionFull       = errors.New("class session is full")
	ErrAlreadyEnrolled   = errors.New("member already enrolled in this class")
	ErrNotEnrolled       = errors.New("member not enrolled in this class")
)

// SessionInput carries the mutable fields of a class session.
type SessionInput struct {
	Name        string
	Type        domain.SessionType
	Description string
	TrainerID   primitive.ObjectID
	Capacity    int
	Schedule    domain.SessionSchedule
	Level       string
	Price       domain.SessionPrice
	Location    domain.SessionLocation
	Equipment   []domain.Equipment
	Status      domain.SessionStatus
}

// SessionDetail is a class session with trainer and enrolled-member display
// fields materialized, the shape the listing endpoints return.
type SessionDetail struct {
	domain.ClassSession
	Trainer  *SessionTrainerInfo `json:"trainer,omitempty"`
	Enrolled []SessionMemberInfo `json:"enrolled"`
}

// SessionTrainerInfo is the trainer summary embedded in a session listing.
type SessionTrainerInfo struct {
	ID             primitive.ObjectID      `json:"id"`
	FullName       string                  `json:"fullName"`
	Specialization []domain.Specialization `json:"specialization,omitempty"`
}

// SessionMemberInfo is the member summary embedded in a session listing.
type SessionMemberInfo struct {
	ID       primitive.ObjectID `json:"id"`
	FullName string             `json:"fullName"`
}

// SessionService manages class sessions and enrollment.
type SessionService interface {
	CreateSession(ctx context.Context, input SessionInput) (*SessionDetail, error)
	GetSession(ctx context.Context, id primitive.ObjectID) (*SessionDetail, error)
	ListSessions(ctx context.Context) ([]SessionDetail, error)
	UpdateSession(ctx context.Context, id primitive.ObjectID, input SessionInput) (*SessionDetail, error)
	DeleteSession(ctx context.Context, id primitive.ObjectID) error

	Enroll(ctx context.Context, sessionID, memberID primitive.ObjectID) (*SessionDetail, error)
	Unenroll(ctx context.Context, sessionID, memberID primitive.ObjectID) (*SessionDetail, error)
}

// sessionService implements the SessionService interface.
type sessionService struct {
	sessionRepo    repository.SessionRepository
	trainerRepo    repository.TrainerRepository
	membershipRepo repository.MembershipRepository
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	trainerRepo repository.TrainerRepository,
	membershipRepo repository.MembershipRepository,
) SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		trainerRepo:    trainerRepo,
		membershipRepo: membershipRepo,
	}
}

func validateSessionInput(input SessionInput) error {
	if input.Name == "" || input.TrainerID == primitive.NilObjectID || input.Capacity <= 0 {
		return ErrSessionValidation
	}
	if !input.Type.IsValid() {
		return ErrSessionValidation
	}
	if input.Status != "" && !input.Status.IsValid() {
		return ErrSessionValidation
	}
	return nil
}

// CreateSession validates and stores a new class session.
func (s *sessionService) CreateSession(ctx context.Context, input SessionInput) (*SessionDetail, error) {
	if err := validateSessionInput(input); err != nil {
		return nil, err
	}
	if _, err := s.trainerRepo.GetByID(ctx, input.TrainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	sess := &domain.ClassSession{
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
		TrainerID:   input.TrainerID,
		Capacity:    input.Capacity,
		Schedule:    input.Schedule,
		Level:       input.Level,
		Price:       input.Price,
		Location:    input.Location,
		Equipment:   input.Equipment,
		Status:      input.Status,
	}
	if sess.Status == "" {
		sess.Status = domain.SessionScheduled
	}

	id, err := s.sessionRepo.Create(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.GetSession(ctx, id)
}

// GetSession retrieves a session with trainer and member display fields resolved.
func (s *sessionService) GetSession(ctx context.Context, id primitive.ObjectID) (*SessionDetail, error) {
	sess, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.materialize(ctx, *sess)
}

// ListSessions retrieves all sessions with display fields resolved. Trainer
// and member lookups are batched, not per-session.
func (s *sessionService) ListSessions(ctx context.Context) ([]SessionDetail, error) {
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	trainerIDs := make([]primitive.ObjectID, 0, len(sessions))
	var memberIDs []primitive.ObjectID
	for _, sess := range sessions {
		trainerIDs = append(trainerIDs, sess.TrainerID)
		memberIDs = append(memberIDs, sess.EnrolledMembers...)
	}

	trainers, err := s.trainerRepo.GetByIDs(ctx, dedupIDs(trainerIDs))
	if err != nil {
		return nil, err
	}
	members, err := s.membershipRepo.GetByIDs(ctx, dedupIDs(memberIDs))
	if err != nil {
		return nil, err
	}

	trainerByID := make(map[primitive.ObjectID]domain.Trainer, len(trainers))
	for _, t := range trainers {
		trainerByID[t.ID] = t
	}
	memberByID := make(map[primitive.ObjectID]domain.Membership, len(members))
	for _, m := range members {
		memberByID[m.ID] = m
	}

	details := make([]SessionDetail, 0, len(sessions))
	for _, sess := range sessions {
		details = append(details, buildDetail(sess, trainerByID, memberByID))
	}
	return details, nil
}

// UpdateSession replaces the mutable fields of a session.
func (s *sessionService) UpdateSession(ctx context.Context, id primitive.ObjectID, input SessionInput) (*SessionDetail, error) {
	if err := validateSessionInput(input); err != nil {
		return nil, err
	}

	sess := &domain.ClassSession{
		ID:          id,
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
		TrainerID:   input.TrainerID,
		Capacity:    input.Capacity,
		Schedule:    input.Schedule,
		Level:       input.Level,
		Price:       input.Price,
		Location:    input.Location,
		Equipment:   input.Equipment,
		Status:      input.Status,
	}
	if sess.Status == "" {
		sess.Status = domain.SessionScheduled
	}

	err := s.sessionRepo.Update(ctx, sess)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.GetSession(ctx, id)
}

// DeleteSession removes a class session.
func (s *sessionService) DeleteSession(ctx context.Context, id primitive.ObjectID) error {
	err := s.sessionRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

// Enroll adds a member to a session. The repository applies the append as a
// single conditional write; on a no-match this re-reads the session to tell
// the caller which invariant stopped it.
func (s *sessionService) Enroll(ctx context.Context, sessionID, memberID primitive.ObjectID) (*SessionDetail, error) {
	err := s.sessionRepo.AddMember(ctx, sessionID, memberID)
	if err != nil {
		if !errors.Is(err, repository.ErrNoMatch) {
			return nil, err
		}
		sess, getErr := s.sessionRepo.GetByID(ctx, sessionID)
		if getErr != nil {
			if errors.Is(getErr, repository.ErrNotFound) {
				return nil, ErrSessionNotFound
			}
			return nil, getErr
		}
		if sess.IsEnrolled(memberID) {
			return nil, ErrAlreadyEnrolled
		}
		if sess.IsFull() {
			return nil, ErrSessionFull
		}
		// The conditions passed on re-read: the write lost a race it would
		// now win. Surface the original failure; the caller retries.
		return nil, err
	}
	return s.GetSession(ctx, sessionID)
}

// Unenroll removes a member from a session.
func (s *sessionService) Unenroll(ctx context.Context, sessionID, memberID primitive.ObjectID) (*SessionDetail, error) {
	err := s.sessionRepo.RemoveMember(ctx, sessionID, memberID)
	if err != nil {
		if !errors.Is(err, repository.ErrNoMatch) {
			return nil, err
		}
		if _, getErr := s.sessionRepo.GetByID(ctx, sessionID); getErr != nil {
			if errors.Is(getErr, repository.ErrNotFound) {
				return nil, ErrSessionNotFound
			}
			return nil, getErr
		}
		return nil, ErrNotEnrolled
	}
	return s.GetSession(ctx, sessionID)
}

// materialize resolves display fields for a single session.
func (s *sessionService) materialize(ctx context.Context, sess domain.ClassSession) (*SessionDetail, error) {
	trainerByID := map[primitive.ObjectID]domain.Trainer{}
	if t, err := s.trainerRepo.GetByID(ctx, sess.TrainerID); err == nil {
		trainerByID[t.ID] = *t
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	members, err := s.membershipRepo.GetByIDs(ctx, sess.EnrolledMembers)
	if err != nil {
		return nil, err
	}
	memberByID := make(map[primitive.ObjectID]domain.Membership, len(members))
	for _, m := range members {
		memberByID[m.ID] = m
	}

	detail := buildDetail(sess, trainerByID, memberByID)
	return &detail, nil
}

func buildDetail(
	sess domain.ClassSession,
	trainerByID map[primitive.ObjectID]domain.Trainer,
	memberByID map[primitive.ObjectID]domain.Membership,
) SessionDetail {
	detail := SessionDetail{
		ClassSession: sess,
		Enrolled:     []SessionMemberInfo{},
	}

	if t, ok := trainerByID[sess.TrainerID]; ok {
		detail.Trainer = &SessionTrainerInfo{
			ID:             t.ID,
			FullName:       t.FullName,
			Specialization: t.Specialization,
		}
	}
	for _, id := range sess.EnrolledMembers {
		if m, ok := memberByID[id]; ok {
			detail.Enrolled = append(detail.Enrolled, SessionMemberInfo{ID: m.ID, FullName: m.FullName})
		}
	}
	return detail
}

func dedupIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
