package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mirror the invariants the Mongo
// implementations enforce (unique keys, conditional writes) so the services
// under test observe the same error behavior.

// --- Admin ---

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[primitive.ObjectID]domain.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[primitive.ObjectID]domain.Admin)}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Username == admin.Username || a.Email == admin.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	if admin.Role == "" {
		admin.Role = domain.RoleAdmin
	}
	admin.ID = primitive.NewObjectID()
	r.admins[admin.ID] = *admin
	return admin.ID, nil
}

func (r *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Username == username {
			out := a
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := a
	return &out, nil
}

// --- Membership ---

type fakeMembershipRepo struct {
	mu          sync.Mutex
	memberships map[primitive.ObjectID]domain.Membership
	order       []primitive.ObjectID
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{memberships: make(map[primitive.ObjectID]domain.Membership)}
}

func (r *fakeMembershipRepo) Create(_ context.Context, m *domain.Membership) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.memberships {
		if existing.Email == m.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	m.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.StartDate.IsZero() {
		m.StartDate = now
	}
	r.memberships[m.ID] = *m
	r.order = append(r.order, m.ID)
	return m.ID, nil
}

func (r *fakeMembershipRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memberships[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := m
	return &out, nil
}

func (r *fakeMembershipRepo) GetByEmail(_ context.Context, email string) (*domain.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.memberships {
		if m.Email == email {
			out := m
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMembershipRepo) List(_ context.Context, status domain.MembershipStatus, newestFirst bool) ([]domain.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Membership
	for _, id := range r.order {
		m := r.memberships[id]
		if status != "" && m.Status != status {
			continue
		}
		out = append(out, m)
	}
	if newestFirst {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out, nil
}

func (r *fakeMembershipRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Membership
	for _, id := range ids {
		if m, ok := r.memberships[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.MembershipStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memberships[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.Status = status
	m.UpdatedAt = time.Now().UTC()
	r.memberships[id] = m
	return nil
}

func (r *fakeMembershipRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.memberships[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.memberships, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeMembershipRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.memberships)), nil
}

func (r *fakeMembershipRepo) CountByStatus(_ context.Context, status domain.MembershipStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.memberships {
		if m.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeMembershipRepo) CountByPlan(_ context.Context, plan domain.MembershipPlan) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.memberships {
		if m.Plan == plan {
			n++
		}
	}
	return n, nil
}

// --- Trainer ---

type fakeTrainerRepo struct {
	mu       sync.Mutex
	trainers map[primitive.ObjectID]domain.Trainer
}

func newFakeTrainerRepo() *fakeTrainerRepo {
	return &fakeTrainerRepo{trainers: make(map[primitive.ObjectID]domain.Trainer)}
}

func (r *fakeTrainerRepo) Create(_ context.Context, t *domain.Trainer) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.trainers {
		if existing.Email == t.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	t.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.trainers[t.ID] = *t
	return t.ID, nil
}

func (r *fakeTrainerRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := t
	return &out, nil
}

func (r *fakeTrainerRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Trainer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Trainer
	for _, id := range ids {
		if t, ok := r.trainers[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTrainerRepo) List(_ context.Context) ([]domain.Trainer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Trainer, 0, len(r.trainers))
	for _, t := range r.trainers {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTrainerRepo) Update(_ context.Context, t *domain.Trainer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.trainers[t.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, other := range r.trainers {
		if id != t.ID && other.Email == t.Email {
			return repository.ErrDuplicate
		}
	}
	existing.FullName = t.FullName
	existing.Email = t.Email
	existing.PhoneNumber = t.PhoneNumber
	existing.Specialization = t.Specialization
	existing.ExperienceYears = t.ExperienceYears
	existing.Certifications = t.Certifications
	existing.IsAvailable = t.IsAvailable
	existing.UpdatedAt = time.Now().UTC()
	r.trainers[t.ID] = existing
	return nil
}

func (r *fakeTrainerRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trainers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.trainers, id)
	return nil
}

func (r *fakeTrainerRepo) AddReview(_ context.Context, id primitive.ObjectID, review domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trainers[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.Reviews = append(t.Reviews, review)
	t.Rating = domain.AverageRating(t.Reviews)
	t.UpdatedAt = time.Now().UTC()
	r.trainers[id] = t
	return nil
}

func (r *fakeTrainerRepo) SetSchedule(_ context.Context, id primitive.ObjectID, schedule []domain.ScheduleDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trainers[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.Schedule = schedule
	t.UpdatedAt = time.Now().UTC()
	r.trainers[id] = t
	return nil
}

func (r *fakeTrainerRepo) SetProfileImageKey(_ context.Context, id primitive.ObjectID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trainers[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.ProfileImageKey = key
	t.UpdatedAt = time.Now().UTC()
	r.trainers[id] = t
	return nil
}

// --- Session ---

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[primitive.ObjectID]domain.ClassSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[primitive.ObjectID]domain.ClassSession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *domain.ClassSession) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.EnrolledMembers == nil {
		s.EnrolledMembers = []primitive.ObjectID{}
	}
	r.sessions[s.ID] = *s
	return s.ID, nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ClassSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := s
	out.EnrolledMembers = append([]primitive.ObjectID(nil), s.EnrolledMembers...)
	return &out, nil
}

func (r *fakeSessionRepo) List(_ context.Context) ([]domain.ClassSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ClassSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s *domain.ClassSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.sessions[s.ID]
	if !ok {
		return repository.ErrNotFound
	}
	enrolled := existing.EnrolledMembers
	createdAt := existing.CreatedAt
	updated := *s
	updated.EnrolledMembers = enrolled
	updated.CreatedAt = createdAt
	updated.UpdatedAt = time.Now().UTC()
	r.sessions[s.ID] = updated
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

// AddMember applies the same all-conditions-in-one-write rule the Mongo
// implementation uses, under the fake's lock.
func (r *fakeSessionRepo) AddMember(_ context.Context, sessionID, memberID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return repository.ErrNoMatch
	}
	if s.IsEnrolled(memberID) || s.IsFull() {
		return repository.ErrNoMatch
	}
	s.EnrolledMembers = append(s.EnrolledMembers, memberID)
	s.UpdatedAt = time.Now().UTC()
	r.sessions[sessionID] = s
	return nil
}

func (r *fakeSessionRepo) RemoveMember(_ context.Context, sessionID, memberID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return repository.ErrNoMatch
	}
	for i, id := range s.EnrolledMembers {
		if id == memberID {
			s.EnrolledMembers = append(s.EnrolledMembers[:i], s.EnrolledMembers[i+1:]...)
			s.UpdatedAt = time.Now().UTC()
			r.sessions[sessionID] = s
			return nil
		}
	}
	return repository.ErrNoMatch
}

// --- Progress ---

type fakeProgressRepo struct {
	mu      sync.Mutex
	entries map[primitive.ObjectID]domain.ProgressEntry
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{entries: make(map[primitive.ObjectID]domain.ProgressEntry)}
}

func (r *fakeProgressRepo) Create(_ context.Context, e *domain.ProgressEntry) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	r.entries[e.ID] = *e
	return e.ID, nil
}

func (r *fakeProgressRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ProgressEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := e
	return &out, nil
}

func (r *fakeProgressRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.ProgressEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ProgressEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeProgressRepo) Update(_ context.Context, e *domain.ProgressEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.entries[e.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Measurements = e.Measurements
	existing.Workouts = e.Workouts
	existing.Nutrition = e.Nutrition
	existing.Goals = e.Goals
	existing.UpdatedAt = time.Now().UTC()
	r.entries[e.ID] = existing
	return nil
}

func (r *fakeProgressRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

// --- File storage ---

type fakeFileStorage struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, objectKey)
	return nil
}
