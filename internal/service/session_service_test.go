package service_test

import (
	"context"
	"fmt"
	"testing"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/service"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sessionFixture struct {
	svc            service.SessionService
	sessionRepo    *fakeSessionRepo
	membershipRepo *fakeMembershipRepo
	trainerID      primitive.ObjectID
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	sessionRepo := newFakeSessionRepo()
	trainerRepo := newFakeTrainerRepo()
	membershipRepo := newFakeMembershipRepo()

	trainerID, err := trainerRepo.Create(context.Background(), &domain.Trainer{
		FullName: "Alex Coach",
		Email:    "coach@fitzone.test",
		Rating:   5,
	})
	require.NoError(t, err)

	return &sessionFixture{
		svc:            service.NewSessionService(sessionRepo, trainerRepo, membershipRepo),
		sessionRepo:    sessionRepo,
		membershipRepo: membershipRepo,
		trainerID:      trainerID,
	}
}

func (f *sessionFixture) newMember(t *testing.T, email string) primitive.ObjectID {
	t.Helper()
	id, err := f.membershipRepo.Create(context.Background(), &domain.Membership{
		FullName:    "Member " + email,
		Email:       email,
		PhoneNumber: "0123456789",
		Plan:        domain.PlanBasic,
		Status:      domain.StatusActive,
	})
	require.NoError(t, err)
	return id
}

func (f *sessionFixture) createSession(t *testing.T, capacity int) *service.SessionDetail {
	t.Helper()
	detail, err := f.svc.CreateSession(context.Background(), service.SessionInput{
		Name:      "Morning HIIT",
		Type:      domain.SessionGroup,
		TrainerID: f.trainerID,
		Capacity:  capacity,
	})
	require.NoError(t, err)
	return detail
}

func TestSessionService_Create_Defaults(t *testing.T) {
	f := newSessionFixture(t)

	detail := f.createSession(t, 10)
	require.Equal(t, domain.SessionScheduled, detail.Status)
	require.Empty(t, detail.EnrolledMembers)
	require.NotNil(t, detail.Trainer)
	require.Equal(t, "Alex Coach", detail.Trainer.FullName)
}

func TestSessionService_Create_Validation(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateSession(ctx, service.SessionInput{
		Type: domain.SessionGroup, TrainerID: f.trainerID, Capacity: 5,
	})
	require.ErrorIs(t, err, service.ErrSessionValidation)

	_, err = f.svc.CreateSession(ctx, service.SessionInput{
		Name: "X", Type: domain.SessionGroup, TrainerID: f.trainerID, Capacity: 0,
	})
	require.ErrorIs(t, err, service.ErrSessionValidation)

	_, err = f.svc.CreateSession(ctx, service.SessionInput{
		Name: "X", Type: "spin-off", TrainerID: f.trainerID, Capacity: 5,
	})
	require.ErrorIs(t, err, service.ErrSessionValidation)

	_, err = f.svc.CreateSession(ctx, service.SessionInput{
		Name: "X", Type: domain.SessionGroup, TrainerID: primitive.NewObjectID(), Capacity: 5,
	})
	require.ErrorIs(t, err, service.ErrTrainerNotFound)
}

func TestSessionService_Enroll(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	detail := f.createSession(t, 2)
	member := f.newMember(t, "m1@fitzone.test")

	after, err := f.svc.Enroll(ctx, detail.ClassSession.ID, member)
	require.NoError(t, err)
	require.Len(t, after.EnrolledMembers, 1)
	require.Len(t, after.Enrolled, 1)
	require.Equal(t, member, after.Enrolled[0].ID)
}

func TestSessionService_Enroll_AlreadyEnrolled(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	detail := f.createSession(t, 5)
	member := f.newMember(t, "m1@fitzone.test")

	_, err := f.svc.Enroll(ctx, detail.ClassSession.ID, member)
	require.NoError(t, err)

	_, err = f.svc.Enroll(ctx, detail.ClassSession.ID, member)
	require.ErrorIs(t, err, service.ErrAlreadyEnrolled)

	got, err := f.svc.GetSession(ctx, detail.ClassSession.ID)
	require.NoError(t, err)
	require.Len(t, got.EnrolledMembers, 1)
}

func TestSessionService_Enroll_CapacityNeverExceeded(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	const capacity = 3
	detail := f.createSession(t, capacity)

	for i := 0; i < capacity; i++ {
		member := f.newMember(t, fmt.Sprintf("m%d@fitzone.test", i))
		_, err := f.svc.Enroll(ctx, detail.ClassSession.ID, member)
		require.NoError(t, err)
	}

	extra := f.newMember(t, "late@fitzone.test")
	_, err := f.svc.Enroll(ctx, detail.ClassSession.ID, extra)
	require.ErrorIs(t, err, service.ErrSessionFull)

	got, err := f.svc.GetSession(ctx, detail.ClassSession.ID)
	require.NoError(t, err)
	require.Len(t, got.EnrolledMembers, capacity)
}

func TestSessionService_Enroll_SessionNotFound(t *testing.T) {
	f := newSessionFixture(t)
	member := f.newMember(t, "m1@fitzone.test")

	_, err := f.svc.Enroll(context.Background(), primitive.NewObjectID(), member)
	require.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestSessionService_Unenroll(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	detail := f.createSession(t, 5)
	m1 := f.newMember(t, "m1@fitzone.test")
	m2 := f.newMember(t, "m2@fitzone.test")

	_, err := f.svc.Enroll(ctx, detail.ClassSession.ID, m1)
	require.NoError(t, err)
	_, err = f.svc.Enroll(ctx, detail.ClassSession.ID, m2)
	require.NoError(t, err)

	// Removes exactly the one member.
	after, err := f.svc.Unenroll(ctx, detail.ClassSession.ID, m1)
	require.NoError(t, err)
	require.Len(t, after.EnrolledMembers, 1)
	require.Equal(t, m2, after.EnrolledMembers[0])
}

func TestSessionService_Unenroll_NotEnrolled(t *testing.T) {
	f := newSessionFixture(t)
	detail := f.createSession(t, 5)
	member := f.newMember(t, "m1@fitzone.test")

	_, err := f.svc.Unenroll(context.Background(), detail.ClassSession.ID, member)
	require.ErrorIs(t, err, service.ErrNotEnrolled)
}

func TestSessionService_Update_PreservesEnrollment(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	detail := f.createSession(t, 5)
	member := f.newMember(t, "m1@fitzone.test")
	_, err := f.svc.Enroll(ctx, detail.ClassSession.ID, member)
	require.NoError(t, err)

	after, err := f.svc.UpdateSession(ctx, detail.ClassSession.ID, service.SessionInput{
		Name:      "Evening HIIT",
		Type:      domain.SessionGroup,
		TrainerID: f.trainerID,
		Capacity:  8,
	})
	require.NoError(t, err)
	require.Equal(t, "Evening HIIT", after.Name)
	require.Equal(t, 8, after.Capacity)
	require.Len(t, after.EnrolledMembers, 1)
}

func TestSessionService_Delete(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	detail := f.createSession(t, 5)

	require.NoError(t, f.svc.DeleteSession(ctx, detail.ClassSession.ID))
	require.ErrorIs(t, f.svc.DeleteSession(ctx, detail.ClassSession.ID), service.ErrSessionNotFound)
}

func TestSessionService_List_MaterializesDisplayFields(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	detail := f.createSession(t, 5)
	member := f.newMember(t, "m1@fitzone.test")
	_, err := f.svc.Enroll(ctx, detail.ClassSession.ID, member)
	require.NoError(t, err)

	list, err := f.svc.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Trainer)
	require.Equal(t, f.trainerID, list[0].Trainer.ID)
	require.Len(t, list[0].Enrolled, 1)
	require.Equal(t, "Member m1@fitzone.test", list[0].Enrolled[0].FullName)
}
