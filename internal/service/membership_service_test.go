package service_test

import (
	"context"
	"testing"
	"time"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/service"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validApplication(email string) service.SubmitApplicationInput {
	return service.SubmitApplicationInput{
		FullName:    "Jamie Doe",
		Email:       email,
		PhoneNumber: "0123456789",
		Plan:        "pro",
	}
}

func TestMembershipService_Submit_AlwaysPending(t *testing.T) {
	repo := newFakeMembershipRepo()
	svc := service.NewMembershipService(repo)

	m, err := svc.SubmitApplication(context.Background(), validApplication("jamie@fitzone.test"))
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, m.Status)
	require.Equal(t, domain.PlanPro, m.Plan)
	require.False(t, m.StartDate.IsZero())
	require.False(t, m.ID.IsZero())
}

func TestMembershipService_Submit_Validation(t *testing.T) {
	repo := newFakeMembershipRepo()
	svc := service.NewMembershipService(repo)
	ctx := context.Background()

	missing := validApplication("a@b.test")
	missing.FullName = ""
	_, err := svc.SubmitApplication(ctx, missing)
	require.ErrorIs(t, err, service.ErrMissingRequiredFields)

	badEmail := validApplication("not an email")
	_, err = svc.SubmitApplication(ctx, badEmail)
	require.ErrorIs(t, err, service.ErrInvalidEmail)

	badPhone := validApplication("a@b.test")
	badPhone.PhoneNumber = "12345"
	_, err = svc.SubmitApplication(ctx, badPhone)
	require.ErrorIs(t, err, service.ErrInvalidPhoneNumber)

	badPlan := validApplication("a@b.test")
	badPlan.Plan = "platinum"
	_, err = svc.SubmitApplication(ctx, badPlan)
	require.ErrorIs(t, err, service.ErrInvalidPlan)

	// None of the failed submissions may have been stored.
	total, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestMembershipService_Submit_DuplicateEmail(t *testing.T) {
	repo := newFakeMembershipRepo()
	svc := service.NewMembershipService(repo)
	ctx := context.Background()

	_, err := svc.SubmitApplication(ctx, validApplication("dup@fitzone.test"))
	require.NoError(t, err)

	_, err = svc.SubmitApplication(ctx, validApplication("dup@fitzone.test"))
	require.ErrorIs(t, err, service.ErrEmailAlreadyRegistered)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
}

func TestMembershipService_UpdateStatus(t *testing.T) {
	repo := newFakeMembershipRepo()
	svc := service.NewMembershipService(repo)
	ctx := context.Background()

	m, err := svc.SubmitApplication(ctx, validApplication("s@fitzone.test"))
	require.NoError(t, err)

	// Any status is reachable from any other.
	updated, err := svc.UpdateStatus(ctx, m.ID, "active")
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, updated.Status)

	updated, err = svc.UpdateStatus(ctx, m.ID, "pending")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, updated.Status)
}

func TestMembershipService_UpdateStatus_InvalidLeavesRecordUnchanged(t *testing.T) {
	repo := newFakeMembershipRepo()
	svc := service.NewMembershipService(repo)
	ctx := context.Background()

	m, err := svc.SubmitApplication(ctx, validApplication("s@fitzone.test"))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, m.ID, "suspended")
	require.ErrorIs(t, err, service.ErrInvalidStatus)

	got, err := svc.GetApplication(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, got.Status)
}

func TestMembershipService_UpdateStatus_NotFound(t *testing.T) {
	svc := service.NewMembershipService(newFakeMembershipRepo())

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID(), "active")
	require.ErrorIs(t, err, service.ErrMembershipNotFound)
}

func TestMembershipService_List_FilterAndOrder(t *testing.T) {
	repo := newFakeMembershipRepo()
	svc := service.NewMembershipService(repo)
	ctx := context.Background()

	first, err := svc.SubmitApplication(ctx, validApplication("one@fitzone.test"))
	require.NoError(t, err)
	second, err := svc.SubmitApplication(ctx, validApplication("two@fitzone.test"))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, second.ID, "active")
	require.NoError(t, err)

	all, err := svc.ListApplications(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, first.ID, all[0].ID) // insertion order

	pending, err := svc.ListApplications(ctx, "pending", false)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, first.ID, pending[0].ID)

	_, err = svc.ListApplications(ctx, "bogus", false)
	require.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestMembershipService_Delete(t *testing.T) {
	repo := newFakeMembershipRepo()
	svc := service.NewMembershipService(repo)
	ctx := context.Background()

	m, err := svc.SubmitApplication(ctx, validApplication("gone@fitzone.test"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteApplication(ctx, m.ID))
	require.ErrorIs(t, svc.DeleteApplication(ctx, m.ID), service.ErrMembershipNotFound)

	_, err = svc.GetApplication(ctx, m.ID)
	require.ErrorIs(t, err, service.ErrMembershipNotFound)
}

func TestMembershipService_ComputeStats(t *testing.T) {
	repo := newFakeMembershipRepo()
	svc := service.NewMembershipService(repo)
	ctx := context.Background()

	emails := []string{"a@x.test", "b@x.test", "c@x.test"}
	plans := []string{"basic", "basic", "elite"}
	var ids []primitive.ObjectID
	for i, email := range emails {
		in := validApplication(email)
		in.Plan = plans[i]
		m, err := svc.SubmitApplication(ctx, in)
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}
	_, err := svc.UpdateStatus(ctx, ids[0], "active")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, ids[1], "expired")
	require.NoError(t, err)

	stats, err := svc.ComputeStats(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, stats.Total)
	require.EqualValues(t, 1, stats.Pending)
	require.EqualValues(t, 1, stats.Active)
	require.EqualValues(t, 1, stats.Expired)
	require.EqualValues(t, 2, stats.ByPlan.Basic)
	require.EqualValues(t, 0, stats.ByPlan.Pro)
	require.EqualValues(t, 1, stats.ByPlan.Elite)
}

func TestMembershipService_Submit_KeepsProvidedStartDate(t *testing.T) {
	repo := newFakeMembershipRepo()
	svc := service.NewMembershipService(repo)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	in := validApplication("later@fitzone.test")
	in.StartDate = start

	m, err := svc.SubmitApplication(context.Background(), in)
	require.NoError(t, err)
	require.True(t, m.StartDate.Equal(start))
}
