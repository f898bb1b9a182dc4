package services

import (
	"testing"

	"jamaluki-backend/models"
	"jamaluki-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerMayOnlyCancel(t *testing.T) {
	f := newFixture(t, Options{})
	appt := f.book()

	for _, status := range []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed, models.StatusCompleted} {
		_, err := f.svc.Appointments.SetStatus(f.ctx, appt.ID, status, f.customer)
		assert.Equal(t, utils.KindForbidden, utils.KindOf(err), "status %s", status)
	}

	updated, err := f.svc.Appointments.SetStatus(f.ctx, appt.ID, models.StatusCancelled, f.customer)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)

	// cancelling again is accepted under the permissive policy
	_, err = f.svc.Appointments.SetStatus(f.ctx, appt.ID, models.StatusCancelled, f.customer)
	assert.NoError(t, err)
}

func TestCustomerMayCancelCompletedAppointment(t *testing.T) {
	f := newFixture(t, Options{})
	appt := f.book()

	_, err := f.svc.Appointments.SetStatus(f.ctx, appt.ID, models.StatusCompleted, f.owner)
	require.NoError(t, err)

	updated, err := f.svc.Appointments.SetStatus(f.ctx, appt.ID, models.StatusCancelled, f.customer)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
}

func TestOwnerStatusLatitude(t *testing.T) {
	f := newFixture(t, Options{})
	appt := f.book()

	for _, status := range []models.AppointmentStatus{models.StatusConfirmed, models.StatusCompleted, models.StatusPending} {
		updated, err := f.svc.Appointments.SetStatus(f.ctx, appt.ID, status, f.owner)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	stored, err := f.store.GetAppointment(f.ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestStrictTransitions(t *testing.T) {
	f := newFixture(t, Options{Transitions: StrictTransitions})
	appt := f.book()

	_, err := f.svc.Appointments.SetStatus(f.ctx, appt.ID, models.StatusCompleted, f.owner)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err), "pending cannot jump to completed")

	_, err = f.svc.Appointments.SetStatus(f.ctx, appt.ID, models.StatusConfirmed, f.owner)
	require.NoError(t, err)
	_, err = f.svc.Appointments.SetStatus(f.ctx, appt.ID, models.StatusCompleted, f.owner)
	require.NoError(t, err)

	_, err = f.svc.Appointments.SetStatus(f.ctx, appt.ID, models.StatusPending, f.owner)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	_, err = f.svc.Appointments.SetStatus(f.ctx, appt.ID, models.StatusCancelled, f.customer)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))

	stored, err := f.store.GetAppointment(f.ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from, to models.AppointmentStatus
		actor    Actor
		want     bool
	}{
		{models.StatusPending, models.StatusConfirmed, ActorSalonOwner, true},
		{models.StatusPending, models.StatusCancelled, ActorBooker, true},
		{models.StatusPending, models.StatusConfirmed, ActorBooker, false},
		{models.StatusConfirmed, models.StatusCompleted, ActorAdmin, true},
		{models.StatusConfirmed, models.StatusPending, ActorSalonOwner, false},
		{models.StatusCompleted, models.StatusCancelled, ActorSalonOwner, false},
		{models.StatusCancelled, models.StatusPending, ActorAdmin, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StrictTransitions.Allow(tt.from, tt.to, tt.actor), "%s -> %s by %s", tt.from, tt.to, tt.actor)
	}

	reopening := TransitionTable{
		models.StatusCompleted: {ActorAdmin: {models.StatusPending}},
	}
	assert.False(t, reopening.Allow(models.StatusCompleted, models.StatusPending, ActorAdmin), "terminal states never leave")

	assert.True(t, PermissiveTransitions{}.Allow(models.StatusCompleted, models.StatusPending, ActorSalonOwner))
	assert.False(t, PermissiveTransitions{}.Allow(models.StatusPending, "archived", ActorSalonOwner))
}

func TestSetStatusErrors(t *testing.T) {
	f := newFixture(t, Options{})
	appt := f.book()

	_, err := f.svc.Appointments.SetStatus(f.ctx, appt.ID, models.StatusCancelled, models.Caller{})
	assert.Equal(t, utils.KindUnauthenticated, utils.KindOf(err))

	_, err = f.svc.Appointments.SetStatus(f.ctx, appt.ID, "archived", f.owner)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = f.svc.Appointments.SetStatus(f.ctx, 999, models.StatusConfirmed, f.owner)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	_, err = f.svc.Appointments.SetStatus(f.ctx, 999, "archived", f.owner)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err), "lookup comes before literal validation")

	_, err = f.svc.Appointments.SetStatus(f.ctx, appt.ID, models.StatusConfirmed, f.rival)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	_, err = f.svc.Appointments.SetStatus(f.ctx, appt.ID, models.StatusCancelled, f.other)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	updated, err := f.svc.Appointments.SetStatus(f.ctx, appt.ID, models.StatusConfirmed, f.admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
}
