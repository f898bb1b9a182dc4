package services

import (
	"context"
	"fmt"

	"jamaluki-backend/models"
	"jamaluki-backend/utils"

	"github.com/sirupsen/logrus"
)

// TransitionPolicy decides whether actor may move an appointment from one
// status to another. Role checks have already passed when it is consulted.
type TransitionPolicy interface {
	Allow(from, to models.AppointmentStatus, actor Actor) bool
}

// PermissiveTransitions accepts any known status regardless of the current one.
type PermissiveTransitions struct{}

func (PermissiveTransitions) Allow(_, to models.AppointmentStatus, _ Actor) bool {
	return to.Valid()
}

// TransitionTable maps a current status and an actor to the statuses that
// actor may request.
type TransitionTable map[models.AppointmentStatus]map[Actor][]models.AppointmentStatus

// StrictTransitions enforces the appointment state diagram: pending moves to
// confirmed or cancelled, confirmed to completed or cancelled, and the
// terminal states never change.
var StrictTransitions = TransitionTable{
	models.StatusPending: {
		ActorSalonOwner: {models.StatusConfirmed, models.StatusCancelled},
		ActorAdmin:      {models.StatusConfirmed, models.StatusCancelled},
		ActorBooker:     {models.StatusCancelled},
	},
	models.StatusConfirmed: {
		ActorSalonOwner: {models.StatusCompleted, models.StatusCancelled},
		ActorAdmin:      {models.StatusCompleted, models.StatusCancelled},
		ActorBooker:     {models.StatusCancelled},
	},
}

func (t TransitionTable) Allow(from, to models.AppointmentStatus, actor Actor) bool {
	if from.Terminal() {
		return false
	}
	for _, allowed := range t[from][actor] {
		if allowed == to {
			return true
		}
	}
	return false
}

// SetStatus validates and applies a status change requested by caller.
func (s *AppointmentService) SetStatus(ctx context.Context, id uint, requested models.AppointmentStatus, caller models.Caller) (*models.Appointment, error) {
	if err := requireAuth(caller); err != nil {
		return nil, err
	}

	appointment, salon, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !requested.Valid() {
		return nil, utils.NewValidationError("Invalid status", map[string]string{
			"status": "must be one of: pending confirmed completed cancelled",
		})
	}
	actor, err := CanSetAppointmentStatus(caller, appointment, salon, requested)
	if err != nil {
		return nil, err
	}
	if !s.transitions.Allow(appointment.Status, requested, actor) {
		return nil, utils.NewConflictError(fmt.Sprintf("Cannot change appointment status from %s to %s", appointment.Status, requested))
	}

	previous := appointment.Status
	updated, err := s.store.UpdateAppointmentStatus(ctx, id, requested)
	if err != nil {
		return nil, lookupError(err, "Appointment")
	}

	logrus.WithFields(logrus.Fields{
		"appointment_id": id,
		"from":           previous,
		"to":             requested,
		"actor":          actor,
		"user_id":        caller.UserID,
	}).Info("Appointment status changed")
	return updated, nil
}
