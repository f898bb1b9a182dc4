package services

import (
	"jamaluki-backend/models"
	"jamaluki-backend/utils"
)

// The guard functions below are pure: they inspect the caller and the
// ownership fields of already-loaded resources and return nil (allow) or an
// unauthenticated/forbidden AppError (deny).

// Actor is the relationship between a caller and an appointment.
type Actor string

const (
	ActorBooker     Actor = "booker"
	ActorSalonOwner Actor = "salon_owner"
	ActorAdmin      Actor = "admin"
)

func requireAuth(c models.Caller) error {
	if !c.Authenticated() {
		return utils.NewUnauthenticatedError("Authentication required")
	}
	return nil
}

func ownsSalon(c models.Caller, salon *models.Salon) bool {
	return salon != nil && c.Authenticated() && salon.OwnerID == c.UserID
}

func CanCreateSalon(c models.Caller) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	if c.Role != models.RoleSalonOwner {
		return utils.NewForbiddenError("Only salon owners can create salons")
	}
	return nil
}

func CanUpdateSalon(c models.Caller, salon *models.Salon) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	if !ownsSalon(c, salon) && c.Role != models.RoleAdmin {
		return utils.NewForbiddenError("You can only update your own salon")
	}
	return nil
}

// CanManageService covers service create, update and delete against the
// salon the service belongs to.
func CanManageService(c models.Caller, salon *models.Salon) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	if !ownsSalon(c, salon) {
		return utils.NewForbiddenError("You can only manage services of your own salon")
	}
	return nil
}

func CanManageOffer(c models.Caller, salon *models.Salon) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	if !ownsSalon(c, salon) {
		return utils.NewForbiddenError("You can only manage offers of your own salon")
	}
	return nil
}

func CanCreateAppointment(c models.Caller) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	if c.Role != models.RoleCustomer {
		return utils.NewForbiddenError("Only customers can book appointments")
	}
	return nil
}

func CanListAppointments(c models.Caller) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	if c.Role != models.RoleCustomer && c.Role != models.RoleSalonOwner {
		return utils.NewForbiddenError("Appointment listing is limited to customers and salon owners")
	}
	return nil
}

func CanViewAppointment(c models.Caller, appt *models.Appointment, salon *models.Salon) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	if appt.UserID == c.UserID || ownsSalon(c, salon) || c.Role == models.RoleAdmin {
		return nil
	}
	return utils.NewForbiddenError("You do not have access to this appointment")
}

// CanSetAppointmentStatus returns the capacity in which the caller may change
// the appointment. A booker may only cancel.
func CanSetAppointmentStatus(c models.Caller, appt *models.Appointment, salon *models.Salon, requested models.AppointmentStatus) (Actor, error) {
	if err := requireAuth(c); err != nil {
		return "", err
	}
	switch {
	case ownsSalon(c, salon):
		return ActorSalonOwner, nil
	case c.Role == models.RoleAdmin:
		return ActorAdmin, nil
	case appt.UserID == c.UserID:
		if requested != models.StatusCancelled {
			return "", utils.NewForbiddenError("Customers can only cancel their appointments")
		}
		return ActorBooker, nil
	}
	return "", utils.NewForbiddenError("You do not have access to this appointment")
}

// CanCreateReview checks the caller and, when the review references one, the
// appointment it is attached to.
func CanCreateReview(c models.Caller, appt *models.Appointment) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	if c.Role != models.RoleCustomer {
		return utils.NewForbiddenError("Only customers can write reviews")
	}
	if appt != nil && appt.UserID != c.UserID {
		return utils.NewForbiddenError("You can only review your own appointments")
	}
	return nil
}

func CanViewDashboard(c models.Caller, salon *models.Salon) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	if !ownsSalon(c, salon) && c.Role != models.RoleAdmin {
		return utils.NewForbiddenError("You can only view your own salon's dashboard")
	}
	return nil
}
