package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"jamaluki-backend/models"
	"jamaluki-backend/store"
	"jamaluki-backend/utils"

	"github.com/sirupsen/logrus"
)

// AppointmentDraft is the client-supplied part of a new appointment. Status,
// payment status and the booker are set by the server.
type AppointmentDraft struct {
	SalonID            uint      `json:"salonId" validate:"required"`
	AppointmentDate    time.Time `json:"appointmentDate" validate:"required"`
	TotalPrice         int       `json:"totalPrice" validate:"gte=0"`
	TotalDuration      int       `json:"totalDuration" validate:"gte=0"`
	RequestFemaleStaff bool      `json:"requestFemaleStaff"`
	RequestPrivateRoom bool      `json:"requestPrivateRoom"`
	PaymentMethod      string    `json:"paymentMethod" validate:"omitempty,oneof=mada credit_card cash"`
	Notes              string    `json:"notes"`
}

// ServiceLine is one selected service with the price and duration shown to
// the customer when booking.
type ServiceLine struct {
	ServiceID       uint `json:"serviceId" validate:"required"`
	Price           int  `json:"price" validate:"gte=0"`
	DurationMinutes int  `json:"durationMinutes" validate:"gt=0"`
}

type CreateAppointmentInput struct {
	AppointmentData AppointmentDraft `json:"appointmentData" validate:"required"`
	Services        []ServiceLine    `json:"services" validate:"required,min=1,dive"`
}

// TotalsPolicy checks the client-computed totals against the line items.
type TotalsPolicy interface {
	CheckTotals(draft AppointmentDraft, lines []ServiceLine) error
}

// TrustClientTotals accepts whatever totals the client sent.
type TrustClientTotals struct{}

func (TrustClientTotals) CheckTotals(AppointmentDraft, []ServiceLine) error { return nil }

// RecomputeTotals rejects drafts whose totals differ from the sum of the lines.
type RecomputeTotals struct{}

func (RecomputeTotals) CheckTotals(draft AppointmentDraft, lines []ServiceLine) error {
	price, duration := 0, 0
	for _, l := range lines {
		price += l.Price
		duration += l.DurationMinutes
	}

	fields := map[string]string{}
	if draft.TotalPrice != price {
		fields["appointmentData.totalPrice"] = fmt.Sprintf("must equal the sum of service prices (%d)", price)
	}
	if draft.TotalDuration != duration {
		fields["appointmentData.totalDuration"] = fmt.Sprintf("must equal the sum of service durations (%d)", duration)
	}
	if len(fields) > 0 {
		return utils.NewValidationError("Appointment totals do not match its services", fields)
	}
	return nil
}

type AppointmentService struct {
	store       store.Store
	totals      TotalsPolicy
	transitions TransitionPolicy
}

func NewAppointmentService(s store.Store, totals TotalsPolicy, transitions TransitionPolicy) *AppointmentService {
	return &AppointmentService{store: s, totals: totals, transitions: transitions}
}

// Create books an appointment for the caller. The appointment and its line
// items are written in one transaction.
func (s *AppointmentService) Create(ctx context.Context, input CreateAppointmentInput, caller models.Caller) (*models.Appointment, error) {
	if err := CanCreateAppointment(caller); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(input, "Invalid appointment"); err != nil {
		return nil, err
	}

	draft := input.AppointmentData
	if _, err := s.store.GetSalon(ctx, draft.SalonID); err != nil {
		return nil, lookupError(err, "Salon")
	}
	if err := s.checkLines(ctx, draft.SalonID, input.Services); err != nil {
		return nil, err
	}
	if err := s.totals.CheckTotals(draft, input.Services); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		UserID:             caller.UserID,
		SalonID:            draft.SalonID,
		AppointmentDate:    draft.AppointmentDate,
		Status:             models.StatusPending,
		TotalPrice:         draft.TotalPrice,
		TotalDuration:      draft.TotalDuration,
		RequestFemaleStaff: draft.RequestFemaleStaff,
		RequestPrivateRoom: draft.RequestPrivateRoom,
		PaymentMethod:      draft.PaymentMethod,
		PaymentStatus:      models.PaymentStatusPending,
		Notes:              draft.Notes,
	}

	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.CreateAppointment(ctx, appointment); err != nil {
			return err
		}
		for _, l := range input.Services {
			line := &models.AppointmentService{
				AppointmentID:   appointment.ID,
				ServiceID:       l.ServiceID,
				Price:           l.Price,
				DurationMinutes: l.DurationMinutes,
			}
			if err := tx.CreateAppointmentService(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, writeError(err, "Failed to create appointment")
	}

	logrus.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"salon_id":       appointment.SalonID,
		"user_id":        appointment.UserID,
		"services":       len(input.Services),
	}).Info("Appointment created")
	return appointment, nil
}

// checkLines requires every line to reference an existing service of salonID.
func (s *AppointmentService) checkLines(ctx context.Context, salonID uint, lines []ServiceLine) error {
	fields := map[string]string{}
	for i, l := range lines {
		key := fmt.Sprintf("services[%d].serviceId", i)
		service, err := s.store.GetService(ctx, l.ServiceID)
		if err != nil {
			if err := lookupError(err, "Service"); !utils.IsKind(err, utils.KindNotFound) {
				return err
			}
			fields[key] = "unknown service"
			continue
		}
		if service.SalonID != salonID {
			fields[key] = "service does not belong to this salon"
		}
	}
	if len(fields) > 0 {
		return utils.NewValidationError("Invalid appointment services", fields)
	}
	return nil
}

// ListForCaller returns the caller's bookings for a customer and the
// appointments of every owned salon for a salon owner.
func (s *AppointmentService) ListForCaller(ctx context.Context, caller models.Caller) ([]models.Appointment, error) {
	if err := CanListAppointments(caller); err != nil {
		return nil, err
	}

	if caller.Role == models.RoleCustomer {
		appointments, err := s.store.ListAppointmentsByUser(ctx, caller.UserID)
		if err != nil {
			return nil, utils.NewInternalError("Failed to fetch appointments", err)
		}
		return appointments, nil
	}

	salons, err := s.store.ListSalonsByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch salons", err)
	}
	appointments := []models.Appointment{}
	for _, salon := range salons {
		batch, err := s.store.ListAppointmentsBySalon(ctx, salon.ID)
		if err != nil {
			return nil, utils.NewInternalError("Failed to fetch appointments", err)
		}
		appointments = append(appointments, batch...)
	}
	sort.Slice(appointments, func(i, j int) bool { return appointments[i].ID < appointments[j].ID })
	return appointments, nil
}

// Get returns an appointment with its line items.
func (s *AppointmentService) Get(ctx context.Context, id uint, caller models.Caller) (*models.AppointmentDetail, error) {
	if err := requireAuth(caller); err != nil {
		return nil, err
	}
	appointment, salon, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CanViewAppointment(caller, appointment, salon); err != nil {
		return nil, err
	}

	lines, err := s.store.ListAppointmentServices(ctx, id)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch appointment services", err)
	}
	return &models.AppointmentDetail{Appointment: *appointment, Services: lines}, nil
}

// load fetches an appointment and its salon. A missing salon yields nil so
// ownership checks fail closed.
func (s *AppointmentService) load(ctx context.Context, id uint) (*models.Appointment, *models.Salon, error) {
	appointment, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, nil, lookupError(err, "Appointment")
	}
	salon, err := s.store.GetSalon(ctx, appointment.SalonID)
	if err != nil {
		if err := lookupError(err, "Salon"); !utils.IsKind(err, utils.KindNotFound) {
			return nil, nil, err
		}
	}
	return appointment, salon, nil
}
