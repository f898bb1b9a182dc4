package services

import (
	"context"
	"time"

	"jamaluki-backend/models"
	"jamaluki-backend/store"
	"jamaluki-backend/utils"
)

type DashboardOverview struct {
	SalonID           uint `json:"salonId"`
	TodayAppointments int  `json:"todayAppointments"`
	TodayRevenue      int  `json:"todayRevenue"`
	Rating            int  `json:"rating"`
	ReviewCount       int  `json:"reviewCount"`
}

type DashboardService struct {
	store store.Store
	now   func() time.Time
}

func NewDashboardService(s store.Store, now func() time.Time) *DashboardService {
	return &DashboardService{store: s, now: now}
}

// Overview summarises today's activity for a salon. Cancelled appointments
// are not counted and only completed ones contribute revenue.
func (s *DashboardService) Overview(ctx context.Context, salonID uint, caller models.Caller) (*DashboardOverview, error) {
	if err := requireAuth(caller); err != nil {
		return nil, err
	}
	salon, err := s.store.GetSalon(ctx, salonID)
	if err != nil {
		return nil, lookupError(err, "Salon")
	}
	if err := CanViewDashboard(caller, salon); err != nil {
		return nil, err
	}

	appointments, err := s.store.ListAppointmentsBySalon(ctx, salonID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch appointments", err)
	}

	now := s.now()
	overview := &DashboardOverview{
		SalonID:     salon.ID,
		Rating:      salon.Rating,
		ReviewCount: salon.ReviewCount,
	}
	for _, a := range appointments {
		if !utils.SameDay(now, a.AppointmentDate) {
			continue
		}
		if a.Status != models.StatusCancelled {
			overview.TodayAppointments++
		}
		if a.Status == models.StatusCompleted {
			overview.TodayRevenue += a.TotalPrice
		}
	}
	return overview, nil
}
