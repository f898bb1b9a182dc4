// Package services holds the business rules: the authorization guard, the
// appointment composer, the status transition engine, the rating aggregator
// and the per-resource services built on them. Every service depends only on
// store.Store.
package services

import (
	"errors"
	"time"

	"jamaluki-backend/store"
	"jamaluki-backend/utils"
)

type Options struct {
	// Totals decides whether client-computed appointment totals are trusted.
	Totals TotalsPolicy
	// Transitions decides which status changes are allowed.
	Transitions TransitionPolicy

	JWTSecret string
	JWTExpiry time.Duration

	Now func() time.Time
}

// Services bundles every service over one store.
type Services struct {
	Auth         *AuthService
	Salons       *SalonService
	Catalog      *CatalogService
	Offers       *OfferService
	Appointments *AppointmentService
	Reviews      *ReviewService
	Dashboard    *DashboardService
}

func New(s store.Store, opts Options) *Services {
	if opts.Totals == nil {
		opts.Totals = TrustClientTotals{}
	}
	if opts.Transitions == nil {
		opts.Transitions = PermissiveTransitions{}
	}
	if opts.JWTExpiry <= 0 {
		opts.JWTExpiry = 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Services{
		Auth:         NewAuthService(s, opts.JWTSecret, opts.JWTExpiry),
		Salons:       NewSalonService(s),
		Catalog:      NewCatalogService(s),
		Offers:       NewOfferService(s, opts.Now),
		Appointments: NewAppointmentService(s, opts.Totals, opts.Transitions),
		Reviews:      NewReviewService(s),
		Dashboard:    NewDashboardService(s, opts.Now),
	}
}

// lookupError converts a failed read of resource into NotFound or Internal.
func lookupError(err error, resource string) error {
	if errors.Is(err, store.ErrNotFound) {
		return utils.NewNotFoundError(resource)
	}
	return utils.NewInternalError("Failed to load "+resource, err)
}

// writeError passes AppErrors through and wraps anything else as Internal.
func writeError(err error, message string) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return utils.NewInternalError(message, err)
}
