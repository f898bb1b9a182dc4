// Package store is the persistence gateway: keyed CRUD per entity with
// server-assigned ids and creation timestamps. MemoryStore and GormStore
// satisfy the same contract and are interchangeable.
package store

import (
	"context"
	"errors"
	"time"

	"jamaluki-backend/models"
)

// ErrNotFound is returned by reads and updates of an id that does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique key (such as a username) is taken.
var ErrDuplicate = errors.New("duplicate record")

type Store interface {
	UserStore
	SalonStore
	CatalogStore
	OfferStore
	AppointmentStore
	ReviewStore

	// WithTx runs fn against a transactional view of the store. Writes made
	// through tx become visible together when fn returns nil and are
	// discarded when it returns an error. Calling WithTx on a view runs fn
	// inside the enclosing transaction.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

type UserStore interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error)
}

type SalonStore interface {
	ListSalons(ctx context.Context) ([]models.Salon, error)
	GetSalon(ctx context.Context, id uint) (*models.Salon, error)
	ListSalonsByOwner(ctx context.Context, ownerID uint) ([]models.Salon, error)
	CreateSalon(ctx context.Context, salon *models.Salon) error
	UpdateSalon(ctx context.Context, id uint, patch models.SalonPatch) (*models.Salon, error)
	// LockSalon serializes writers of a salon's derived fields until the
	// enclosing transaction ends.
	LockSalon(ctx context.Context, id uint) error
	// SetSalonRating writes the derived rating fields.
	SetSalonRating(ctx context.Context, id uint, rating, reviewCount int) error
}

type CatalogStore interface {
	ListServiceCategories(ctx context.Context) ([]models.ServiceCategory, error)
	GetServiceCategory(ctx context.Context, id uint) (*models.ServiceCategory, error)
	CreateServiceCategory(ctx context.Context, category *models.ServiceCategory) error

	ListServices(ctx context.Context, salonID uint) ([]models.Service, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	CreateService(ctx context.Context, service *models.Service) error
	UpdateService(ctx context.Context, id uint, patch models.ServicePatch) (*models.Service, error)
	// DeleteService reports whether a row existed and was removed.
	DeleteService(ctx context.Context, id uint) (bool, error)
}

type OfferStore interface {
	ListSpecialOffers(ctx context.Context) ([]models.SpecialOffer, error)
	// ListActiveSpecialOffersBySalon returns only offers with IsActive set.
	ListActiveSpecialOffersBySalon(ctx context.Context, salonID uint) ([]models.SpecialOffer, error)
	GetSpecialOffer(ctx context.Context, id uint) (*models.SpecialOffer, error)
	CreateSpecialOffer(ctx context.Context, offer *models.SpecialOffer) error
	UpdateSpecialOffer(ctx context.Context, id uint, patch models.SpecialOfferPatch) (*models.SpecialOffer, error)
	// DeactivateExpiredOffers clears IsActive on active offers whose end
	// date is before now and returns how many changed.
	DeactivateExpiredOffers(ctx context.Context, now time.Time) (int64, error)
}

type AppointmentStore interface {
	ListAppointmentsByUser(ctx context.Context, userID uint) ([]models.Appointment, error)
	ListAppointmentsBySalon(ctx context.Context, salonID uint) ([]models.Appointment, error)
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, appointment *models.Appointment) error
	UpdateAppointmentStatus(ctx context.Context, id uint, status models.AppointmentStatus) (*models.Appointment, error)

	CreateAppointmentService(ctx context.Context, line *models.AppointmentService) error
	ListAppointmentServices(ctx context.Context, appointmentID uint) ([]models.AppointmentService, error)
}

type ReviewStore interface {
	ListReviews(ctx context.Context, salonID uint) ([]models.Review, error)
	CreateReview(ctx context.Context, review *models.Review) error
}
