package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"jamaluki-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func newSalon(ownerID uint, name string) *models.Salon {
	return &models.Salon{
		OwnerID:  ownerID,
		Name:     name,
		Address:  "King Fahd Rd",
		City:     "Riyadh",
		District: "Olaya",
		Phone:    "+966500000000",
		Status:   models.SalonStatusActive,
	}
}

// runStoreContract checks the behaviour every Store implementation shares.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("users", func(t *testing.T) {
		s := newStore(t)
		user := &models.User{Username: "sara", Password: "hash", FullName: "Sara", Phone: "+966511111111", UserType: models.RoleCustomer}
		require.NoError(t, s.CreateUser(ctx, user))
		assert.NotZero(t, user.ID)
		assert.False(t, user.CreatedAt.IsZero())

		got, err := s.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "sara", got.Username)
		assert.Equal(t, models.RoleCustomer, got.UserType)

		byName, err := s.GetUserByUsername(ctx, "sara")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byName.ID)

		_, err = s.GetUser(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.GetUserByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)

		dup := &models.User{Username: "sara", Password: "x", FullName: "Other", Phone: "+966522222222", UserType: models.RoleCustomer}
		assert.ErrorIs(t, s.CreateUser(ctx, dup), ErrDuplicate)

		updated, err := s.UpdateUser(ctx, user.ID, models.UserPatch{FullName: strPtr("Sara A.")})
		require.NoError(t, err)
		assert.Equal(t, "Sara A.", updated.FullName)
		assert.Equal(t, "+966511111111", updated.Phone)
	})

	t.Run("salon patch overrides only provided fields", func(t *testing.T) {
		s := newStore(t)
		salon := newSalon(1, "Lamsa")
		salon.OpeningHours = models.JSONB{"sat": "10:00-22:00"}
		require.NoError(t, s.CreateSalon(ctx, salon))

		updated, err := s.UpdateSalon(ctx, salon.ID, models.SalonPatch{
			Name:         strPtr("Lamsa Spa"),
			IsFemaleOnly: boolPtr(true),
		})
		require.NoError(t, err)
		assert.Equal(t, "Lamsa Spa", updated.Name)
		assert.True(t, updated.IsFemaleOnly)
		assert.Equal(t, "Riyadh", updated.City)
		assert.Equal(t, "10:00-22:00", updated.OpeningHours["sat"])

		got, err := s.GetSalon(ctx, salon.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lamsa Spa", got.Name)

		_, err = s.UpdateSalon(ctx, 999, models.SalonPatch{Name: strPtr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("salon rating and owner listing", func(t *testing.T) {
		s := newStore(t)
		a := newSalon(7, "A")
		b := newSalon(8, "B")
		c := newSalon(7, "C")
		for _, salon := range []*models.Salon{a, b, c} {
			require.NoError(t, s.CreateSalon(ctx, salon))
		}

		require.NoError(t, s.SetSalonRating(ctx, a.ID, 4, 3))
		got, err := s.GetSalon(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Rating)
		assert.Equal(t, 3, got.ReviewCount)
		assert.ErrorIs(t, s.SetSalonRating(ctx, 999, 1, 1), ErrNotFound)

		renamed, err := s.UpdateSalon(ctx, a.ID, models.SalonPatch{Name: strPtr("A2")})
		require.NoError(t, err)
		assert.Equal(t, 4, renamed.Rating)
		assert.Equal(t, 3, renamed.ReviewCount)

		require.NoError(t, s.LockSalon(ctx, a.ID))
		assert.ErrorIs(t, s.LockSalon(ctx, 999), ErrNotFound)
		require.NoError(t, s.WithTx(ctx, func(tx Store) error {
			if err := tx.LockSalon(ctx, a.ID); err != nil {
				return err
			}
			return tx.SetSalonRating(ctx, a.ID, 5, 4)
		}))
		got, err = s.GetSalon(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Rating)

		owned, err := s.ListSalonsByOwner(ctx, 7)
		require.NoError(t, err)
		require.Len(t, owned, 2)
		assert.Equal(t, a.ID, owned[0].ID)
		assert.Equal(t, c.ID, owned[1].ID)

		all, err := s.ListSalons(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("services and delete", func(t *testing.T) {
		s := newStore(t)
		category := &models.ServiceCategory{Name: "قص الشعر", NameEn: "Haircut"}
		require.NoError(t, s.CreateServiceCategory(ctx, category))
		_, err := s.GetServiceCategory(ctx, category.ID)
		require.NoError(t, err)

		empty, err := s.ListServices(ctx, 1)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		service := &models.Service{SalonID: 1, CategoryID: category.ID, Name: "Cut", Price: 100, DurationMinutes: 30, IsActive: true}
		require.NoError(t, s.CreateService(ctx, service))

		updated, err := s.UpdateService(ctx, service.ID, models.ServicePatch{Price: intPtr(120), IsActive: boolPtr(false)})
		require.NoError(t, err)
		assert.Equal(t, 120, updated.Price)
		assert.False(t, updated.IsActive)
		assert.Equal(t, 30, updated.DurationMinutes)

		deleted, err := s.DeleteService(ctx, service.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = s.DeleteService(ctx, service.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = s.GetService(ctx, service.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("special offers", func(t *testing.T) {
		s := newStore(t)
		now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		expired := &models.SpecialOffer{SalonID: 1, Title: "Eid", OriginalPrice: 200, DiscountedPrice: 150,
			StartDate: now.AddDate(0, 0, -10), EndDate: now.AddDate(0, 0, -1), IsActive: true}
		running := &models.SpecialOffer{SalonID: 1, Title: "Spring", OriginalPrice: 200, DiscountedPrice: 180,
			StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 5), IsActive: true}
		other := &models.SpecialOffer{SalonID: 2, Title: "Other", OriginalPrice: 100, DiscountedPrice: 90,
			StartDate: now, EndDate: now.AddDate(0, 0, 5), IsActive: true}
		for _, o := range []*models.SpecialOffer{expired, running, other} {
			require.NoError(t, s.CreateSpecialOffer(ctx, o))
		}

		n, err := s.DeactivateExpiredOffers(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		active, err := s.ListActiveSpecialOffersBySalon(ctx, 1)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, running.ID, active[0].ID)

		all, err := s.ListSpecialOffers(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		updated, err := s.UpdateSpecialOffer(ctx, running.ID, models.SpecialOfferPatch{Title: strPtr("Spring Sale")})
		require.NoError(t, err)
		assert.Equal(t, "Spring Sale", updated.Title)
		assert.Equal(t, 180, updated.DiscountedPrice)
	})

	t.Run("appointments", func(t *testing.T) {
		s := newStore(t)
		appt := &models.Appointment{UserID: 3, SalonID: 1, AppointmentDate: time.Now().Add(24 * time.Hour),
			Status: models.StatusPending, TotalPrice: 150, TotalDuration: 50, PaymentStatus: models.PaymentStatusPending}
		require.NoError(t, s.CreateAppointment(ctx, appt))
		require.NoError(t, s.CreateAppointmentService(ctx, &models.AppointmentService{AppointmentID: appt.ID, ServiceID: 1, Price: 100, DurationMinutes: 30}))
		require.NoError(t, s.CreateAppointmentService(ctx, &models.AppointmentService{AppointmentID: appt.ID, ServiceID: 2, Price: 50, DurationMinutes: 20}))

		lines, err := s.ListAppointmentServices(ctx, appt.ID)
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, 100, lines[0].Price)
		assert.Equal(t, 50, lines[1].Price)

		updated, err := s.UpdateAppointmentStatus(ctx, appt.ID, models.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, updated.Status)
		assert.Equal(t, 150, updated.TotalPrice)

		_, err = s.UpdateAppointmentStatus(ctx, 999, models.StatusConfirmed)
		assert.ErrorIs(t, err, ErrNotFound)

		byUser, err := s.ListAppointmentsByUser(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, byUser, 1)
		bySalon, err := s.ListAppointmentsBySalon(ctx, 2)
		require.NoError(t, err)
		assert.NotNil(t, bySalon)
		assert.Empty(t, bySalon)
	})

	t.Run("transaction commits together", func(t *testing.T) {
		s := newStore(t)
		salon := newSalon(1, "A")
		require.NoError(t, s.CreateSalon(ctx, salon))

		err := s.WithTx(ctx, func(tx Store) error {
			if err := tx.CreateReview(ctx, &models.Review{UserID: 2, SalonID: salon.ID, Rating: 5}); err != nil {
				return err
			}
			return tx.SetSalonRating(ctx, salon.ID, 5, 1)
		})
		require.NoError(t, err)

		reviews, err := s.ListReviews(ctx, salon.ID)
		require.NoError(t, err)
		assert.Len(t, reviews, 1)
		got, err := s.GetSalon(ctx, salon.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Rating)
	})

	t.Run("transaction rolls back on error", func(t *testing.T) {
		s := newStore(t)
		boom := errors.New("boom")

		err := s.WithTx(ctx, func(tx Store) error {
			appt := &models.Appointment{UserID: 3, SalonID: 1, AppointmentDate: time.Now(),
				Status: models.StatusPending, PaymentStatus: models.PaymentStatusPending}
			if err := tx.CreateAppointment(ctx, appt); err != nil {
				return err
			}
			if err := tx.CreateAppointmentService(ctx, &models.AppointmentService{AppointmentID: appt.ID, ServiceID: 1, Price: 10, DurationMinutes: 10}); err != nil {
				return err
			}
			// nested calls join the enclosing transaction
			return tx.WithTx(ctx, func(inner Store) error { return boom })
		})
		assert.ErrorIs(t, err, boom)

		appts, err := s.ListAppointmentsByUser(ctx, 3)
		require.NoError(t, err)
		assert.Empty(t, appts)
		lines, err := s.ListAppointmentServices(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}
