package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"jamaluki-backend/models"
	"jamaluki-backend/store"
	"jamaluki-backend/utils"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	utils.BcryptCost = bcrypt.MinCost
}

var testNow = time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *store.MemoryStore
	svc   *Services

	customer models.Caller
	other    models.Caller
	owner    models.Caller
	rival    models.Caller
	admin    models.Caller

	salon      *models.Salon
	rivalSalon *models.Salon
	category   *models.ServiceCategory
	cut        *models.Service
	wash       *models.Service
	rivalCut   *models.Service
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	s := store.NewMemoryStore()
	s.SetClock(func() time.Time { return testNow })
	return newFixtureOn(t, s, s, opts)
}

// newFixtureOn seeds data through mem and builds the services over svcStore,
// which may wrap mem.
func newFixtureOn(t *testing.T, mem *store.MemoryStore, svcStore store.Store, opts Options) *fixture {
	t.Helper()
	if opts.JWTSecret == "" {
		opts.JWTSecret = "test-secret"
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}

	f := &fixture{
		t:        t,
		ctx:      context.Background(),
		store:    mem,
		svc:      New(svcStore, opts),
		customer: seedUser(t, mem, "customer1", models.RoleCustomer),
		other:    seedUser(t, mem, "customer2", models.RoleCustomer),
		owner:    seedUser(t, mem, "owner1", models.RoleSalonOwner),
		rival:    seedUser(t, mem, "owner2", models.RoleSalonOwner),
		admin:    seedUser(t, mem, "admin", models.RoleAdmin),
	}

	f.salon = f.createSalon(f.owner.UserID, "Lamsa")
	f.rivalSalon = f.createSalon(f.rival.UserID, "Rival")

	f.category = &models.ServiceCategory{Name: "قص الشعر", NameEn: "Haircut", Icon: "content_cut"}
	require.NoError(t, mem.CreateServiceCategory(f.ctx, f.category))

	f.cut = f.createService(f.salon.ID, "Cut", 100, 30)
	f.wash = f.createService(f.salon.ID, "Wash", 50, 20)
	f.rivalCut = f.createService(f.rivalSalon.ID, "Rival cut", 80, 25)
	return f
}

func seedUser(t *testing.T, s *store.MemoryStore, username string, role models.Role) models.Caller {
	t.Helper()
	u := &models.User{Username: username, Password: "x", FullName: username, Phone: "+966500000000", UserType: role}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return models.Caller{UserID: u.ID, Role: role}
}

func (f *fixture) createSalon(ownerID uint, name string) *models.Salon {
	salon := &models.Salon{OwnerID: ownerID, Name: name, Address: "a", City: "Riyadh", District: "d",
		Phone: "+966500000000", Status: models.SalonStatusActive}
	require.NoError(f.t, f.store.CreateSalon(f.ctx, salon))
	return salon
}

func (f *fixture) createService(salonID uint, name string, price, duration int) *models.Service {
	service := &models.Service{SalonID: salonID, CategoryID: f.category.ID, Name: name, Price: price,
		DurationMinutes: duration, IsActive: true}
	require.NoError(f.t, f.store.CreateService(f.ctx, service))
	return service
}

// bookingInput selects cut and wash at the given totals.
func (f *fixture) bookingInput(totalPrice, totalDuration int) CreateAppointmentInput {
	return CreateAppointmentInput{
		AppointmentData: AppointmentDraft{
			SalonID:         f.salon.ID,
			AppointmentDate: testNow.Add(2 * time.Hour),
			TotalPrice:      totalPrice,
			TotalDuration:   totalDuration,
			PaymentMethod:   "cash",
		},
		Services: []ServiceLine{
			{ServiceID: f.cut.ID, Price: 100, DurationMinutes: 30},
			{ServiceID: f.wash.ID, Price: 50, DurationMinutes: 20},
		},
	}
}

func (f *fixture) book() *models.Appointment {
	appt, err := f.svc.Appointments.Create(f.ctx, f.bookingInput(150, 50), f.customer)
	require.NoError(f.t, err)
	return appt
}

// faultyStore fails the n-th appointment line write made inside a
// transaction.
type faultyStore struct {
	store.Store
	failOnLine int
	lines      int
}

var errInjected = errors.New("injected failure")

func (s *faultyStore) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	return s.Store.WithTx(ctx, func(tx store.Store) error {
		return fn(&faultyTx{Store: tx, parent: s})
	})
}

type faultyTx struct {
	store.Store
	parent *faultyStore
}

func (tx *faultyTx) CreateAppointmentService(ctx context.Context, line *models.AppointmentService) error {
	tx.parent.lines++
	if tx.parent.lines == tx.parent.failOnLine {
		return errInjected
	}
	return tx.Store.CreateAppointmentService(ctx, line)
}
