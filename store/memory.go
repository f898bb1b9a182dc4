package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"jamaluki-backend/models"
)

var _ Store = (*MemoryStore)(nil)

type memoryState struct {
	users        map[uint]models.User
	salons       map[uint]models.Salon
	categories   map[uint]models.ServiceCategory
	services     map[uint]models.Service
	offers       map[uint]models.SpecialOffer
	appointments map[uint]models.Appointment
	lines        map[uint]models.AppointmentService
	reviews      map[uint]models.Review

	// last issued id per table
	seq map[string]uint
}

func newMemoryState() *memoryState {
	return &memoryState{
		users:        make(map[uint]models.User),
		salons:       make(map[uint]models.Salon),
		categories:   make(map[uint]models.ServiceCategory),
		services:     make(map[uint]models.Service),
		offers:       make(map[uint]models.SpecialOffer),
		appointments: make(map[uint]models.Appointment),
		lines:        make(map[uint]models.AppointmentService),
		reviews:      make(map[uint]models.Review),
		seq:          make(map[string]uint),
	}
}

func (s *memoryState) clone() *memoryState {
	out := &memoryState{
		users:        cloneMap(s.users),
		salons:       make(map[uint]models.Salon, len(s.salons)),
		categories:   cloneMap(s.categories),
		services:     cloneMap(s.services),
		offers:       cloneMap(s.offers),
		appointments: cloneMap(s.appointments),
		lines:        cloneMap(s.lines),
		reviews:      cloneMap(s.reviews),
		seq:          make(map[string]uint, len(s.seq)),
	}
	for id, salon := range s.salons {
		out.salons[id] = cloneSalon(salon)
	}
	for k, v := range s.seq {
		out.seq[k] = v
	}
	return out
}

func (s *memoryState) nextID(table string) uint {
	s.seq[table]++
	return s.seq[table]
}

func cloneMap[T any](m map[uint]T) map[uint]T {
	out := make(map[uint]T, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSalon(s models.Salon) models.Salon {
	s.OpeningHours = s.OpeningHours.Clone()
	return s
}

func cloneReview(r models.Review) models.Review {
	if r.AppointmentID != nil {
		id := *r.AppointmentID
		r.AppointmentID = &id
	}
	return r
}

// sortedValues returns the values accepted by keep, ordered by id.
func sortedValues[T any](m map[uint]T, keep func(T) bool) []T {
	ids := make([]uint, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// MemoryStore keeps every table in maps with monotonic id counters. A
// transaction stages its writes on a copy of the state and swaps it in on
// success, holding the store lock throughout so readers never observe a
// partial write.
type MemoryStore struct {
	mu    *sync.Mutex // nil on transaction views
	state *memoryState
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu:    &sync.Mutex{},
		state: newMemoryState(),
		now:   time.Now,
	}
}

// SetClock overrides the timestamp source used for CreatedAt.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *MemoryStore) lock() func() {
	if s.mu == nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemoryStore) WithTx(_ context.Context, fn func(tx Store) error) error {
	if s.mu == nil {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.state.clone()
	view := &MemoryStore{state: staged, now: s.now}
	if err := fn(view); err != nil {
		return err
	}
	s.state = staged
	return nil
}

// Users

func (s *MemoryStore) GetUser(_ context.Context, id uint) (*models.User, error) {
	defer s.lock()()
	u, ok := s.state.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	defer s.lock()()
	for _, u := range s.state.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	defer s.lock()()
	for _, u := range s.state.users {
		if u.Username == user.Username {
			return ErrDuplicate
		}
	}
	user.ID = s.state.nextID("users")
	user.CreatedAt = s.now()
	s.state.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) UpdateUser(_ context.Context, id uint, patch models.UserPatch) (*models.User, error) {
	defer s.lock()()
	u, ok := s.state.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&u)
	s.state.users[id] = u
	return &u, nil
}

// Salons

func (s *MemoryStore) ListSalons(_ context.Context) ([]models.Salon, error) {
	defer s.lock()()
	out := sortedValues(s.state.salons, nil)
	for i := range out {
		out[i] = cloneSalon(out[i])
	}
	return out, nil
}

func (s *MemoryStore) GetSalon(_ context.Context, id uint) (*models.Salon, error) {
	defer s.lock()()
	salon, ok := s.state.salons[id]
	if !ok {
		return nil, ErrNotFound
	}
	salon = cloneSalon(salon)
	return &salon, nil
}

func (s *MemoryStore) ListSalonsByOwner(_ context.Context, ownerID uint) ([]models.Salon, error) {
	defer s.lock()()
	out := sortedValues(s.state.salons, func(v models.Salon) bool { return v.OwnerID == ownerID })
	for i := range out {
		out[i] = cloneSalon(out[i])
	}
	return out, nil
}

func (s *MemoryStore) CreateSalon(_ context.Context, salon *models.Salon) error {
	defer s.lock()()
	salon.ID = s.state.nextID("salons")
	salon.CreatedAt = s.now()
	s.state.salons[salon.ID] = cloneSalon(*salon)
	return nil
}

func (s *MemoryStore) UpdateSalon(_ context.Context, id uint, patch models.SalonPatch) (*models.Salon, error) {
	defer s.lock()()
	salon, ok := s.state.salons[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&salon)
	s.state.salons[id] = salon
	out := cloneSalon(salon)
	return &out, nil
}

// LockSalon only checks existence: transactions on a MemoryStore already run
// one at a time.
func (s *MemoryStore) LockSalon(_ context.Context, id uint) error {
	defer s.lock()()
	if _, ok := s.state.salons[id]; !ok {
		return ErrNotFound
	}
	return nil
}

func (s *MemoryStore) SetSalonRating(_ context.Context, id uint, rating, reviewCount int) error {
	defer s.lock()()
	salon, ok := s.state.salons[id]
	if !ok {
		return ErrNotFound
	}
	salon.Rating = rating
	salon.ReviewCount = reviewCount
	s.state.salons[id] = salon
	return nil
}

// Catalog

func (s *MemoryStore) ListServiceCategories(_ context.Context) ([]models.ServiceCategory, error) {
	defer s.lock()()
	return sortedValues(s.state.categories, nil), nil
}

func (s *MemoryStore) GetServiceCategory(_ context.Context, id uint) (*models.ServiceCategory, error) {
	defer s.lock()()
	c, ok := s.state.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) CreateServiceCategory(_ context.Context, category *models.ServiceCategory) error {
	defer s.lock()()
	category.ID = s.state.nextID("service_categories")
	s.state.categories[category.ID] = *category
	return nil
}

func (s *MemoryStore) ListServices(_ context.Context, salonID uint) ([]models.Service, error) {
	defer s.lock()()
	return sortedValues(s.state.services, func(v models.Service) bool { return v.SalonID == salonID }), nil
}

func (s *MemoryStore) GetService(_ context.Context, id uint) (*models.Service, error) {
	defer s.lock()()
	svc, ok := s.state.services[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &svc, nil
}

func (s *MemoryStore) CreateService(_ context.Context, service *models.Service) error {
	defer s.lock()()
	service.ID = s.state.nextID("services")
	service.CreatedAt = s.now()
	s.state.services[service.ID] = *service
	return nil
}

func (s *MemoryStore) UpdateService(_ context.Context, id uint, patch models.ServicePatch) (*models.Service, error) {
	defer s.lock()()
	svc, ok := s.state.services[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&svc)
	s.state.services[id] = svc
	return &svc, nil
}

func (s *MemoryStore) DeleteService(_ context.Context, id uint) (bool, error) {
	defer s.lock()()
	if _, ok := s.state.services[id]; !ok {
		return false, nil
	}
	delete(s.state.services, id)
	return true, nil
}

// Special offers

func (s *MemoryStore) ListSpecialOffers(_ context.Context) ([]models.SpecialOffer, error) {
	defer s.lock()()
	return sortedValues(s.state.offers, nil), nil
}

func (s *MemoryStore) ListActiveSpecialOffersBySalon(_ context.Context, salonID uint) ([]models.SpecialOffer, error) {
	defer s.lock()()
	return sortedValues(s.state.offers, func(v models.SpecialOffer) bool {
		return v.SalonID == salonID && v.IsActive
	}), nil
}

func (s *MemoryStore) GetSpecialOffer(_ context.Context, id uint) (*models.SpecialOffer, error) {
	defer s.lock()()
	o, ok := s.state.offers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (s *MemoryStore) CreateSpecialOffer(_ context.Context, offer *models.SpecialOffer) error {
	defer s.lock()()
	offer.ID = s.state.nextID("special_offers")
	offer.CreatedAt = s.now()
	s.state.offers[offer.ID] = *offer
	return nil
}

func (s *MemoryStore) UpdateSpecialOffer(_ context.Context, id uint, patch models.SpecialOfferPatch) (*models.SpecialOffer, error) {
	defer s.lock()()
	o, ok := s.state.offers[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&o)
	s.state.offers[id] = o
	return &o, nil
}

func (s *MemoryStore) DeactivateExpiredOffers(_ context.Context, now time.Time) (int64, error) {
	defer s.lock()()
	var n int64
	for id, o := range s.state.offers {
		if o.IsActive && o.EndDate.Before(now) {
			o.IsActive = false
			s.state.offers[id] = o
			n++
		}
	}
	return n, nil
}

// Appointments

func (s *MemoryStore) ListAppointmentsByUser(_ context.Context, userID uint) ([]models.Appointment, error) {
	defer s.lock()()
	return sortedValues(s.state.appointments, func(v models.Appointment) bool { return v.UserID == userID }), nil
}

func (s *MemoryStore) ListAppointmentsBySalon(_ context.Context, salonID uint) ([]models.Appointment, error) {
	defer s.lock()()
	return sortedValues(s.state.appointments, func(v models.Appointment) bool { return v.SalonID == salonID }), nil
}

func (s *MemoryStore) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	defer s.lock()()
	a, ok := s.state.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (s *MemoryStore) CreateAppointment(_ context.Context, appointment *models.Appointment) error {
	defer s.lock()()
	appointment.ID = s.state.nextID("appointments")
	appointment.CreatedAt = s.now()
	s.state.appointments[appointment.ID] = *appointment
	return nil
}

func (s *MemoryStore) UpdateAppointmentStatus(_ context.Context, id uint, status models.AppointmentStatus) (*models.Appointment, error) {
	defer s.lock()()
	a, ok := s.state.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.Status = status
	s.state.appointments[id] = a
	return &a, nil
}

func (s *MemoryStore) CreateAppointmentService(_ context.Context, line *models.AppointmentService) error {
	defer s.lock()()
	if _, ok := s.state.appointments[line.AppointmentID]; !ok {
		return ErrNotFound
	}
	line.ID = s.state.nextID("appointment_services")
	s.state.lines[line.ID] = *line
	return nil
}

func (s *MemoryStore) ListAppointmentServices(_ context.Context, appointmentID uint) ([]models.AppointmentService, error) {
	defer s.lock()()
	return sortedValues(s.state.lines, func(v models.AppointmentService) bool {
		return v.AppointmentID == appointmentID
	}), nil
}

// Reviews

func (s *MemoryStore) ListReviews(_ context.Context, salonID uint) ([]models.Review, error) {
	defer s.lock()()
	out := sortedValues(s.state.reviews, func(v models.Review) bool { return v.SalonID == salonID })
	for i := range out {
		out[i] = cloneReview(out[i])
	}
	return out, nil
}

func (s *MemoryStore) CreateReview(_ context.Context, review *models.Review) error {
	defer s.lock()()
	review.ID = s.state.nextID("reviews")
	review.CreatedAt = s.now()
	s.state.reviews[review.ID] = cloneReview(*review)
	return nil
}
