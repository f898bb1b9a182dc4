package store

import (
	"context"
	"errors"
	"reflect"
	"time"

	"jamaluki-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ Store = (*GormStore)(nil)

// GormStore is the relational implementation used in production.
type GormStore struct {
	db   *gorm.DB
	inTx bool
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Models lists every table the store reads or writes, in migration order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Salon{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.SpecialOffer{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.Review{},
	}
}

func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(Models()...)
}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

func (s *GormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}

	// Start transaction
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&GormStore{db: tx, inTx: true}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// updateFields writes only the columns the patch set, so columns owned by
// other writers (rating, review_count, loyalty_points) are never rewritten
// from a stale read.
func (s *GormStore) updateFields(ctx context.Context, model, patch interface{}) error {
	fields := patchedFields(patch)
	if len(fields) == 0 {
		return nil
	}
	return translate(s.conn(ctx).Model(model).Select(fields).Updates(model).Error)
}

// patchedFields names the non-nil fields of a patch struct. Patch fields
// share their names with the model fields they overwrite.
func patchedFields(patch interface{}) []string {
	v := reflect.ValueOf(patch)
	var fields []string
	for i := 0; i < v.NumField(); i++ {
		switch f := v.Field(i); f.Kind() {
		case reflect.Ptr, reflect.Map:
			if !f.IsNil() {
				fields = append(fields, v.Type().Field(i).Name)
			}
		}
	}
	return fields
}

// Users

func (s *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.conn(ctx).Create(user).Error)
}

func (s *GormStore) UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(user)
	if err := s.updateFields(ctx, user, patch); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// Salons

func (s *GormStore) ListSalons(ctx context.Context) ([]models.Salon, error) {
	salons := []models.Salon{}
	err := s.conn(ctx).Order("id").Find(&salons).Error
	return salons, err
}

func (s *GormStore) GetSalon(ctx context.Context, id uint) (*models.Salon, error) {
	var salon models.Salon
	if err := s.conn(ctx).First(&salon, id).Error; err != nil {
		return nil, translate(err)
	}
	return &salon, nil
}

func (s *GormStore) ListSalonsByOwner(ctx context.Context, ownerID uint) ([]models.Salon, error) {
	salons := []models.Salon{}
	err := s.conn(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&salons).Error
	return salons, err
}

func (s *GormStore) CreateSalon(ctx context.Context, salon *models.Salon) error {
	return translate(s.conn(ctx).Create(salon).Error)
}

func (s *GormStore) UpdateSalon(ctx context.Context, id uint, patch models.SalonPatch) (*models.Salon, error) {
	salon, err := s.GetSalon(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(salon)
	if err := s.updateFields(ctx, salon, patch); err != nil {
		return nil, err
	}
	return s.GetSalon(ctx, id)
}

// LockSalon takes a row lock on the salon for the rest of the transaction.
// Outside a transaction it only checks that the salon exists.
func (s *GormStore) LockSalon(ctx context.Context, id uint) error {
	var salon models.Salon
	q := s.conn(ctx)
	if s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return translate(q.Select("id").First(&salon, id).Error)
}

func (s *GormStore) SetSalonRating(ctx context.Context, id uint, rating, reviewCount int) error {
	result := s.conn(ctx).Model(&models.Salon{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":       rating,
			"review_count": reviewCount,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Catalog

func (s *GormStore) ListServiceCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	categories := []models.ServiceCategory{}
	err := s.conn(ctx).Order("id").Find(&categories).Error
	return categories, err
}

func (s *GormStore) GetServiceCategory(ctx context.Context, id uint) (*models.ServiceCategory, error) {
	var category models.ServiceCategory
	if err := s.conn(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (s *GormStore) CreateServiceCategory(ctx context.Context, category *models.ServiceCategory) error {
	return translate(s.conn(ctx).Create(category).Error)
}

func (s *GormStore) ListServices(ctx context.Context, salonID uint) ([]models.Service, error) {
	services := []models.Service{}
	err := s.conn(ctx).Where("salon_id = ?", salonID).Order("id").Find(&services).Error
	return services, err
}

func (s *GormStore) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	if err := s.conn(ctx).First(&service, id).Error; err != nil {
		return nil, translate(err)
	}
	return &service, nil
}

func (s *GormStore) CreateService(ctx context.Context, service *models.Service) error {
	return translate(s.conn(ctx).Create(service).Error)
}

func (s *GormStore) UpdateService(ctx context.Context, id uint, patch models.ServicePatch) (*models.Service, error) {
	service, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(service)
	if err := s.updateFields(ctx, service, patch); err != nil {
		return nil, err
	}
	return s.GetService(ctx, id)
}

func (s *GormStore) DeleteService(ctx context.Context, id uint) (bool, error) {
	result := s.conn(ctx).Delete(&models.Service{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Special offers

func (s *GormStore) ListSpecialOffers(ctx context.Context) ([]models.SpecialOffer, error) {
	offers := []models.SpecialOffer{}
	err := s.conn(ctx).Order("id").Find(&offers).Error
	return offers, err
}

func (s *GormStore) ListActiveSpecialOffersBySalon(ctx context.Context, salonID uint) ([]models.SpecialOffer, error) {
	offers := []models.SpecialOffer{}
	err := s.conn(ctx).Where("salon_id = ? AND is_active = ?", salonID, true).Order("id").Find(&offers).Error
	return offers, err
}

func (s *GormStore) GetSpecialOffer(ctx context.Context, id uint) (*models.SpecialOffer, error) {
	var offer models.SpecialOffer
	if err := s.conn(ctx).First(&offer, id).Error; err != nil {
		return nil, translate(err)
	}
	return &offer, nil
}

func (s *GormStore) CreateSpecialOffer(ctx context.Context, offer *models.SpecialOffer) error {
	return translate(s.conn(ctx).Create(offer).Error)
}

func (s *GormStore) UpdateSpecialOffer(ctx context.Context, id uint, patch models.SpecialOfferPatch) (*models.SpecialOffer, error) {
	offer, err := s.GetSpecialOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(offer)
	if err := s.updateFields(ctx, offer, patch); err != nil {
		return nil, err
	}
	return s.GetSpecialOffer(ctx, id)
}

func (s *GormStore) DeactivateExpiredOffers(ctx context.Context, now time.Time) (int64, error) {
	result := s.conn(ctx).Model(&models.SpecialOffer{}).
		Where("is_active = ? AND end_date < ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// Appointments

func (s *GormStore) ListAppointmentsByUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	err := s.conn(ctx).Where("user_id = ?", userID).Order("id").Find(&appointments).Error
	return appointments, err
}

func (s *GormStore) ListAppointmentsBySalon(ctx context.Context, salonID uint) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	err := s.conn(ctx).Where("salon_id = ?", salonID).Order("id").Find(&appointments).Error
	return appointments, err
}

func (s *GormStore) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.conn(ctx).First(&appointment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &appointment, nil
}

func (s *GormStore) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	return translate(s.conn(ctx).Create(appointment).Error)
}

func (s *GormStore) UpdateAppointmentStatus(ctx context.Context, id uint, status models.AppointmentStatus) (*models.Appointment, error) {
	result := s.conn(ctx).Model(&models.Appointment{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetAppointment(ctx, id)
}

func (s *GormStore) CreateAppointmentService(ctx context.Context, line *models.AppointmentService) error {
	return translate(s.conn(ctx).Create(line).Error)
}

func (s *GormStore) ListAppointmentServices(ctx context.Context, appointmentID uint) ([]models.AppointmentService, error) {
	lines := []models.AppointmentService{}
	err := s.conn(ctx).Where("appointment_id = ?", appointmentID).Order("id").Find(&lines).Error
	return lines, err
}

// Reviews

func (s *GormStore) ListReviews(ctx context.Context, salonID uint) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.conn(ctx).Where("salon_id = ?", salonID).Order("id").Find(&reviews).Error
	return reviews, err
}

func (s *GormStore) CreateReview(ctx context.Context, review *models.Review) error {
	return translate(s.conn(ctx).Create(review).Error)
}
