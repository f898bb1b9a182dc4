package services

import (
	"context"

	"jamaluki-backend/models"
	"jamaluki-backend/store"
	"jamaluki-backend/utils"

	"github.com/sirupsen/logrus"
)

// CreateSalonInput has no owner, rating or review count: the owner is the
// caller and the rating fields are derived.
type CreateSalonInput struct {
	Name            string       `json:"name" validate:"required"`
	Description     string       `json:"description"`
	Address         string       `json:"address" validate:"required"`
	City            string       `json:"city" validate:"required"`
	District        string       `json:"district" validate:"required"`
	Phone           string       `json:"phone" validate:"required,phone"`
	ImageURL        string       `json:"imageUrl"`
	CoverImageURL   string       `json:"coverImageUrl"`
	IsFemaleOnly    bool         `json:"isFemaleOnly"`
	HasPrivateRooms bool         `json:"hasPrivateRooms"`
	OpeningHours    models.JSONB `json:"openingHours"`
}

type SalonService struct {
	store store.Store
}

func NewSalonService(s store.Store) *SalonService {
	return &SalonService{store: s}
}

func (s *SalonService) List(ctx context.Context) ([]models.Salon, error) {
	salons, err := s.store.ListSalons(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch salons", err)
	}
	return salons, nil
}

func (s *SalonService) Get(ctx context.Context, id uint) (*models.Salon, error) {
	salon, err := s.store.GetSalon(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Salon")
	}
	return salon, nil
}

func (s *SalonService) Create(ctx context.Context, input CreateSalonInput, caller models.Caller) (*models.Salon, error) {
	if err := CanCreateSalon(caller); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(input, "Invalid salon"); err != nil {
		return nil, err
	}

	salon := &models.Salon{
		OwnerID:         caller.UserID,
		Name:            input.Name,
		Description:     input.Description,
		Address:         input.Address,
		City:            input.City,
		District:        input.District,
		Phone:           input.Phone,
		ImageURL:        input.ImageURL,
		CoverImageURL:   input.CoverImageURL,
		IsFemaleOnly:    input.IsFemaleOnly,
		HasPrivateRooms: input.HasPrivateRooms,
		OpeningHours:    input.OpeningHours.Clone(),
		Status:          models.SalonStatusActive,
	}
	if err := s.store.CreateSalon(ctx, salon); err != nil {
		return nil, utils.NewInternalError("Failed to create salon", err)
	}

	logrus.WithFields(logrus.Fields{"salon_id": salon.ID, "owner_id": salon.OwnerID}).Info("Salon created")
	return salon, nil
}

func (s *SalonService) Update(ctx context.Context, id uint, patch models.SalonPatch, caller models.Caller) (*models.Salon, error) {
	if err := requireAuth(caller); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(patch, "Invalid salon"); err != nil {
		return nil, err
	}
	salon, err := s.store.GetSalon(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Salon")
	}
	if err := CanUpdateSalon(caller, salon); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateSalon(ctx, id, patch)
	if err != nil {
		return nil, lookupError(err, "Salon")
	}
	return updated, nil
}
