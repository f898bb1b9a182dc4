package services

import (
	"context"

	"jamaluki-backend/models"
	"jamaluki-backend/store"
	"jamaluki-backend/utils"

	"github.com/sirupsen/logrus"
)

type CreateServiceInput struct {
	SalonID         uint   `json:"salonId" validate:"required"`
	CategoryID      uint   `json:"categoryId" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Description     string `json:"description"`
	Price           int    `json:"price" validate:"required,gt=0"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,gt=0"`
	ImageURL        string `json:"imageUrl"`
	IsActive        *bool  `json:"isActive"` // defaults to true
	IsFeatured      bool   `json:"isFeatured"`
	FemaleStaffOnly bool   `json:"femaleStaffOnly"`
}

// CatalogService manages the category taxonomy and each salon's services.
type CatalogService struct {
	store store.Store
}

func NewCatalogService(s store.Store) *CatalogService {
	return &CatalogService{store: s}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	categories, err := s.store.ListServiceCategories(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch service categories", err)
	}
	return categories, nil
}

func (s *CatalogService) ListServices(ctx context.Context, salonID uint) ([]models.Service, error) {
	if _, err := s.store.GetSalon(ctx, salonID); err != nil {
		return nil, lookupError(err, "Salon")
	}
	services, err := s.store.ListServices(ctx, salonID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch services", err)
	}
	return services, nil
}

func (s *CatalogService) CreateService(ctx context.Context, input CreateServiceInput, caller models.Caller) (*models.Service, error) {
	if err := requireAuth(caller); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(input, "Invalid service"); err != nil {
		return nil, err
	}
	salon, err := s.store.GetSalon(ctx, input.SalonID)
	if err != nil {
		return nil, lookupError(err, "Salon")
	}
	if err := CanManageService(caller, salon); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	service := &models.Service{
		SalonID:         salon.ID,
		CategoryID:      input.CategoryID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		ImageURL:        input.ImageURL,
		IsActive:        isActive,
		IsFeatured:      input.IsFeatured,
		FemaleStaffOnly: input.FemaleStaffOnly,
	}
	if err := s.store.CreateService(ctx, service); err != nil {
		return nil, utils.NewInternalError("Failed to create service", err)
	}

	logrus.WithFields(logrus.Fields{"service_id": service.ID, "salon_id": service.SalonID}).Info("Service created")
	return service, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, id uint, patch models.ServicePatch, caller models.Caller) (*models.Service, error) {
	if err := requireAuth(caller); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(patch, "Invalid service"); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, id, caller); err != nil {
		return nil, err
	}
	if patch.CategoryID != nil {
		if err := s.checkCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.UpdateService(ctx, id, patch)
	if err != nil {
		return nil, lookupError(err, "Service")
	}
	return updated, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id uint, caller models.Caller) error {
	if err := requireAuth(caller); err != nil {
		return err
	}
	if _, err := s.authorize(ctx, id, caller); err != nil {
		return err
	}

	deleted, err := s.store.DeleteService(ctx, id)
	if err != nil {
		return utils.NewInternalError("Failed to delete service", err)
	}
	if !deleted {
		return utils.NewNotFoundError("Service")
	}

	logrus.WithField("service_id", id).Info("Service deleted")
	return nil
}

// authorize loads a service and checks the caller owns its salon.
func (s *CatalogService) authorize(ctx context.Context, id uint, caller models.Caller) (*models.Service, error) {
	service, err := s.store.GetService(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Service")
	}
	salon, err := s.store.GetSalon(ctx, service.SalonID)
	if err != nil {
		if err := lookupError(err, "Salon"); !utils.IsKind(err, utils.KindNotFound) {
			return nil, err
		}
	}
	if err := CanManageService(caller, salon); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *CatalogService) checkCategory(ctx context.Context, id uint) error {
	if _, err := s.store.GetServiceCategory(ctx, id); err != nil {
		if err := lookupError(err, "Service category"); !utils.IsKind(err, utils.KindNotFound) {
			return err
		}
		return utils.NewValidationError("Invalid service", map[string]string{"categoryId": "unknown service category"})
	}
	return nil
}
