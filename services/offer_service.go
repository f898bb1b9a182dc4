package services

import (
	"context"
	"time"

	"jamaluki-backend/models"
	"jamaluki-backend/store"
	"jamaluki-backend/utils"

	"github.com/sirupsen/logrus"
)

type CreateSpecialOfferInput struct {
	SalonID         uint      `json:"salonId" validate:"required"`
	Title           string    `json:"title" validate:"required"`
	Description     string    `json:"description"`
	OriginalPrice   int       `json:"originalPrice" validate:"required,gt=0"`
	DiscountedPrice int       `json:"discountedPrice" validate:"required,gt=0,ltefield=OriginalPrice"`
	ImageURL        string    `json:"imageUrl"`
	StartDate       time.Time `json:"startDate" validate:"required"`
	EndDate         time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
	IsActive        *bool     `json:"isActive"` // defaults to true
}

type OfferService struct {
	store store.Store
	now   func() time.Time
}

func NewOfferService(s store.Store, now func() time.Time) *OfferService {
	return &OfferService{store: s, now: now}
}

func (s *OfferService) List(ctx context.Context) ([]models.SpecialOffer, error) {
	offers, err := s.store.ListSpecialOffers(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch special offers", err)
	}
	return offers, nil
}

// ListForSalon returns the salon's active offers only.
func (s *OfferService) ListForSalon(ctx context.Context, salonID uint) ([]models.SpecialOffer, error) {
	if _, err := s.store.GetSalon(ctx, salonID); err != nil {
		return nil, lookupError(err, "Salon")
	}
	offers, err := s.store.ListActiveSpecialOffersBySalon(ctx, salonID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch special offers", err)
	}
	return offers, nil
}

func (s *OfferService) Create(ctx context.Context, input CreateSpecialOfferInput, caller models.Caller) (*models.SpecialOffer, error) {
	if err := requireAuth(caller); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(input, "Invalid special offer"); err != nil {
		return nil, err
	}
	salon, err := s.store.GetSalon(ctx, input.SalonID)
	if err != nil {
		return nil, lookupError(err, "Salon")
	}
	if err := CanManageOffer(caller, salon); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	offer := &models.SpecialOffer{
		SalonID:         salon.ID,
		Title:           input.Title,
		Description:     input.Description,
		OriginalPrice:   input.OriginalPrice,
		DiscountedPrice: input.DiscountedPrice,
		ImageURL:        input.ImageURL,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		IsActive:        isActive,
	}
	if err := s.store.CreateSpecialOffer(ctx, offer); err != nil {
		return nil, utils.NewInternalError("Failed to create special offer", err)
	}

	logrus.WithFields(logrus.Fields{"offer_id": offer.ID, "salon_id": offer.SalonID}).Info("Special offer created")
	return offer, nil
}

func (s *OfferService) Update(ctx context.Context, id uint, patch models.SpecialOfferPatch, caller models.Caller) (*models.SpecialOffer, error) {
	if err := requireAuth(caller); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(patch, "Invalid special offer"); err != nil {
		return nil, err
	}
	offer, err := s.store.GetSpecialOffer(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Special offer")
	}
	salon, err := s.store.GetSalon(ctx, offer.SalonID)
	if err != nil {
		if err := lookupError(err, "Salon"); !utils.IsKind(err, utils.KindNotFound) {
			return nil, err
		}
	}
	if err := CanManageOffer(caller, salon); err != nil {
		return nil, err
	}

	// The price and date rules span fields, so check them on the merged offer.
	merged := *offer
	patch.Apply(&merged)
	if err := checkOfferRanges(merged); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateSpecialOffer(ctx, id, patch)
	if err != nil {
		return nil, lookupError(err, "Special offer")
	}
	return updated, nil
}

func checkOfferRanges(o models.SpecialOffer) error {
	fields := map[string]string{}
	if o.DiscountedPrice > o.OriginalPrice {
		fields["discountedPrice"] = "must not exceed originalPrice"
	}
	if o.EndDate.Before(o.StartDate) {
		fields["endDate"] = "must not be before startDate"
	}
	if len(fields) > 0 {
		return utils.NewValidationError("Invalid special offer", fields)
	}
	return nil
}

// ExpireOffers deactivates every active offer whose end date has passed.
func (s *OfferService) ExpireOffers(ctx context.Context) (int64, error) {
	n, err := s.store.DeactivateExpiredOffers(ctx, s.now())
	if err != nil {
		return 0, utils.NewInternalError("Failed to expire special offers", err)
	}
	return n, nil
}
