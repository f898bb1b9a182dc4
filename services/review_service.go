package services

import (
	"context"

	"jamaluki-backend/models"
	"jamaluki-backend/store"
	"jamaluki-backend/utils"

	"github.com/sirupsen/logrus"
)

type CreateReviewInput struct {
	SalonID       uint   `json:"salonId" validate:"required"`
	AppointmentID *uint  `json:"appointmentId" validate:"omitempty,gt=0"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Comment       string `json:"comment"`
	IsPrivate     bool   `json:"isPrivate"`
}

type ReviewService struct {
	store store.Store
}

func NewReviewService(s store.Store) *ReviewService {
	return &ReviewService{store: s}
}

func (s *ReviewService) List(ctx context.Context, salonID uint) ([]models.Review, error) {
	if _, err := s.store.GetSalon(ctx, salonID); err != nil {
		return nil, lookupError(err, "Salon")
	}
	reviews, err := s.store.ListReviews(ctx, salonID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch reviews", err)
	}
	return reviews, nil
}

// Create stores a review and refreshes the salon's rating in the same
// transaction.
func (s *ReviewService) Create(ctx context.Context, input CreateReviewInput, caller models.Caller) (*models.Review, error) {
	if err := CanCreateReview(caller, nil); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(input, "Invalid review"); err != nil {
		return nil, err
	}
	if _, err := s.store.GetSalon(ctx, input.SalonID); err != nil {
		return nil, lookupError(err, "Salon")
	}

	if input.AppointmentID != nil {
		appointment, err := s.store.GetAppointment(ctx, *input.AppointmentID)
		if err != nil {
			return nil, lookupError(err, "Appointment")
		}
		if err := CanCreateReview(caller, appointment); err != nil {
			return nil, err
		}
		if appointment.SalonID != input.SalonID {
			return nil, utils.NewValidationError("Invalid review", map[string]string{
				"appointmentId": "appointment belongs to a different salon",
			})
		}
	}

	review := &models.Review{
		UserID:        caller.UserID,
		SalonID:       input.SalonID,
		AppointmentID: input.AppointmentID,
		Rating:        input.Rating,
		Comment:       input.Comment,
		IsPrivate:     input.IsPrivate,
	}
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		// Concurrent reviews of one salon queue here, so each recompute
		// sees every committed review.
		if err := tx.LockSalon(ctx, review.SalonID); err != nil {
			return err
		}
		if err := tx.CreateReview(ctx, review); err != nil {
			return err
		}
		return recomputeSalonRating(ctx, tx, review.SalonID)
	})
	if err != nil {
		return nil, writeError(err, "Failed to create review")
	}

	logrus.WithFields(logrus.Fields{
		"review_id": review.ID,
		"salon_id":  review.SalonID,
		"rating":    review.Rating,
	}).Info("Review created")
	return review, nil
}
