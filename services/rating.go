package services

import (
	"context"

	"jamaluki-backend/store"

	"github.com/sirupsen/logrus"
)

// RoundedMean returns the arithmetic mean of ratings rounded half up, or 0
// for an empty set.
func RoundedMean(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	n := len(ratings)
	return (2*sum + n) / (2 * n)
}

// recomputeSalonRating derives a salon's rating and review count from its
// full review set. tx must be the transaction that inserted the review and
// must already hold the salon's lock.
func recomputeSalonRating(ctx context.Context, tx store.Store, salonID uint) error {
	reviews, err := tx.ListReviews(ctx, salonID)
	if err != nil {
		return err
	}
	ratings := make([]int, len(reviews))
	for i, r := range reviews {
		ratings[i] = r.Rating
	}

	rating := RoundedMean(ratings)
	if err := tx.SetSalonRating(ctx, salonID, rating, len(reviews)); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"salon_id":     salonID,
		"rating":       rating,
		"review_count": len(reviews),
	}).Debug("Salon rating recomputed")
	return nil
}
