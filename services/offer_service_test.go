package services

import (
	"testing"
	"time"

	"jamaluki-backend/models"
	"jamaluki-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offerInput(salonID uint) CreateSpecialOfferInput {
	return CreateSpecialOfferInput{
		SalonID:         salonID,
		Title:           "Eid package",
		OriginalPrice:   400,
		DiscountedPrice: 300,
		StartDate:       testNow.AddDate(0, 0, -1),
		EndDate:         testNow.AddDate(0, 0, 7),
	}
}

func TestCreateSpecialOffer(t *testing.T) {
	f := newFixture(t, Options{})

	offer, err := f.svc.Offers.Create(f.ctx, offerInput(f.salon.ID), f.owner)
	require.NoError(t, err)
	assert.True(t, offer.IsActive)

	tests := []struct {
		name   string
		mutate func(*CreateSpecialOfferInput)
		caller models.Caller
		want   utils.ErrorKind
	}{
		{"other owner", func(*CreateSpecialOfferInput) {}, f.rival, utils.KindForbidden},
		{"customer", func(*CreateSpecialOfferInput) {}, f.customer, utils.KindForbidden},
		{"discount above original", func(in *CreateSpecialOfferInput) { in.DiscountedPrice = 500 }, f.owner, utils.KindValidation},
		{"ends before start", func(in *CreateSpecialOfferInput) { in.EndDate = in.StartDate.Add(-time.Hour) }, f.owner, utils.KindValidation},
		{"unknown salon", func(in *CreateSpecialOfferInput) { in.SalonID = 999 }, f.owner, utils.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := offerInput(f.salon.ID)
			tt.mutate(&in)
			_, err := f.svc.Offers.Create(f.ctx, in, tt.caller)
			assert.Equal(t, tt.want, utils.KindOf(err))
		})
	}
}

func TestUpdateSpecialOfferChecksMergedRanges(t *testing.T) {
	f := newFixture(t, Options{})
	offer, err := f.svc.Offers.Create(f.ctx, offerInput(f.salon.ID), f.owner)
	require.NoError(t, err)

	_, err = f.svc.Offers.Update(f.ctx, offer.ID, models.SpecialOfferPatch{DiscountedPrice: intPtr(450)}, f.owner)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = f.svc.Offers.Update(f.ctx, offer.ID, models.SpecialOfferPatch{Title: strPtr("x")}, f.rival)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	updated, err := f.svc.Offers.Update(f.ctx, offer.ID, models.SpecialOfferPatch{
		OriginalPrice:   intPtr(500),
		DiscountedPrice: intPtr(450),
	}, f.owner)
	require.NoError(t, err)
	assert.Equal(t, 450, updated.DiscountedPrice)
	assert.Equal(t, "Eid package", updated.Title)

	_, err = f.svc.Offers.Update(f.ctx, 999, models.SpecialOfferPatch{}, f.owner)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestSalonOffersListOnlyActive(t *testing.T) {
	f := newFixture(t, Options{})
	active, err := f.svc.Offers.Create(f.ctx, offerInput(f.salon.ID), f.owner)
	require.NoError(t, err)

	paused := offerInput(f.salon.ID)
	paused.IsActive = boolPtr(false)
	_, err = f.svc.Offers.Create(f.ctx, paused, f.owner)
	require.NoError(t, err)

	expiring := offerInput(f.salon.ID)
	expiring.StartDate = testNow.AddDate(0, 0, -5)
	expiring.EndDate = testNow.AddDate(0, 0, -1)
	_, err = f.svc.Offers.Create(f.ctx, expiring, f.owner)
	require.NoError(t, err)

	n, err := f.svc.Offers.ExpireOffers(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := f.svc.Offers.ListForSalon(f.ctx, f.salon.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	all, err := f.svc.Offers.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.svc.Offers.ListForSalon(f.ctx, 999)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestOfferSchedulerRunsAtStart(t *testing.T) {
	f := newFixture(t, Options{})
	expired := offerInput(f.salon.ID)
	expired.StartDate = testNow.AddDate(0, 0, -5)
	expired.EndDate = testNow.AddDate(0, 0, -1)
	offer, err := f.svc.Offers.Create(f.ctx, expired, f.owner)
	require.NoError(t, err)

	scheduler := NewOfferScheduler(f.svc.Offers, "@hourly")
	require.NoError(t, scheduler.Start())
	scheduler.Stop()

	stored, err := f.store.GetSpecialOffer(f.ctx, offer.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	assert.Error(t, NewOfferScheduler(f.svc.Offers, "not a schedule").Start())
}
