package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// OfferScheduler periodically deactivates expired special offers.
type OfferScheduler struct {
	offers   *OfferService
	schedule string
	cron     *cron.Cron
}

func NewOfferScheduler(offers *OfferService, schedule string) *OfferScheduler {
	return &OfferScheduler{offers: offers, schedule: schedule}
}

// Start runs one expiry pass immediately and then on every tick of the
// schedule.
func (s *OfferScheduler) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, s.run); err != nil {
		return err
	}

	s.run()

	c.Start()
	s.cron = c
	logrus.WithField("schedule", s.schedule).Info("Offer expiry scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a running pass to finish.
func (s *OfferScheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *OfferScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.offers.ExpireOffers(ctx)
	if err != nil {
		logrus.WithError(err).Error("Offer expiry pass failed")
		return
	}
	if n > 0 {
		logrus.WithField("deactivated", n).Info("Expired special offers deactivated")
	}
}
