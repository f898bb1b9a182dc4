package models

import (
	"time"
)

type SpecialOffer struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SalonID         uint      `gorm:"index;not null" json:"salonId"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `json:"description,omitempty"`
	OriginalPrice   int       `gorm:"not null" json:"originalPrice"`
	DiscountedPrice int       `gorm:"not null" json:"discountedPrice"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	StartDate       time.Time `gorm:"not null" json:"startDate"`
	EndDate         time.Time `gorm:"not null;index" json:"endDate"`
	IsActive        bool      `gorm:"index" json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

type SpecialOfferPatch struct {
	Title           *string    `json:"title" validate:"omitempty,min=1"`
	Description     *string    `json:"description"`
	OriginalPrice   *int       `json:"originalPrice" validate:"omitempty,gt=0"`
	DiscountedPrice *int       `json:"discountedPrice" validate:"omitempty,gt=0"`
	ImageURL        *string    `json:"imageUrl"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	IsActive        *bool      `json:"isActive"`
}

func (p SpecialOfferPatch) Apply(o *SpecialOffer) {
	if p.Title != nil {
		o.Title = *p.Title
	}
	if p.Description != nil {
		o.Description = *p.Description
	}
	if p.OriginalPrice != nil {
		o.OriginalPrice = *p.OriginalPrice
	}
	if p.DiscountedPrice != nil {
		o.DiscountedPrice = *p.DiscountedPrice
	}
	if p.ImageURL != nil {
		o.ImageURL = *p.ImageURL
	}
	if p.StartDate != nil {
		o.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		o.EndDate = *p.EndDate
	}
	if p.IsActive != nil {
		o.IsActive = *p.IsActive
	}
}
