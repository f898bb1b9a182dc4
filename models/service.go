package models

import (
	"time"
)

// ServiceCategory is the global taxonomy shared by all salons.
type ServiceCategory struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	NameEn string `json:"nameEn,omitempty"`
	Icon   string `json:"icon,omitempty"`
}

type Service struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SalonID         uint      `gorm:"index;not null" json:"salonId"`
	CategoryID      uint      `gorm:"index;not null" json:"categoryId"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           int       `gorm:"not null" json:"price"`           // whole riyal
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"` // in minutes
	ImageURL        string    `json:"imageUrl,omitempty"`
	IsActive        bool      `json:"isActive"`
	IsFeatured      bool      `json:"isFeatured"`
	FemaleStaffOnly bool      `json:"femaleStaffOnly"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ServicePatch defines the editable service fields. SalonID is fixed at creation.
type ServicePatch struct {
	CategoryID      *uint   `json:"categoryId" validate:"omitempty,gt=0"`
	Name            *string `json:"name" validate:"omitempty,min=1"`
	Description     *string `json:"description"`
	Price           *int    `json:"price" validate:"omitempty,gt=0"`
	DurationMinutes *int    `json:"durationMinutes" validate:"omitempty,gt=0"`
	ImageURL        *string `json:"imageUrl"`
	IsActive        *bool   `json:"isActive"`
	IsFeatured      *bool   `json:"isFeatured"`
	FemaleStaffOnly *bool   `json:"femaleStaffOnly"`
}

func (p ServicePatch) Apply(s *Service) {
	if p.CategoryID != nil {
		s.CategoryID = *p.CategoryID
	}
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.DurationMinutes != nil {
		s.DurationMinutes = *p.DurationMinutes
	}
	if p.ImageURL != nil {
		s.ImageURL = *p.ImageURL
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	if p.IsFeatured != nil {
		s.IsFeatured = *p.IsFeatured
	}
	if p.FemaleStaffOnly != nil {
		s.FemaleStaffOnly = *p.FemaleStaffOnly
	}
}
