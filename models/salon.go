package models

import (
	"time"
)

const (
	SalonStatusActive = "active"
)

// Salon is owned by exactly one salon_owner. Rating and ReviewCount are
// derived from the review set and only written by the rating aggregator.
type Salon struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OwnerID         uint      `gorm:"index;not null" json:"ownerId"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `json:"description,omitempty"`
	Address         string    `gorm:"not null" json:"address"`
	City            string    `gorm:"not null" json:"city"`
	District        string    `gorm:"not null" json:"district"`
	Phone           string    `gorm:"not null" json:"phone"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	CoverImageURL   string    `json:"coverImageUrl,omitempty"`
	IsFemaleOnly    bool      `json:"isFemaleOnly"`
	HasPrivateRooms bool      `json:"hasPrivateRooms"`
	Rating          int       `gorm:"not null;default:0" json:"rating"`
	ReviewCount     int       `gorm:"not null;default:0" json:"reviewCount"`
	OpeningHours    JSONB     `gorm:"type:jsonb" json:"openingHours,omitempty"`
	Status          string    `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SalonPatch lists the client-editable salon fields. OwnerID, Rating and
// ReviewCount cannot be changed through a patch.
type SalonPatch struct {
	Name            *string `json:"name" validate:"omitempty,min=1"`
	Description     *string `json:"description"`
	Address         *string `json:"address" validate:"omitempty,min=1"`
	City            *string `json:"city" validate:"omitempty,min=1"`
	District        *string `json:"district" validate:"omitempty,min=1"`
	Phone           *string `json:"phone" validate:"omitempty,phone"`
	ImageURL        *string `json:"imageUrl"`
	CoverImageURL   *string `json:"coverImageUrl"`
	IsFemaleOnly    *bool   `json:"isFemaleOnly"`
	HasPrivateRooms *bool   `json:"hasPrivateRooms"`
	OpeningHours    JSONB   `json:"openingHours"`
	Status          *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (p SalonPatch) Apply(s *Salon) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Address != nil {
		s.Address = *p.Address
	}
	if p.City != nil {
		s.City = *p.City
	}
	if p.District != nil {
		s.District = *p.District
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.ImageURL != nil {
		s.ImageURL = *p.ImageURL
	}
	if p.CoverImageURL != nil {
		s.CoverImageURL = *p.CoverImageURL
	}
	if p.IsFemaleOnly != nil {
		s.IsFemaleOnly = *p.IsFemaleOnly
	}
	if p.HasPrivateRooms != nil {
		s.HasPrivateRooms = *p.HasPrivateRooms
	}
	if p.OpeningHours != nil {
		s.OpeningHours = p.OpeningHours.Clone()
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
}
