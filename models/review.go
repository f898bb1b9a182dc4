package models

import (
	"time"
)

type Review struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"userId"`
	SalonID       uint      `gorm:"index;not null" json:"salonId"`
	AppointmentID *uint     `gorm:"index" json:"appointmentId,omitempty"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       string    `gorm:"type:text" json:"comment,omitempty"`
	IsPrivate     bool      `json:"isPrivate"`
	CreatedAt     time.Time `json:"createdAt"`
}
