package models

import (
	"time"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

const PaymentStatusPending = "pending"

// Valid reports whether s is one of the four known status literals.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is expected from s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment totals are computed by the booking client and stored as sent.
type Appointment struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	UserID             uint              `gorm:"index;not null" json:"userId"`
	SalonID            uint              `gorm:"index;not null" json:"salonId"`
	AppointmentDate    time.Time         `gorm:"not null" json:"appointmentDate"`
	Status             AppointmentStatus `gorm:"type:varchar(20);not null" json:"status"`
	TotalPrice         int               `gorm:"not null" json:"totalPrice"`
	TotalDuration      int               `gorm:"not null" json:"totalDuration"`
	RequestFemaleStaff bool              `json:"requestFemaleStaff"`
	RequestPrivateRoom bool              `json:"requestPrivateRoom"`
	PaymentMethod      string            `gorm:"type:varchar(20)" json:"paymentMethod,omitempty"` // mada, credit_card, cash
	PaymentStatus      string            `gorm:"type:varchar(20);not null" json:"paymentStatus"`
	Notes              string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
}

// AppointmentService is one line item, snapshotting the price and duration
// of a service at booking time.
type AppointmentService struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	AppointmentID   uint `gorm:"index;not null" json:"appointmentId"`
	ServiceID       uint `gorm:"index;not null" json:"serviceId"`
	Price           int  `gorm:"not null" json:"price"`
	DurationMinutes int  `gorm:"not null" json:"durationMinutes"`
}

// AppointmentDetail is an appointment with its line items attached.
type AppointmentDetail struct {
	Appointment
	Services []AppointmentService `json:"services"`
}
