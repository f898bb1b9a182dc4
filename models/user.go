package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Role tags the kind of account behind a request.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleSalonOwner Role = "salon_owner"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSalonOwner, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Username           string    `gorm:"uniqueIndex;not null" json:"username"`
	Password           string    `gorm:"not null" json:"-"`
	FullName           string    `gorm:"not null" json:"fullName"`
	Phone              string    `gorm:"not null" json:"phone"`
	Email              string    `json:"email,omitempty"`
	UserType           Role      `gorm:"type:varchar(20);not null" json:"userType"`
	ImageURL           string    `json:"imageUrl,omitempty"`
	IsPrivacyFocused   bool      `json:"isPrivacyFocused"`
	PrefersFemaleStaff bool      `json:"prefersFemaleStaff"`
	PreferredLanguage  string    `gorm:"type:varchar(8)" json:"preferredLanguage"`
	LoyaltyPoints      int       `gorm:"not null;default:0" json:"loyaltyPoints"`
	CreatedAt          time.Time `json:"createdAt"`
}

// UserPatch holds the profile fields a user may change about themselves.
// Role and loyalty points are deliberately absent.
type UserPatch struct {
	FullName           *string `json:"fullName" validate:"omitempty,min=1"`
	Phone              *string `json:"phone" validate:"omitempty,phone"`
	Email              *string `json:"email" validate:"omitempty,email"`
	ImageURL           *string `json:"imageUrl"`
	PreferredLanguage  *string `json:"preferredLanguage" validate:"omitempty,oneof=ar en"`
	IsPrivacyFocused   *bool   `json:"isPrivacyFocused"`
	PrefersFemaleStaff *bool   `json:"prefersFemaleStaff"`
}

func (p UserPatch) Apply(u *User) {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.ImageURL != nil {
		u.ImageURL = *p.ImageURL
	}
	if p.PreferredLanguage != nil {
		u.PreferredLanguage = *p.PreferredLanguage
	}
	if p.IsPrivacyFocused != nil {
		u.IsPrivacyFocused = *p.IsPrivacyFocused
	}
	if p.PrefersFemaleStaff != nil {
		u.PrefersFemaleStaff = *p.PrefersFemaleStaff
	}
}

// Custom JSONB type for opening hours
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return errors.New("type assertion to []byte failed")
	}
}

// Clone returns a shallow copy so stored values never alias caller maps.
func (j JSONB) Clone() JSONB {
	if j == nil {
		return nil
	}
	out := make(JSONB, len(j))
	for k, v := range j {
		out[k] = v
	}
	return out
}
