package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	UserID string `gorm:"size:36;index;not null" json:"user_id"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	RestaurantID string     `gorm:"size:36;index;not null" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	BookingAt      time.Time `gorm:"not null" json:"booking_at"`
	NumberOfGuests int       `gorm:"not null;check:number_of_guests >= 1" json:"number_of_guests"`
	Message        string    `gorm:"size:500;default:''" json:"message"`
	Category       string    `gorm:"size:20;not null" json:"category"`
	PhoneNumber    string    `gorm:"size:10;not null" json:"phone_number"`

	Status string `gorm:"size:20;index;not null;default:'pending';check:chk_bookings_status,status IN ('pending','payment pending','confirmed','executed','rejected')" json:"status"`

	PaymentLinkID  *string `gorm:"size:64;index" json:"payment_link_id"`
	PaymentLinkURL *string `gorm:"size:255" json:"payment_link_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
