package dto

import (
	"time"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
)

type BookingDTO struct {
	ID             string    `json:"_id"`
	UserID         string    `json:"userID"`
	RestaurantID   string    `json:"restaurantID"`
	BookingAt      time.Time `json:"bookingAt"`
	NumberOfGuests int       `json:"numberOfGuests"`
	Message        string    `json:"message"`
	Category       string    `json:"category"`
	PhoneNumber    string    `json:"phoneNumber"`
	Status         string    `json:"status"`
	PaymentLinkID  *string   `json:"paymentLinkID"`
	PaymentLinkURL *string   `json:"paymentLinkURL"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	CustomerName   string `json:"customerName,omitempty"`
	CustomerEmail  string `json:"customerEmail,omitempty"`
	RestaurantName string `json:"restaurantName,omitempty"`
}

func NewBookingDTO(b *models.Booking) BookingDTO {
	return BookingDTO{
		ID:             b.ID,
		UserID:         b.UserID,
		RestaurantID:   b.RestaurantID,
		BookingAt:      b.BookingAt,
		NumberOfGuests: b.NumberOfGuests,
		Message:        b.Message,
		Category:       b.Category,
		PhoneNumber:    b.PhoneNumber,
		Status:         b.Status,
		PaymentLinkID:  b.PaymentLinkID,
		PaymentLinkURL: b.PaymentLinkURL,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
