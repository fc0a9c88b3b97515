package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/domain/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
)

func TestListRestaurantBookingsIncludesCustomer(t *testing.T) {
	repo := newFixture()
	seedBooking(repo, "b1", domain.StatusPending)
	later := seedBooking(repo, "b2", domain.StatusConfirmed)
	later.BookingAt = visitAt.Add(24 * time.Hour)
	repo.addBooking(later)
	repo.addBooking(models.Booking{ID: "b3", RestaurantID: "rest-2", UserID: customerID, Status: "pending"})

	out, err := NewListRestaurantBookings(repo).Execute(context.Background(), ownerID)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "b2", out[0].ID)
	assert.Equal(t, "b1", out[1].ID)
	assert.Equal(t, "Asha", out[0].CustomerName)
	assert.Equal(t, "asha@example.com", out[0].CustomerEmail)
	require.NotNil(t, out[0].PaymentLinkURL)
}

func TestListRestaurantBookingsNeedsRestaurant(t *testing.T) {
	_, err := NewListRestaurantBookings(newFixture()).Execute(context.Background(), customerID)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}

func TestListCustomerBookings(t *testing.T) {
	repo := newFixture()
	seedBooking(repo, "b1", domain.StatusPending)
	repo.addBooking(models.Booking{ID: "b9", RestaurantID: restaurantID, UserID: "someone-else", Status: "pending"})

	out, err := NewListCustomerBookings(repo).Execute(context.Background(), customerID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "b1", out[0].ID)
	assert.Equal(t, "Spice Route", out[0].RestaurantName)

	none, err := NewListCustomerBookings(repo).Execute(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
