package payment

import (
	"context"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/domain/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
)

const Currency = "INR"

// LinkCreator is the slice of the Razorpay SDK the gateway needs.
type LinkCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type RazorpayGateway struct {
	links   LinkCreator
	pricing booking.Pricing
}

func NewRazorpayGateway(keyID, keySecret string, pricing booking.Pricing) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)
	return NewRazorpayGatewayWith(client.PaymentLink, pricing)
}

// NewRazorpayGatewayWith builds the gateway on any LinkCreator, such as a
// sandbox double.
func NewRazorpayGatewayWith(links LinkCreator, pricing booking.Pricing) *RazorpayGateway {
	return &RazorpayGateway{
		links:   links,
		pricing: pricing,
	}
}

func (g *RazorpayGateway) CreatePaymentLink(ctx context.Context, req LinkRequest) (*Link, error) {
	if req.NumberOfGuests < 1 {
		return nil, httperr.ErrUpstream("payment_link_failed", fmt.Errorf("invalid guest count %d", req.NumberOfGuests))
	}
	if err := ctx.Err(); err != nil {
		return nil, httperr.ErrUpstream("payment_link_failed", err)
	}

	amount := g.pricing.Deposit(req.NumberOfGuests)

	body := map[string]interface{}{
		"amount":          amount,
		"currency":        Currency,
		"accept_partial":  false,
		"description":     fmt.Sprintf("Booking #%s deposit for %d guest(s)", req.BookingID, req.NumberOfGuests),
		"reminder_enable": true,
		"callback_url":    req.CallbackURL,
		"callback_method": "get",
		"customer": map[string]interface{}{
			"name":  req.CustomerName,
			"email": req.CustomerEmail,
		},
		"notify": map[string]interface{}{
			"email": true,
		},
		"notes": map[string]interface{}{
			"booking_id": req.BookingID,
		},
	}

	resp, err := g.links.Create(body, nil)
	if err != nil {
		return nil, httperr.ErrUpstream("payment_link_failed", err)
	}

	id, _ := resp["id"].(string)
	shortURL, _ := resp["short_url"].(string)
	if id == "" || shortURL == "" {
		return nil, httperr.ErrUpstream("payment_link_failed", errors.New("gateway response missing id or short_url"))
	}

	return &Link{
		ID:       id,
		ShortURL: shortURL,
		Amount:   amount,
		Currency: Currency,
	}, nil
}

var _ Gateway = (*RazorpayGateway)(nil)
