package payment

import "context"

// LinkRequest describes the deposit link minted when a booking is accepted.
type LinkRequest struct {
	BookingID      string
	NumberOfGuests int
	CustomerName   string
	CustomerEmail  string
	CallbackURL    string
}

// Link is the normalized gateway response. Only ID and ShortURL are stored.
type Link struct {
	ID       string
	ShortURL string
	Amount   int64
	Currency string
}

type Gateway interface {
	CreatePaymentLink(ctx context.Context, req LinkRequest) (*Link, error)
}
