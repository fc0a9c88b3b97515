package booking

import "fmt"

// Pricing holds the per-guest amounts charged and paid out for a booking.
type Pricing struct {
	// DepositPerGuest is in the smallest currency unit (paise).
	DepositPerGuest int64
	PayoutPerGuest  int64
}

func (p Pricing) Deposit(guests int) int64 {
	return int64(guests) * p.DepositPerGuest
}

func (p Pricing) Payout(guests int) int64 {
	return int64(guests) * p.PayoutPerGuest
}

// PayoutNote renders the advisory payout figure, e.g. "3 × 40 = 120".
func (p Pricing) PayoutNote(guests int) string {
	return fmt.Sprintf("%d × %d = %d", guests, p.PayoutPerGuest, p.Payout(guests))
}

// FormatRupees renders an amount in paise as rupees.
func FormatRupees(paise int64) string {
	return fmt.Sprintf("₹%d.%02d", paise/100, paise%100)
}
