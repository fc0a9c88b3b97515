package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// BookingNotice is what the customer is told about an owner decision.
type BookingNotice struct {
	BookingID      string
	CustomerName   string
	CustomerEmail  string
	RestaurantName string
	// BookingAt is already in the restaurant's timezone.
	BookingAt  time.Time
	Guests     int
	Category   string
	Deposit    string
	PaymentURL string
}

func (n BookingNotice) When() string {
	return n.BookingAt.Format("Mon, 02 Jan 2006 at 15:04 MST")
}

// BookingNotifier renders booking emails and hands them to a Mailer.
type BookingNotifier struct {
	mailer Mailer
}

func NewBookingNotifier(m Mailer) *BookingNotifier {
	return &BookingNotifier{mailer: m}
}

func (n *BookingNotifier) BookingAccepted(ctx context.Context, notice BookingNotice) error {
	return n.send(ctx, notice, "booking_accepted.html",
		fmt.Sprintf("%s accepted your booking, complete the deposit", notice.RestaurantName))
}

func (n *BookingNotifier) BookingRejected(ctx context.Context, notice BookingNotice) error {
	return n.send(ctx, notice, "booking_rejected.html",
		fmt.Sprintf("Your booking at %s was declined", notice.RestaurantName))
}

func (n *BookingNotifier) send(ctx context.Context, notice BookingNotice, tmpl, subject string) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, tmpl, notice); err != nil {
		return fmt.Errorf("render %s: %w", tmpl, err)
	}
	return n.mailer.Send(ctx, Message{
		To:      notice.CustomerEmail,
		ToName:  notice.CustomerName,
		Subject: subject,
		HTML:    buf.String(),
	})
}
