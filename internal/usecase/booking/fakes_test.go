package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/audit"
	domain "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/domain/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/notify"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/payment"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/realtime"
)

// ------------------------------------------------------
// Repository
// ------------------------------------------------------

type memRepo struct {
	mu          sync.Mutex
	users       map[string]models.User
	restaurants map[string]models.Restaurant
	bookings    map[string]models.Booking
	seq         int

	// beforeApply runs inside ApplyChange before the status check,
	// to simulate a concurrent writer.
	beforeApply func(r *memRepo, bookingID string)
	applied     []domain.Change
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:       map[string]models.User{},
		restaurants: map[string]models.Restaurant{},
		bookings:    map[string]models.Booking{},
	}
}

func (r *memRepo) addUser(u models.User) models.User {
	r.users[u.ID] = u
	return u
}

func (r *memRepo) addRestaurant(rest models.Restaurant) models.Restaurant {
	r.restaurants[rest.ID] = rest
	return rest
}

func (r *memRepo) addBooking(b models.Booking) models.Booking {
	r.bookings[b.ID] = b
	return b
}

func (r *memRepo) booking(id string) models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id]
}

// setStatus bypasses the state machine and takes no lock.
func (r *memRepo) setStatus(id string, st domain.Status) {
	b := r.bookings[id]
	b.Status = string(st)
	r.bookings[id] = b
}

func (r *memRepo) GetRestaurantByID(_ context.Context, id string) (*models.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rest, ok := r.restaurants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rest, nil
}

func (r *memRepo) GetRestaurantByOwner(_ context.Context, ownerID string) (*models.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rest := range r.restaurants {
		if rest.OwnerID == ownerID {
			return &rest, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if b.ID == "" {
		b.ID = fmt.Sprintf("b-%d", r.seq)
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.bookings[b.ID] = *b
	return nil
}

func (r *memRepo) GetBookingByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r *memRepo) GetBookingByPaymentLink(_ context.Context, linkID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.PaymentLinkID != nil && *b.PaymentLinkID == linkID {
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) GetBookingForRestaurant(_ context.Context, id, restaurantID string, st domain.Status) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.RestaurantID != restaurantID || b.Status != string(st) {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r *memRepo) ApplyChange(_ context.Context, bookingID string, ch domain.Change) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.beforeApply != nil {
		r.beforeApply(r, bookingID)
	}

	b, ok := r.bookings[bookingID]
	if !ok || b.Status != string(ch.Transition.From()) {
		return false, nil
	}
	if err := domain.Apply(&b, ch); err != nil {
		return false, err
	}
	r.bookings[bookingID] = b
	r.applied = append(r.applied, ch)
	return true, nil
}

func (r *memRepo) ListBookingsByRestaurant(_ context.Context, restaurantID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.RestaurantID == restaurantID {
			b.User = r.users[b.UserID]
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingAt.After(out[j].BookingAt) })
	return out, nil
}

func (r *memRepo) ListBookingsByUser(_ context.Context, userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			b.Restaurant = r.restaurants[b.RestaurantID]
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingAt.After(out[j].BookingAt) })
	return out, nil
}

var _ domain.Repository = (*memRepo)(nil)

// ------------------------------------------------------
// Gateway
// ------------------------------------------------------

type fakeGateway struct {
	pricing  domain.Pricing
	requests []payment.LinkRequest
	err      error
}

func (g *fakeGateway) CreatePaymentLink(_ context.Context, req payment.LinkRequest) (*payment.Link, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return &payment.Link{
		ID:       "plink_" + req.BookingID,
		ShortURL: "https://rzp.io/l/" + req.BookingID,
		Amount:   g.pricing.Deposit(req.NumberOfGuests),
		Currency: payment.Currency,
	}, nil
}

// ------------------------------------------------------
// Notifier
// ------------------------------------------------------

type sentNotice struct {
	kind   string
	notice notify.BookingNotice
}

type fakeNotifier struct {
	sent []sentNotice
	err  error
}

func (n *fakeNotifier) BookingAccepted(_ context.Context, notice notify.BookingNotice) error {
	n.sent = append(n.sent, sentNotice{kind: "accepted", notice: notice})
	return n.err
}

func (n *fakeNotifier) BookingRejected(_ context.Context, notice notify.BookingNotice) error {
	n.sent = append(n.sent, sentNotice{kind: "rejected", notice: notice})
	return n.err
}

// ------------------------------------------------------
// Audit / broker / locker
// ------------------------------------------------------

type auditRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *auditRecorder) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *auditRecorder) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type published struct {
	restaurantID string
	event        realtime.Event
}

type fakeBroker struct {
	events []published
	err    error
}

func (b *fakeBroker) Publish(_ context.Context, restaurantID string, ev realtime.Event) error {
	b.events = append(b.events, published{restaurantID: restaurantID, event: ev})
	return b.err
}

func (b *fakeBroker) Subscribe(context.Context, string) (realtime.Subscription, error) {
	return nil, errors.New("not supported")
}

type heldLocker struct{}

func (heldLocker) TryLock(context.Context, string, time.Duration) (func(), bool, error) {
	return nil, false, nil
}

// ------------------------------------------------------
// Fixture
// ------------------------------------------------------

var (
	testPricing = domain.Pricing{DepositPerGuest: 5000, PayoutPerGuest: 40}
	visitAt     = time.Date(2030, 1, 2, 14, 0, 0, 0, time.UTC)
)

const (
	ownerID      = "owner-1"
	otherOwnerID = "owner-2"
	customerID   = "cust-1"
	restaurantID = "rest-1"
	testSecret   = "rzp_test_secret"
)

func newFixture() *memRepo {
	r := newMemRepo()
	r.addUser(models.User{ID: ownerID, Name: "Owner", Email: "owner@example.com", Role: models.RoleOwner})
	r.addUser(models.User{ID: otherOwnerID, Name: "Other", Email: "other@example.com", Role: models.RoleOwner})
	r.addUser(models.User{ID: customerID, Name: "Asha", Email: "asha@example.com", Role: models.RoleCustomer})
	r.addRestaurant(models.Restaurant{ID: restaurantID, OwnerID: ownerID, Name: "Spice Route", Timezone: "Asia/Kolkata"})
	r.addRestaurant(models.Restaurant{ID: "rest-2", OwnerID: otherOwnerID, Name: "Elsewhere", Timezone: "Asia/Kolkata"})
	return r
}

func seedBooking(r *memRepo, id string, st domain.Status) models.Booking {
	b := models.Booking{
		ID:             id,
		UserID:         customerID,
		RestaurantID:   restaurantID,
		BookingAt:      visitAt,
		NumberOfGuests: 3,
		Category:       string(domain.CategoryDinner),
		PhoneNumber:    "9876543210",
		Status:         string(st),
	}
	if st != domain.StatusPending && st != domain.StatusRejected {
		linkID, url := "plink_"+id, "https://rzp.io/l/"+id
		b.PaymentLinkID, b.PaymentLinkURL = &linkID, &url
	}
	return r.addBooking(b)
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
