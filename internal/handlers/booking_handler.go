package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/domain/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/dto"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httpresp"
	ucBooking "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create         *ucBooking.CreateBooking
	changeStatus   *ucBooking.ChangeStatus
	execute        *ucBooking.ExecuteBooking
	listRestaurant *ucBooking.ListRestaurantBookings
	listCustomer   *ucBooking.ListCustomerBookings
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	changeStatus *ucBooking.ChangeStatus,
	execute *ucBooking.ExecuteBooking,
	listRestaurant *ucBooking.ListRestaurantBookings,
	listCustomer *ucBooking.ListCustomerBookings,
) *BookingHandler {
	return &BookingHandler{
		create:         create,
		changeStatus:   changeStatus,
		execute:        execute,
		listRestaurant: listRestaurant,
		listCustomer:   listCustomer,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	raw, ok := bindObject(c)
	if !ok {
		return
	}
	in, err := domain.DecodeCreate(raw)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	b, err := h.create.Execute(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"message": "Booking created.",
		"booking": dto.NewBookingDTO(b),
	})
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByRestaurant(c *gin.Context) {
	bookings, err := h.listRestaurant.Execute(c.Request.Context(), currentUserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, bookings)
}

func (h *BookingHandler) ListByCustomer(c *gin.Context) {
	bookings, err := h.listCustomer.Execute(c.Request.Context(), currentUserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, bookings)
}

// ======================================================
// OWNER ACTIONS
// ======================================================

func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	var in domain.StatusChangeInput
	if !bindJSON(c, &in) {
		return
	}

	res, err := h.changeStatus.Execute(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	msg := "Booking status updated."
	if !res.EmailSent {
		msg = "Booking status updated, but the customer could not be emailed."
	}

	httpresp.OK(c, gin.H{
		"message":   msg,
		"booking":   dto.NewBookingDTO(res.Booking),
		"emailSent": res.EmailSent,
	})
}

func (h *BookingHandler) Execute(c *gin.Context) {
	var in domain.ExecuteInput
	if !bindJSON(c, &in) {
		return
	}

	res, err := h.execute.Execute(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Booking marked as executed.",
		"booking": dto.NewBookingDTO(res.Booking),
		"note":    res.Note,
	})
}
