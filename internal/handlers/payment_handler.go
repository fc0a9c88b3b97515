package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httpresp"
	ucBooking "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/usecase/booking"
)

type PaymentHandler struct {
	reconcile *ucBooking.ReconcilePayment
}

func NewPaymentHandler(reconcile *ucBooking.ReconcilePayment) *PaymentHandler {
	return &PaymentHandler{reconcile: reconcile}
}

type callbackError struct {
	httperr.HTTPError
	BookingDone bool `json:"bookingDone"`
}

// Callback is reached by the payment status page without a session.
// Every response carries bookingDone so the page can branch on it.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		h.fail(c, httperr.ErrValidation("invalid_callback", map[string]string{
			"_": "request body must be a JSON object",
		}))
		return
	}

	res, err := h.reconcile.Execute(c.Request.Context(), raw)
	if err != nil {
		h.fail(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message":     res.Message,
		"bookingDone": res.BookingDone,
		"bookingID":   res.Booking.ID,
		"status":      res.Booking.Status,
	})
}

func (h *PaymentHandler) fail(c *gin.Context, err error) {
	status, body := httperr.Describe(c.Request.Method+" "+c.FullPath(), err)
	c.JSON(status, callbackError{HTTPError: body, BookingDone: false})
}
