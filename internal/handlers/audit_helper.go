package handlers

import (
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/audit"
)

func writeAudit(
	sink audit.Sink,
	restaurantID string,
	userID string,
	action string,
	meta any,
) {
	if sink == nil {
		return
	}
	sink.Dispatch(audit.Event{
		RestaurantID: restaurantID,
		UserID:       &userID,
		Action:       action,
		Entity:       "restaurant",
		EntityID:     &restaurantID,
		Metadata:     meta,
	})
}
