package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	var user models.User
	if err := h.db.Where("id = ?", currentUserID(c)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Could not load profile.")
		return
	}

	rest, err := ownedRestaurant(h.db, &user)
	if err != nil {
		httperr.Internal(c, "failed_to_get_restaurant", "Could not load profile.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       userJSON(&user),
		"restaurant": restaurantJSON(rest),
	})
}
