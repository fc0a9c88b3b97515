package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/audit"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/infra/storage"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/middleware"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/timezone"
)

type RestaurantHandler struct {
	db    *gorm.DB
	store storage.ObjectStore
	audit audit.Sink
}

func NewRestaurantHandler(db *gorm.DB, store storage.ObjectStore, audit audit.Sink) *RestaurantHandler {
	return &RestaurantHandler{db: db, store: store, audit: audit}
}

type UpdateRestaurantRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
}

func (h *RestaurantHandler) load(c *gin.Context) (*models.Restaurant, bool) {
	var rest models.Restaurant
	if err := h.db.Where("owner_id = ?", currentUserID(c)).First(&rest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "restaurant_not_found", "Restaurant not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_restaurant", "Could not load restaurant.")
		return nil, false
	}

	// The token's restaurant claim must still match the owner's restaurant.
	if claimed := c.GetString(middleware.ContextRestaurantID); claimed != "" && claimed != rest.ID {
		httperr.Forbidden(c, "restaurant_mismatch", "Token does not match this restaurant.")
		return nil, false
	}
	return &rest, true
}

func (h *RestaurantHandler) GetMeRestaurant(c *gin.Context) {
	rest, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rest)
}

func (h *RestaurantHandler) UpdateMeRestaurant(c *gin.Context) {
	rest, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Name cannot be empty.")
			return
		}
		rest.Name = name
	}
	if req.Phone != nil {
		rest.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		rest.Address = strings.TrimSpace(*req.Address)
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		rest.Timezone = *req.Timezone
	}

	if err := h.db.Omit("Owner").Save(rest).Error; err != nil {
		httperr.Internal(c, "failed_to_update_restaurant", "Could not save restaurant.")
		return
	}
	writeAudit(h.audit, rest.ID, currentUserID(c), "restaurant_updated", req)

	c.JSON(http.StatusOK, rest)
}

// UploadImage replaces the restaurant cover with the "image" form file,
// stored as webp.
func (h *RestaurantHandler) UploadImage(c *gin.Context) {
	rest, ok := h.load(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxImageBytes+1<<20)

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "image_required", "Attach the image as the \"image\" form field.")
		return
	}
	if fh.Size > storage.MaxImageBytes {
		httperr.BadRequest(c, "image_too_large", "Image must be at most 8 MB.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Could not read image.")
		return
	}
	defer f.Close()

	webp, err := storage.ToWebP(f)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			httperr.BadRequest(c, "unsupported_image", "Use a JPEG, PNG, GIF or WebP image.")
			return
		}
		httperr.Internal(c, "failed_to_process_image", "Could not process image.")
		return
	}

	key := fmt.Sprintf("restaurants/%s/cover-%s.webp", rest.ID, uuid.NewString())
	url, err := h.store.Put(c.Request.Context(), key, "image/webp", webp)
	if err != nil {
		if errors.Is(err, storage.ErrStorageDisabled) {
			httperr.Write(c, http.StatusServiceUnavailable, "storage_disabled", "Image uploads are not enabled.")
			return
		}
		httperr.Internal(c, "failed_to_store_image", "Could not store image.")
		return
	}

	if err := h.db.Model(rest).Update("image_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_restaurant", "Could not save restaurant.")
		return
	}
	rest.ImageURL = url
	writeAudit(h.audit, rest.ID, currentUserID(c), "restaurant_image_updated", gin.H{"key": key})

	c.JSON(http.StatusOK, rest)
}
