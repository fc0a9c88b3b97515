package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/audit"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/config"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/timezone"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/validators"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	db         *gorm.DB
	config     *config.Config
	audit      audit.Sink
	checkEmail validators.EmailDomainCheck
}

func NewAuthHandler(
	db *gorm.DB,
	cfg *config.Config,
	audit audit.Sink,
	checkEmail validators.EmailDomainCheck,
) *AuthHandler {
	if checkEmail == nil {
		checkEmail = validators.IsEmailDomainValid
	}
	return &AuthHandler{db: db, config: cfg, audit: audit, checkEmail: checkEmail}
}

// --------- Requests ---------

type RestaurantRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"omitempty,oneof=customer owner"`

	// Required for owners.
	Restaurant *RestaurantRequest `json:"restaurant"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if role == models.RoleOwner && req.Restaurant == nil {
		httperr.BadRequest(c, "restaurant_required", "Owners must register their restaurant.")
		return
	}

	tz := timezone.Default()
	if req.Restaurant != nil && req.Restaurant.Timezone != "" {
		if !timezone.IsValid(req.Restaurant.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		tz = req.Restaurant.Timezone
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !h.checkEmail(c.Request.Context(), email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_check_email", "Could not register user.")
		return
	}
	if count > 0 {
		httperr.Write(c, http.StatusConflict, "email_already_registered", "An account with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not register user.")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         role,
	}
	var rest *models.Restaurant

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if role != models.RoleOwner {
			return nil
		}
		rest = &models.Restaurant{
			OwnerID:  user.ID,
			Name:     strings.TrimSpace(req.Restaurant.Name),
			Phone:    req.Restaurant.Phone,
			Address:  req.Restaurant.Address,
			Timezone: tz,
		}
		return tx.Omit("Owner").Create(rest).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not register user.")
		return
	}

	if rest != nil {
		writeAudit(h.audit, rest.ID, user.ID, "restaurant_registered", gin.H{"name": rest.Name})
	}

	token, err := h.generateToken(&user, rest)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not register user.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":       userJSON(&user),
		"restaurant": restaurantJSON(rest),
		"token":      token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not log in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	rest, err := ownedRestaurant(h.db, &user)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not log in.")
		return
	}

	token, err := h.generateToken(&user, rest)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not log in.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       userJSON(&user),
		"restaurant": restaurantJSON(rest),
		"token":      token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User, rest *models.Restaurant) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  now.Add(tokenTTL).Unix(),
		"iat":  now.Unix(),
	}
	if rest != nil {
		claims["restaurantId"] = rest.ID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

// --------- Shared ---------

// ownedRestaurant returns nil for customers and for owners without one.
func ownedRestaurant(db *gorm.DB, user *models.User) (*models.Restaurant, error) {
	if user.Role != models.RoleOwner {
		return nil, nil
	}
	var rest models.Restaurant
	if err := db.Where("owner_id = ?", user.ID).First(&rest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rest, nil
}

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
		"role":  u.Role,
	}
}

func restaurantJSON(r *models.Restaurant) any {
	if r == nil {
		return nil
	}
	return gin.H{
		"id":        r.ID,
		"name":      r.Name,
		"phone":     r.Phone,
		"address":   r.Address,
		"timezone":  r.Timezone,
		"image_url": r.ImageURL,
	}
}
