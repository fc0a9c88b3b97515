package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/audit"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/config"
	domain "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/domain/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/handlers"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/infra/cache"
	infraRepo "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/infra/repository"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/infra/storage"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/middleware"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/payment"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/realtime"
	ucBooking "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/usecase/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/validators"
)

// Deps are the outside services the routes are built on. main wires the
// real ones; tests pass fakes.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Audit    audit.Sink
	Gateway  payment.Gateway
	Notifier ucBooking.Notifier
	Broker   realtime.Broker
	Locker   cache.Locker
	Store    storage.ObjectStore

	// Optional.
	Clock      ucBooking.Clock
	CheckEmail validators.EmailDomainCheck
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg))

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)

	pricing := domain.Pricing{
		DepositPerGuest: cfg.DepositPerGuestPaise,
		PayoutPerGuest:  cfg.PayoutPerGuest,
	}

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		d.Broker,
		d.Audit,
		d.Clock,
	)

	changeStatusUC := ucBooking.NewChangeStatus(
		bookingRepo,
		d.Gateway,
		d.Notifier,
		pricing,
		cfg.PaymentCallbackURL(),
		d.Audit,
	)

	executeBookingUC := ucBooking.NewExecuteBooking(
		bookingRepo,
		pricing,
		d.Audit,
		d.Clock,
	)

	reconcilePaymentUC := ucBooking.NewReconcilePayment(
		bookingRepo,
		payment.NewVerifier(cfg.RazorpayKeySecret),
		d.Locker,
		d.Audit,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg, d.Audit, d.CheckEmail)
	meHandler := handlers.NewMeHandler(d.DB)
	restaurantHandler := handlers.NewRestaurantHandler(d.DB, d.Store, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
	realtimeHandler := handlers.NewRealtimeHandler(d.DB, d.Broker, cfg.AllowedOrigins)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		changeStatusUC,
		executeBookingUC,
		ucBooking.NewListRestaurantBookings(bookingRepo),
		ucBooking.NewListCustomerBookings(bookingRepo),
	)

	paymentHandler := handlers.NewPaymentHandler(reconcilePaymentUC)

	auth := middleware.AuthMiddleware(cfg)
	customerOnly := middleware.RequireRole(models.RoleCustomer)
	ownerOnly := middleware.RequireRole(models.RoleOwner)

	// ======================================================
	// BOOKINGS
	// ======================================================
	r.POST("/create-booking", auth, customerOnly, bookingHandler.Create)
	r.POST("/get-bookings-by-customer", auth, customerOnly, bookingHandler.ListByCustomer)
	r.POST("/get-bookings-by-restaurant", auth, ownerOnly, bookingHandler.ListByRestaurant)
	r.POST("/change-booking-status-for-restaurant", auth, ownerOnly, bookingHandler.ChangeStatus)
	r.POST("/execute-booking", auth, ownerOnly, bookingHandler.Execute)

	// called from the payment status page, no session
	r.POST("/payment-callback", paymentHandler.Callback)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(auth)
		{
			secured.GET("/me", meHandler.GetMe)

			owner := secured.Group("/me")
			owner.Use(ownerOnly)
			{
				owner.GET("/restaurant", restaurantHandler.GetMeRestaurant)
				owner.PATCH("/restaurant", restaurantHandler.UpdateMeRestaurant)
				owner.PUT("/restaurant/image", restaurantHandler.UploadImage)

				owner.GET("/audit-logs", auditLogsHandler.List)
				owner.GET("/bookings/stream", realtimeHandler.Stream)
			}
		}
	}
}
