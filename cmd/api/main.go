package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-gonic/gin"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/audit"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/config"
	dbpkg "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/db"
	domain "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/domain/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/infra/cache"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/infra/storage"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/notify"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/payment"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/realtime"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/routes"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/timezone"
)

func initLogger(cfg *config.Config) {
	if cfg.LogFile == "" {
		return
	}
	out := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(out, os.Stderr))
	gin.DefaultWriter = io.MultiWriter(out, os.Stdout)
}

func main() {

	cfg := config.Load()
	initLogger(cfg)
	timezone.SetDefault(cfg.DefaultTimezone)

	db := dbpkg.NewDB(cfg)

	// --------------------------------------------------
	// Redis is optional; one instance runs fine without it
	// --------------------------------------------------
	var (
		broker realtime.Broker = realtime.NewLocalBroker()
		locker cache.Locker    = cache.NewLocalLocker()
	)
	if rdb := cache.NewRedisClient(cfg.RedisURL); rdb != nil {
		defer rdb.Close()
		broker = realtime.NewRedisBroker(rdb)
		locker = cache.NewRedisLocker(rdb, "reservations:")
		log.Println("redis connected")
	}

	// --------------------------------------------------
	// Outbound services
	// --------------------------------------------------
	var mailer notify.Mailer = notify.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
			Timeout:  cfg.SMTPTimeout,
		})
	} else {
		log.Println("SMTP_HOST not set, emails are only logged")
	}

	var store storage.ObjectStore = storage.DisabledStore{}
	if cfg.S3Bucket != "" {
		store = storage.NewS3Store(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
	}

	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Println("RAZORPAY_KEY_ID/RAZORPAY_KEY_SECRET not set, accepting bookings will fail")
	}
	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, domain.Pricing{
		DepositPerGuest: cfg.DepositPerGuestPaise,
		PayoutPerGuest:  cfg.PayoutPerGuest,
	})

	auditDispatcher := audit.NewDispatcher(audit.New(db))

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Audit:    auditDispatcher,
		Gateway:  gateway,
		Notifier: notify.NewBookingNotifier(mailer),
		Broker:   broker,
		Locker:   locker,
		Store:    store,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	auditDispatcher.Close()
}
