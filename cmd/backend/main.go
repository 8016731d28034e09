package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/handlers"
	"gorm.io/gorm"

	"staybooking/pkg/config"
	"staybooking/pkg/database"
	"staybooking/pkg/models"
	"staybooking/pkg/queue"
)

const notifyRetries = 3

var (
	db         *gorm.DB
	signingKey []byte
	outbox     = queue.NewQueue()
	now        = time.Now
)

// logSender stands in for a mail transport.
type logSender struct{}

func (logSender) Send(ctx context.Context, msg *queue.Message) error {
	log.Printf("Notify %s: %s", msg.To, msg.Subject)
	return nil
}

var records = []interface{}{
	&models.AccountRecord{},
	&models.RoomRecord{},
	&models.BookingRecord{},
	&models.ReviewRecord{},
}

func main() {
	log.Println("Starting staybooking backend...")

	config.LoadDotEnv(log.Default())
	cfg, err := config.LoadBackend()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	signingKey = cfg.SigningKey

	switch cfg.Driver {
	case "postgres":
		db, err = database.OpenPostgres(cfg.Postgres, 10, records...)
	default:
		log.Printf("Using SQLite database at %s", cfg.SQLitePath)
		db, err = database.OpenSQLite(cfg.SQLitePath, records...)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connected successfully")

	if cfg.Seed {
		if err := seedData(); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           withCORS(setupRouter(), cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go queue.NewWorker(outbox, logSender{}, 2*time.Second, 30*time.Second, log.Default()).Run(ctx)

	go func() {
		log.Printf("Backend starting on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}

func setupRouter() *gin.Engine {
	server := gin.Default()

	server.POST("/auth/register", register)
	server.POST("/auth/login", login)

	server.GET("/rooms", getRooms)
	server.GET("/rooms/:id", getRoom)
	server.GET("/rooms/:id/reviews", getReviews)

	bookings := server.Group("/bookings", authRequired())
	bookings.POST("", createBooking)
	bookings.GET("/my", getMyBookings)
	bookings.GET("/managed", getManagedBookings)
	bookings.POST("/:id/confirm", confirmBooking)
	bookings.POST("/:id/reject", rejectBooking)

	server.GET("/manage/health", healthCheck)
	return server
}

func withCORS(h http.Handler, origins []string) http.Handler {
	return handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}),
	)(h)
}

func healthCheck(ctx *gin.Context) {
	if err := database.Ping(db); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
			"error":   err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "UP"})
}
