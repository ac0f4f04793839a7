package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	handler "github.com/pairmed/api/internal/adapters/handler/http"
	"github.com/pairmed/api/internal/adapters/oauth/google"
	"github.com/pairmed/api/internal/adapters/repository/postgres"
	"github.com/pairmed/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	connStr := dbConnString()
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Println("Warning: JWT_SECRET not set")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	authRepo := postgres.NewAuthRepository(db)
	inviteRepo := postgres.NewInviteRepository(db)
	coupleRepo := postgres.NewCoupleRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	eventFeed := postgres.NewEventFeed(connStr)

	// Services
	authService := services.NewAuthService(userRepo, authRepo, google.NewVerifier(), []byte(jwtSecret), os.Getenv("GOOGLE_CLIENT_ID"))
	userService := services.NewUserService(userRepo)
	coupleService := services.NewCoupleService(inviteRepo, coupleRepo)
	notificationService := services.NewNotificationService(notificationRepo, coupleRepo)
	tripService := services.NewTripService(tripRepo, coupleRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, os.Getenv("AUTH_REDIRECT_URL"), os.Getenv("COOKIE_DOMAIN"), stdhttp.SameSiteLaxMode)
	userHandler := handler.NewUserHandler(userService)
	coupleHandler := handler.NewCoupleHandler(coupleService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	tripHandler := handler.NewTripHandler(tripService)
	eventsHandler := handler.NewEventsHandler(eventFeed)
	authMiddleware := handler.NewAuthMiddleware([]byte(jwtSecret))

	allowedOrigins := strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",")
	router := handler.NewHandler(coupleHandler, tripHandler, notificationHandler, eventsHandler, userHandler, authHandler, authMiddleware, allowedOrigins)

	server := &stdhttp.Server{Addr: "0.0.0.0:8080", Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func dbConnString() string {
	dbName := os.Getenv("POSTGRES_DB")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
