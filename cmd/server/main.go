package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "storefront/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/gateway"
	"storefront/internal/handler"
	"storefront/internal/mailer"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
)

// @title Storefront API
// @version 1.0
// @description Storefront API with email/password and Google sign-in, email OTP verification, orders, Razorpay checkout and order status notifications.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.Printf("[cache] redis unreachable at %s, continuing without cache: %v", cfg.RedisAddr, err)
	}

	mail, err := mailer.New(ctx, cfg)
	if err != nil {
		log.Fatalf("mailer init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	otpRepo := repository.NewOtpRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	paymentRepo := repository.NewPaymentRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	emailLogRepo := repository.NewEmailLogRepository(gormDB)

	emailLogs := service.NewEmailLogWorker(emailLogRepo)
	defer emailLogs.Close()

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	throttle := auth.NewCooldownThrottle(cacheClient, cfg.OtpResendCooldown)

	var googleVerifier auth.GoogleVerifier
	if cfg.GoogleClientID != "" {
		googleVerifier = auth.NewIDTokenVerifier(cfg.GoogleClientID)
	}

	var paymentGateway gateway.PaymentGateway
	if cfg.PaymentsEnabled() {
		paymentGateway = gateway.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	} else {
		log.Println("[payments] RAZORPAY_KEY_ID/RAZORPAY_KEY_SECRET not set, online payment disabled")
	}

	store := service.StoreInfo{Name: cfg.StoreName, URL: cfg.StoreURL, SupportEmail: cfg.SupportEmail}

	// Initialize services
	otpService := service.NewOtpService(otpRepo, userRepo, mail, emailLogs, throttle, cacheClient, store, cfg.OtpTTL)
	authService := service.NewAuthService(userRepo, otpService, jwtService, googleVerifier, cacheClient)
	userService := service.NewUserService(userRepo, cacheClient)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, orderRepo, mail, emailLogs, store)
	orderService := service.NewOrderService(orderRepo, paymentRepo, paymentGateway, notificationService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, otpService)
	userHandler := handler.NewUserHandler(userService)
	orderHandler := handler.NewOrderHandler(orderService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Register routes
	router.Register(
		e,
		jwtService,
		authHandler,
		userHandler,
		orderHandler,
		notificationHandler,
	)

	log.Printf("Swagger documentation available at: %s", swaggerURL(cfg.SwaggerHost))

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

// swaggerURL resolves the docs location; SWAGGER_HOST may already carry a scheme.
func swaggerURL(host string) string {
	if host == "" {
		// docker-compose maps the container's 8080 to 5000
		return "http://localhost:5000/swagger/index.html"
	}
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host + "/swagger/index.html"
	}
	return "http://" + host + "/swagger/index.html"
}
