package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storefront/internal/auth"
	"storefront/internal/errors"
	"storefront/internal/handler"
	"storefront/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	tokens *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	orderHandler *handler.OrderHandler,
	notificationHandler *handler.NotificationHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	secured := JWTMiddleware(tokens.Secret())

	// Public auth routes
	authGroup := api.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/verify-otp", authHandler.VerifyOtp)
	authGroup.POST("/resend-otp", authHandler.ResendOtp)
	authGroup.POST("/google", authHandler.Google)
	authGroup.POST("/validate", authHandler.Validate)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/health", authHandler.Health)
	authGroup.GET("/check-user/:email", userHandler.CheckUser)

	// Secured auth routes
	authGroup.GET("/profile", userHandler.Profile, secured)
	authGroup.GET("/user/:id", userHandler.GetUser, secured)

	// Order routes
	orders := api.Group("/orders", secured)
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.POST("/:id/verify-payment", orderHandler.VerifyPayment)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus, handler.AdminOnly)

	// Notification routes
	api.POST("/notifications", notificationHandler.Create, secured)
}

// JWTMiddleware verifies bearer tokens and stores *auth.Claims under "user".
func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  secret,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			message, code := "Invalid token", "INVALID_TOKEN"
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				message, code = "No token provided", "NO_TOKEN"
			}
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Success: false,
				Error:   message,
				Code:    code,
			})
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator with the storefront's custom tags.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("in_mobile", func(fl validator.FieldLevel) bool {
		return service.ValidIndianMobile(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
