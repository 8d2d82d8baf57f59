package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "storefront/internal/errors"
)

// DefaultTokenExpiry is the validity window of a session token.
const DefaultTokenExpiry = 24 * time.Hour

// Claims represents JWT claims carried by a session token.
type Claims struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// UserUUID parses the subject user id.
func (c *Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// TokenIssuer mints and verifies session tokens.
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string, isAdmin bool) (string, error)
	Verify(tokenString string) (*Claims, error)
	ExpiresIn() string
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ TokenIssuer = (*JWTService)(nil)

// NewJWTService creates a new JWT service with the given secret and lifetime.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = DefaultTokenExpiry
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Secret is the HMAC key the router hands to the echo-jwt middleware.
func (s *JWTService) Secret() []byte {
	return s.secret
}

// ExpiresIn renders the validity window the way clients expect it ("24h").
func (s *JWTService) ExpiresIn() string {
	if s.ttl%time.Hour == 0 {
		return fmt.Sprintf("%dh", int(s.ttl/time.Hour))
	}
	return s.ttl.String()
}

// Issue generates a signed session token for the user.
func (s *JWTService) Issue(userID uuid.UUID, email string, isAdmin bool) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:  userID.String(),
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a token and returns its claims.
// Every signature, expiry or shape failure is reported as ErrInvalidToken.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
