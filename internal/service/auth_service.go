package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"storefront/internal/auth"
	"storefront/internal/cache"
	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Address  string
}

// GoogleLoginInput carries the identity asserted by the client.
// IDToken is required whenever a GoogleVerifier is configured.
type GoogleLoginInput struct {
	IDToken  string
	GoogleID string
	Email    string
	Name     string
}

// AuthResult is a successful authentication with its session token.
type AuthResult struct {
	User        *model.UnifiedUser
	Token       string
	ExpiresIn   string
	OtpRequired bool
	IsNewUser   bool
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GoogleLogin(ctx context.Context, in GoogleLoginInput) (*AuthResult, error)
	ValidateToken(ctx context.Context, token string) (*model.UnifiedUser, error)
}

type authService struct {
	users     repository.UserRepository
	validator *CredentialValidator
	otp       OtpService
	tokens    auth.TokenIssuer
	google    auth.GoogleVerifier
	cache     userCache
}

// NewAuthService creates a new authentication service.
// A nil google verifier trusts the identity supplied by the client.
func NewAuthService(
	users repository.UserRepository,
	otp OtpService,
	tokens auth.TokenIssuer,
	google auth.GoogleVerifier,
	cache *cache.Client,
) AuthService {
	if google == nil {
		log.Println("[auth] GOOGLE_CLIENT_ID not set, Google identities are trusted as supplied")
	}
	return &authService{
		users:     users,
		validator: NewCredentialValidator(users),
		otp:       otp,
		tokens:    tokens,
		google:    google,
		cache:     userCache{client: cache},
	}
}

// Register creates a local account, issues an OTP and returns a token.
// OTP failures never undo the account; they only clear OtpRequired.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := NormalizeEmail(in.Email)

	// Check if user already exists
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrAlreadyExists
	}
	// If error is not "record not found", return it (could be a database error)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, upstream("check user existence", err)
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, upstream("hash password", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: &hashed,
		Name:         strings.TrimSpace(in.Name),
		Phone:        in.Phone,
		Address:      in.Address,
		AuthProvider: model.AuthProviderLocal,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyExists
		}
		return nil, upstream("create user", err)
	}

	otpRequired := false
	if issue, err := s.otp.Issue(ctx, email); err != nil {
		log.Printf("[auth] otp issuance failed for %s: %v", email, err)
	} else {
		otpRequired = issue.EmailSent
	}

	result, err := s.session(user)
	if err != nil {
		return nil, err
	}
	result.OtpRequired = otpRequired
	result.IsNewUser = true
	return result, nil
}

// Login checks credentials against the store and mints a token.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.validator.Validate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, upstream("issue token", err)
	}
	return &AuthResult{User: user, Token: token, ExpiresIn: s.tokens.ExpiresIn()}, nil
}

// GoogleLogin logs in by provider id, links by email, or creates a pre-verified google account.
func (s *authService) GoogleLogin(ctx context.Context, in GoogleLoginInput) (*AuthResult, error) {
	googleID, email, name := in.GoogleID, NormalizeEmail(in.Email), strings.TrimSpace(in.Name)

	if s.google != nil {
		if in.IDToken == "" {
			return nil, apperrors.ErrInvalidToken
		}
		identity, err := s.google.Verify(ctx, in.IDToken)
		if err != nil {
			log.Printf("[auth] google token rejected: %v", err)
			return nil, apperrors.ErrInvalidToken
		}
		googleID = identity.Subject
		// An unverified address cannot be used to link or create accounts.
		email = ""
		if identity.EmailVerified {
			email = NormalizeEmail(identity.Email)
		}
		if identity.Name != "" {
			name = identity.Name
		}
	}
	if googleID == "" {
		return nil, apperrors.ErrInsufficientInfo
	}

	user, err := s.users.FindByGoogleID(ctx, googleID)
	if err == nil {
		return s.session(user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, upstream("find user by google id", err)
	}

	if email != "" {
		user, err = s.users.FindByEmail(ctx, email)
		if err == nil {
			if err := s.users.LinkGoogleID(ctx, user.ID, googleID); err != nil {
				return nil, upstream("link google id", err)
			}
			user.GoogleID = &googleID
			s.cache.invalidate(ctx, user.ID)
			log.Printf("[auth] linked google account to %s", email)
			return s.session(user)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, upstream("find user by email", err)
		}
	}

	if email == "" || name == "" {
		return nil, apperrors.ErrInsufficientInfo
	}

	user = &model.User{
		Email:        email,
		Name:         name,
		GoogleID:     &googleID,
		IsVerified:   true,
		AuthProvider: model.AuthProviderGoogle,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyExists
		}
		return nil, upstream("create google user", err)
	}

	result, err := s.session(user)
	if err != nil {
		return nil, err
	}
	result.IsNewUser = true
	return result, nil
}

// ValidateToken resolves a token to its user. Unknown users are ErrNotFound.
func (s *authService) ValidateToken(ctx context.Context, token string) (*model.UnifiedUser, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	id, err := claims.UserUUID()
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, upstream("find user", err)
	}
	return user.Unified(), nil
}

func (s *authService) session(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, upstream("issue token", err)
	}
	return &AuthResult{User: user.Unified(), Token: token, ExpiresIn: s.tokens.ExpiresIn()}, nil
}
