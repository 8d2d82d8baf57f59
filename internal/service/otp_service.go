package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"gorm.io/gorm"

	"storefront/internal/auth"
	"storefront/internal/cache"
	apperrors "storefront/internal/errors"
	"storefront/internal/mailer"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// DefaultOtpTTL is how long an issued code stays valid.
const DefaultOtpTTL = 10 * time.Minute

const (
	otpMin   = 100000
	otpRange = 900000
)

// OtpIssue describes a freshly issued code. Code never leaves the service layer.
type OtpIssue struct {
	Code      string
	ExpiresAt time.Time
	EmailSent bool
	MessageID string
}

// OtpService issues and verifies email one-time codes.
type OtpService interface {
	Issue(ctx context.Context, email string) (*OtpIssue, error)
	Verify(ctx context.Context, email, code string) error
	Resend(ctx context.Context, email string) (*OtpIssue, error)
}

type otpService struct {
	otps      repository.OtpRepository
	users     repository.UserRepository
	mailer    mailer.Mailer
	emailLogs EmailLogger
	throttle  auth.OtpThrottle
	cache     userCache
	store     StoreInfo
	ttl       time.Duration
	now       func() time.Time
	generate  func() (string, error)
}

// NewOtpService creates a new OTP service. A zero ttl falls back to DefaultOtpTTL.
func NewOtpService(
	otps repository.OtpRepository,
	users repository.UserRepository,
	m mailer.Mailer,
	emailLogs EmailLogger,
	throttle auth.OtpThrottle,
	cache *cache.Client,
	store StoreInfo,
	ttl time.Duration,
) OtpService {
	if ttl <= 0 {
		ttl = DefaultOtpTTL
	}
	return &otpService{
		otps:      otps,
		users:     users,
		mailer:    m,
		emailLogs: emailLogs,
		throttle:  throttle,
		cache:     userCache{client: cache},
		store:     store,
		ttl:       ttl,
		now:       time.Now,
		generate:  generateOtpCode,
	}
}

// generateOtpCode draws uniformly from 100000..999999 so codes are always six digits.
func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", otpMin+n.Int64()), nil
}

// Issue stores a new code for email, superseding any previous one, and mails it.
// A failed send is reported through EmailSent, never as an error.
func (s *otpService) Issue(ctx context.Context, email string) (*OtpIssue, error) {
	email = NormalizeEmail(email)

	code, err := s.generate()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	record := &model.OtpVerification{
		Email:     email,
		Otp:       code,
		ExpiresAt: s.now().Add(s.ttl),
		Verified:  false,
	}
	if err := s.otps.Upsert(ctx, record); err != nil {
		return nil, upstream("store otp", err)
	}

	issue := &OtpIssue{Code: code, ExpiresAt: record.ExpiresAt}
	issue.MessageID, err = s.send(ctx, email, code)
	if err != nil {
		log.Printf("[otp] email delivery failed for %s: %v", email, err)
		return issue, nil
	}
	issue.EmailSent = true
	return issue, nil
}

func (s *otpService) send(ctx context.Context, email, code string) (string, error) {
	if s.mailer == nil {
		return "", mailer.ErrNotConfigured
	}

	text, html, err := renderOtpEmail(otpEmailData{
		Store:         s.store,
		Code:          code,
		ExpiryMinutes: int(s.ttl / time.Minute),
	})
	if err != nil {
		return "", fmt.Errorf("render otp email: %w", err)
	}

	subject := fmt.Sprintf("Your %s verification code", s.store.Name)
	messageID, err := s.mailer.Send(ctx, email, subject, text, html)

	entry := model.EmailLog{Recipient: email, Kind: model.EmailKindOtp, MessageID: messageID, Status: model.EmailStatusSent}
	if err != nil {
		entry.Status = model.EmailStatusFailed
		entry.ErrorMessage = err.Error()
	}
	if s.emailLogs != nil {
		s.emailLogs.Record(ctx, entry)
	}
	return messageID, err
}

// Verify consumes the active code for email and marks the account verified.
// Wrong, reused and foreign codes are all reported as ErrInvalidOtp.
func (s *otpService) Verify(ctx context.Context, email, code string) error {
	email = NormalizeEmail(email)

	record, err := s.otps.FindActive(ctx, email, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidOtp
		}
		return upstream("find otp", err)
	}

	// Expired rows stay in place until the next Issue overwrites them.
	if record.Expired(s.now()) {
		return apperrors.ErrOtpExpired
	}

	err = s.otps.WithTransaction(ctx, func(ctx context.Context, otps repository.OtpRepository, users repository.UserRepository) error {
		marked, err := otps.MarkVerified(ctx, record.ID)
		if err != nil {
			return upstream("mark otp verified", err)
		}
		if !marked {
			// A concurrent Verify consumed the code first.
			return apperrors.ErrInvalidOtp
		}
		if err := users.SetVerifiedByEmail(ctx, email); err != nil {
			return upstream("set user verified", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if user, err := s.users.FindByEmail(ctx, email); err == nil {
		s.cache.invalidate(ctx, user.ID)
	}
	return nil
}

// Resend issues a new code for an existing account, subject to the resend cooldown.
func (s *otpService) Resend(ctx context.Context, email string) (*OtpIssue, error) {
	email = NormalizeEmail(email)

	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, upstream("find user", err)
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			log.Printf("[otp] throttle check failed for %s: %v", email, err)
		} else if !allowed {
			return nil, apperrors.ErrTooManyRequests
		}
	}

	return s.Issue(ctx, email)
}
