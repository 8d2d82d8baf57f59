package auth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleIdentity is the subject asserted by a verified Google ID token.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// GoogleVerifier checks a Google ID token and extracts its identity.
type GoogleVerifier interface {
	Verify(ctx context.Context, rawToken string) (*GoogleIdentity, error)
}

// ErrGoogleToken is returned when an ID token fails verification.
var ErrGoogleToken = errors.New("invalid google id token")

// IDTokenVerifier validates tokens against Google's published signing keys.
type IDTokenVerifier struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

// NewIDTokenVerifier builds a verifier for the OAuth client id (the token audience).
func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{clientID: clientID, validate: idtoken.Validate}
}

// Verify validates signature, issuer, audience and expiry.
func (v *IDTokenVerifier) Verify(ctx context.Context, rawToken string) (*GoogleIdentity, error) {
	payload, err := v.validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGoogleToken, err)
	}
	if payload.Subject == "" {
		return nil, ErrGoogleToken
	}

	identity := &GoogleIdentity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	return identity, nil
}
