package services

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Magic-link token errors.
var (
	ErrMagicLinkSecretMissing = errors.New("magic link secret is not configured")
	ErrMagicLinkInvalid       = errors.New("magic link token is invalid or expired")
)

// MagicLinkClaims identifies the client (and optionally the job) a portal
// token grants access to.
type MagicLinkClaims struct {
	ClientID string `json:"clientId"`
	JobID    string `json:"jobId,omitempty"`
	jwt.RegisteredClaims
}

// IssueMagicLinkToken signs a portal access token for a client, valid for
// expiryHours from now. expiryHours values below 1 fall back to 24.
func IssueMagicLinkToken(secret, clientID, jobID string, expiryHours int, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrMagicLinkSecretMissing
	}
	if expiryHours < 1 {
		expiryHours = 24
	}
	claims := MagicLinkClaims{
		ClientID: clientID,
		JobID:    jobID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiryHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyMagicLinkToken parses and validates a portal token, returning its
// claims.
func VerifyMagicLinkToken(secret, tokenString string) (*MagicLinkClaims, error) {
	if secret == "" {
		return nil, ErrMagicLinkSecretMissing
	}
	claims := &MagicLinkClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrMagicLinkInvalid
	}
	return claims, nil
}

// MagicLinkURL composes the portal URL the customer receives. baseURL may
// or may not carry a trailing slash.
func MagicLinkURL(baseURL, token string) string {
	if baseURL == "" {
		baseURL = "/portal"
	}
	return fmt.Sprintf("%s?token=%s", baseURL, url.QueryEscape(token))
}
