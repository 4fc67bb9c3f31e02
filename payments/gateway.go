// Package payments wraps the Mercado Pago SDK behind the small surface the
// deposit-sync endpoint needs.
package payments

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingAccessToken = errors.New("missing payment gateway access token")
var ErrGatewayNotConfigured = errors.New("payment gateway not configured")

// Statuses the provider reports that we treat as a settled deposit.
const StatusApproved = "approved"

// Gateway looks up the provider-side state of a payment.
type Gateway interface {
	GetPaymentStatus(ctx context.Context, providerPaymentID string) (string, error)
}

// MercadoPagoGateway resolves payment statuses through the Mercado Pago
// SDK. With PAYMENT_GATEWAY_MOCK enabled it reports every payment as
// approved, which keeps local development and tests offline.
type MercadoPagoGateway struct {
	client   payment.Client
	mockMode bool
}

// NewMercadoPagoGateway builds a gateway from an access token.
func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if isMockEnabled() {
		log.Printf("payments: mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}, nil
	}

	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("payments: failed creating sdk config: %v", err)
		return nil, err
	}

	return &MercadoPagoGateway{client: payment.NewClient(cfg)}, nil
}

// GetPaymentStatus returns the provider status string for a payment.
func (g *MercadoPagoGateway) GetPaymentStatus(ctx context.Context, providerPaymentID string) (string, error) {
	if g != nil && g.mockMode {
		log.Printf("payments: mock status lookup id=%s", providerPaymentID)
		return StatusApproved, nil
	}
	if g == nil || g.client == nil {
		return "", ErrGatewayNotConfigured
	}

	id, err := strconv.Atoi(providerPaymentID)
	if err != nil {
		return "", errors.New("payment reference is not a valid provider id")
	}

	resp, err := g.client.Get(ctx, id)
	if err != nil {
		log.Printf("payments: sdk get failed id=%d: %v", id, err)
		return "", err
	}
	return resp.Status, nil
}

// IsApproved reports whether a provider status counts as a paid deposit.
func IsApproved(status string) bool {
	return strings.EqualFold(status, StatusApproved)
}

func isMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
