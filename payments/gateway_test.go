package payments

import (
	"context"
	"testing"
)

func TestNewMercadoPagoGateway_MockMode(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "1")

	g, err := NewMercadoPagoGateway("")
	if err != nil {
		t.Fatalf("mock gateway should not require a token: %v", err)
	}

	status, err := g.GetPaymentStatus(context.Background(), "12345")
	if err != nil {
		t.Fatalf("mock status lookup failed: %v", err)
	}
	if status != StatusApproved {
		t.Errorf("mock status = %q, want %q", status, StatusApproved)
	}
}

func TestNewMercadoPagoGateway_MissingToken(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")

	if _, err := NewMercadoPagoGateway(""); err != ErrMissingAccessToken {
		t.Errorf("expected ErrMissingAccessToken, got %v", err)
	}
}

func TestGetPaymentStatus_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	if _, err := g.GetPaymentStatus(context.Background(), "1"); err != ErrGatewayNotConfigured {
		t.Errorf("expected ErrGatewayNotConfigured, got %v", err)
	}
}

func TestIsApproved(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"approved", true},
		{"Approved", true},
		{"pending", false},
		{"rejected", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsApproved(tt.status); got != tt.want {
			t.Errorf("IsApproved(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestIsMockEnabled_Values(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", " on ", "mock"} {
		t.Setenv("PAYMENT_GATEWAY_MOCK", v)
		if !isMockEnabled() {
			t.Errorf("expected %q to enable mock mode", v)
		}
	}
	t.Setenv("PAYMENT_GATEWAY_MOCK", "off")
	t.Setenv("MERCADOPAGO_MOCK", "")
	if isMockEnabled() {
		t.Error("expected \"off\" to disable mock mode")
	}
}
