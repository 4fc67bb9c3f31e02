package services

import (
	"testing"
	"time"
)

func TestSignCloudinaryUpload(t *testing.T) {
	now := time.Unix(1717200000, 0)

	sig, err := SignCloudinaryUpload("demo-cloud", "key123", "secret456", "logos", now)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if sig.CloudName != "demo-cloud" || sig.APIKey != "key123" {
		t.Errorf("unexpected identity fields: %+v", sig)
	}
	if sig.Timestamp != 1717200000 {
		t.Errorf("Timestamp = %d", sig.Timestamp)
	}
	if len(sig.Signature) != 40 {
		t.Errorf("expected 40-char sha1 hex digest, got %q", sig.Signature)
	}

	// Deterministic for identical inputs.
	again, err := SignCloudinaryUpload("demo-cloud", "key123", "secret456", "logos", now)
	if err != nil {
		t.Fatalf("second sign failed: %v", err)
	}
	if again.Signature != sig.Signature {
		t.Error("signature must be deterministic for identical inputs")
	}

	// Sensitive to the secret.
	other, err := SignCloudinaryUpload("demo-cloud", "key123", "different", "logos", now)
	if err != nil {
		t.Fatalf("third sign failed: %v", err)
	}
	if other.Signature == sig.Signature {
		t.Error("signature must depend on the API secret")
	}
}

func TestSignCloudinaryUpload_FolderOptional(t *testing.T) {
	now := time.Unix(1717200000, 0)

	withFolder, _ := SignCloudinaryUpload("c", "k", "s", "logos", now)
	without, err := SignCloudinaryUpload("c", "k", "s", "", now)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if without.Signature == withFolder.Signature {
		t.Error("folder must participate in the signed parameter set")
	}
}

func TestSignCloudinaryUpload_NotConfigured(t *testing.T) {
	for _, tc := range [][3]string{
		{"", "k", "s"},
		{"c", "", "s"},
		{"c", "k", ""},
	} {
		if _, err := SignCloudinaryUpload(tc[0], tc[1], tc[2], "", time.Now()); err != ErrCloudinaryNotConfigured {
			t.Errorf("expected ErrCloudinaryNotConfigured for %v, got %v", tc, err)
		}
	}
}
