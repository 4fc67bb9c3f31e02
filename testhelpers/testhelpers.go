// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/collections"
	"paintadmin/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestClient creates a client record with the given name and returns it.
func CreateTestClient(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		t.Fatalf("failed to find clients collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("email", "client@example.com")
	record.Set("phone", "(503) 555-0100")
	record.Set("address_line_1", "88 Cedar St")
	record.Set("city", "Portland")
	record.Set("state", "OR")
	record.Set("postal_code", "97209")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test client: %v", err)
	}

	return record
}

// CreateTestQuote creates a quote record for a client using the given
// pricing scheme type. Flat-rate quotes get a small interior/exterior item
// map; production quotes get two areas.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, clientID, schemeType string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("client", clientID)
	record.Set("quote_number", "Q-TEST-001")
	record.Set("pricing_scheme_type", schemeType)
	record.Set("total", 8400.0)
	record.Set("deposit_amount", 2100.0)
	record.Set("status", "accepted")

	switch schemeType {
	case services.SchemeFlatRateUnit:
		record.Set("flat_rate_items", map[string]map[string]float64{
			"interior": {"doors": 6},
			"exterior": {"windows": 8},
		})
	case services.SchemeProduction:
		record.Set("areas", []map[string]any{
			{"id": "area1", "name": "Living Room", "squareFeet": 420},
			{"id": "area2", "surfaceType": "exterior_siding", "squareFeet": 800},
		})
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// CreateTestJob creates a job record linked to a quote and client.
func CreateTestJob(t *testing.T, app *pocketbase.PocketBase, quoteID, clientID, status string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("jobs")
	if err != nil {
		t.Fatalf("failed to find jobs collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("job_number", "PNT-JOB-24-001")
	record.Set("quote", quoteID)
	record.Set("client", clientID)
	record.Set("status", status)
	record.Set("deposit_paid", true)
	record.Set("visible_to_customer", true)
	record.Set("area_progress", map[string]services.AreaProgressEntry{})

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test job: %v", err)
	}

	return record
}

// CreateTestPricingScheme creates a pricing scheme record.
func CreateTestPricingScheme(t *testing.T, app *pocketbase.PocketBase, name, schemeType string, isDefault bool) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("pricing_schemes")
	if err != nil {
		t.Fatalf("failed to find pricing_schemes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("type", schemeType)
	record.Set("pricing_rules", map[string]map[string]any{
		"walls": {"price": 2.25, "unit": "sqft"},
	})
	record.Set("is_default", isDefault)
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test pricing scheme: %v", err)
	}

	return record
}

// CreateTestSettings creates the tenant settings record.
func CreateTestSettings(t *testing.T, app *pocketbase.PocketBase) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		t.Fatalf("failed to find settings collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("company_name", "Brightside Painting")
	record.Set("company_email", "office@brightside.example")
	record.Set("company_phone", "(503) 555-0142")
	record.Set("company_address", "14 Mill Rd, Portland, OR 97202")
	record.Set("email_from_name", "Brightside Painting")
	record.Set("email_templates", services.DefaultEmailTemplates)
	record.Set("magic_link_expiry_hours", 72)
	record.Set("magic_link_secret", "test-magic-secret")
	record.Set("cloudinary_cloud_name", "test-cloud")
	record.Set("cloudinary_api_key", "test-key")
	record.Set("cloudinary_api_secret", "test-secret")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test settings: %v", err)
	}

	return record
}

// CreateTestUser creates a users auth record with the given email and
// password.
func CreateTestUser(t *testing.T, app *pocketbase.PocketBase, email, password string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		t.Fatalf("failed to find users collection: %v", err)
	}

	record := core.NewRecord(col)
	record.SetEmail(email)
	record.SetPassword(password)
	record.SetVerified(true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test user: %v", err)
	}

	return record
}

// Envelope mirrors the API response shape for assertions.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ParseEnvelope decodes a response body into an Envelope.
func ParseEnvelope(t *testing.T, body []byte) Envelope {
	t.Helper()

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("response is not a valid envelope: %v\nbody: %s", err, truncate(string(body), 500))
	}
	return env
}

// AssertSuccess fails the test unless the body is a success envelope, and
// returns it.
func AssertSuccess(t *testing.T, body []byte) Envelope {
	t.Helper()

	env := ParseEnvelope(t, body)
	if !env.Success {
		t.Fatalf("expected success envelope, got failure: %s", env.Message)
	}
	return env
}

// AssertFailure fails the test unless the body is a failure envelope, and
// returns it.
func AssertFailure(t *testing.T, body []byte) Envelope {
	t.Helper()

	env := ParseEnvelope(t, body)
	if env.Success {
		t.Fatal("expected failure envelope, got success")
	}
	return env
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
