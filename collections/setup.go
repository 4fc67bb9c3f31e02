// Package collections defines the application's PocketBase collections,
// seed data and data migrations.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the clients, quotes, jobs,
// pricing_schemes, settings, job_documents, status_events and
// password_reset_tokens collections exist, and extends the built-in users
// collection with the 2FA fields.
func Setup(app *pocketbase.PocketBase) {
	clients := ensureCollection(app, "clients", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.EmailField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.TextField{Name: "address_line_1"})
		c.Fields.Add(&core.TextField{Name: "address_line_2"})
		c.Fields.Add(&core.TextField{Name: "city"})
		c.Fields.Add(&core.TextField{Name: "state"})
		c.Fields.Add(&core.TextField{Name: "postal_code"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	quotes := ensureCollection(app, "quotes", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:         "client",
			Required:     true,
			CollectionId: clients.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "quote_number", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "pricing_scheme_type",
			Required:  true,
			Values:    []string{"flat_rate_unit", "turnkey", "sqft_turnkey", "production", "hourly"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.JSONField{Name: "areas", MaxSize: 1 << 20})
		c.Fields.Add(&core.JSONField{Name: "flat_rate_items", MaxSize: 1 << 20})
		c.Fields.Add(&core.JSONField{Name: "breakdown", MaxSize: 1 << 20})
		c.Fields.Add(&core.NumberField{Name: "total"})
		c.Fields.Add(&core.NumberField{Name: "deposit_amount"})
		c.Fields.Add(&core.BoolField{Name: "deposit_paid"})
		c.Fields.Add(&core.TextField{Name: "payment_reference"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "sent", "accepted", "lost", "reopened"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "lost_reason"})
		c.Fields.Add(&core.TextField{Name: "lost_reason_details"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	jobs := ensureCollection(app, "jobs", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "job_number", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "quote",
			Required:     true,
			CollectionId: quotes.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "client",
			Required:     true,
			CollectionId: clients.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.SelectField{
			Name:     "status",
			Required: true,
			Values: []string{
				"deposit_paid", "selections_complete", "scheduled",
				"in_progress", "paused", "completed", "on_hold",
			},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.DateField{Name: "scheduled_start_date"})
		c.Fields.Add(&core.DateField{Name: "scheduled_end_date"})
		c.Fields.Add(&core.NumberField{Name: "estimated_duration"})
		c.Fields.Add(&core.DateField{Name: "actual_start_date"})
		c.Fields.Add(&core.JSONField{Name: "area_progress", MaxSize: 1 << 20})
		c.Fields.Add(&core.BoolField{Name: "customer_selections_complete"})
		c.Fields.Add(&core.DateField{Name: "selections_submitted_at"})
		c.Fields.Add(&core.DateField{Name: "selections_approved_at"})
		c.Fields.Add(&core.BoolField{Name: "deposit_paid"})
		c.Fields.Add(&core.BoolField{Name: "visible_to_customer"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "pricing_schemes", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "type",
			Required:  true,
			Values:    []string{"flat_rate_unit", "turnkey", "sqft_turnkey", "production", "hourly"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.JSONField{Name: "pricing_rules", MaxSize: 1 << 20})
		c.Fields.Add(&core.BoolField{Name: "is_default"})
		c.Fields.Add(&core.BoolField{Name: "is_active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "settings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "company_name", Required: true})
		c.Fields.Add(&core.EmailField{Name: "company_email"})
		c.Fields.Add(&core.TextField{Name: "company_phone"})
		c.Fields.Add(&core.TextField{Name: "company_address"})
		c.Fields.Add(&core.URLField{Name: "logo_url"})
		c.Fields.Add(&core.TextField{Name: "email_from_name"})
		c.Fields.Add(&core.JSONField{Name: "email_templates", MaxSize: 1 << 20})
		c.Fields.Add(&core.NumberField{Name: "magic_link_expiry_hours"})
		c.Fields.Add(&core.URLField{Name: "magic_link_base_url"})
		c.Fields.Add(&core.TextField{Name: "magic_link_secret", Hidden: true})
		c.Fields.Add(&core.TextField{Name: "cloudinary_cloud_name"})
		c.Fields.Add(&core.TextField{Name: "cloudinary_api_key"})
		c.Fields.Add(&core.TextField{Name: "cloudinary_api_secret", Hidden: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "job_documents", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "job",
			Required:      true,
			CollectionId:  jobs.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "doc_type",
			Required:  true,
			Values:    []string{"work_order", "deposit_receipt", "job_summary"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "generated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "status_events", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "job",
			Required:      true,
			CollectionId:  jobs.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "from_status"})
		c.Fields.Add(&core.TextField{Name: "to_status", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "source",
			Required:  true,
			Values:    []string{"admin", "override", "system"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "note"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensurePasswordResetTokens(app)
	ensureUserTwoFactorFields(app)
}

// ensurePasswordResetTokens depends on the built-in users collection, so it
// is resolved by name at setup time.
func ensurePasswordResetTokens(app *pocketbase.PocketBase) {
	users, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		log.Printf("setup: users collection not found, skipping reset tokens: %v", err)
		return
	}
	ensureCollection(app, "password_reset_tokens", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "user",
			Required:      true,
			CollectionId:  users.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "token", Required: true})
		c.Fields.Add(&core.DateField{Name: "expires", Required: true})
		c.Fields.Add(&core.BoolField{Name: "used"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureUserTwoFactorFields adds the 2FA fields to the built-in users auth
// collection when they are missing.
func ensureUserTwoFactorFields(app *pocketbase.PocketBase) {
	users, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		log.Printf("setup: users collection not found, skipping 2FA fields: %v", err)
		return
	}

	changed := false
	if users.Fields.GetByName("twofa_enabled") == nil {
		users.Fields.Add(&core.BoolField{Name: "twofa_enabled"})
		changed = true
	}
	if users.Fields.GetByName("twofa_secret") == nil {
		users.Fields.Add(&core.TextField{Name: "twofa_secret", Hidden: true})
		changed = true
	}
	if changed {
		if err := app.Save(users); err != nil {
			log.Fatalf("Failed to add 2FA fields to users: %v", err)
		}
	}
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
