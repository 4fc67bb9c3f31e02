package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/security"

	"paintadmin/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type pricingSchemeDef struct {
	name         string
	schemeType   string
	pricingRules map[string]map[string]any
	isDefault    bool
	isActive     bool
}

type clientDef struct {
	name         string
	email        string
	phone        string
	addressLine1 string
	city         string
	state        string
	postalCode   string
}

type quoteDef struct {
	quoteNumber   string
	schemeType    string
	flatRateItems map[string]map[string]float64
	areas         []map[string]any
	total         float64
	depositAmount float64
	status        string
}

var seedPricingSchemes = []pricingSchemeDef{
	{
		name:       "Production (per area)",
		schemeType: services.SchemeProduction,
		pricingRules: map[string]map[string]any{
			"walls":    {"price": 2.25, "unit": "sqft"},
			"ceilings": {"price": 2.75, "unit": "sqft"},
			"trim":     {"price": 1.85, "unit": "lnft"},
		},
		isDefault: true,
		isActive:  true,
	},
	{
		name:       "Flat rate per unit",
		schemeType: services.SchemeFlatRateUnit,
		pricingRules: map[string]map[string]any{
			"doors":    {"price": 95.0, "unit": "unit"},
			"windows":  {"price": 65.0, "unit": "unit"},
			"cabinets": {"price": 850.0, "unit": "set"},
		},
		isActive: true,
	},
	{
		name:       "Turnkey whole house",
		schemeType: services.SchemeTurnkey,
		pricingRules: map[string]map[string]any{
			"whole_house": {"price": 6500.0, "unit": "project"},
		},
		isActive: true,
	},
	{
		name:       "Turnkey per square foot",
		schemeType: services.SchemeSqftTurnkey,
		pricingRules: map[string]map[string]any{
			"whole_house": {"price": 3.5, "unit": "sqft"},
		},
		isActive: true,
	},
}

var seedClient = clientDef{
	name:         "Dana Alvarez",
	email:        "dana.alvarez@example.com",
	phone:        "(503) 555-0188",
	addressLine1: "88 Cedar St",
	city:         "Portland",
	state:        "OR",
	postalCode:   "97209",
}

var seedQuote = quoteDef{
	quoteNumber: "Q-2024-031",
	schemeType:  services.SchemeFlatRateUnit,
	flatRateItems: map[string]map[string]float64{
		"interior": {"doors": 6, "cabinets": 1},
		"exterior": {"windows": 8},
	},
	total:         8400,
	depositAmount: 2100,
	status:        "accepted",
}

// Seed populates the settings singleton, the default pricing schemes and a
// sample client/quote/job. It is safe to call on every startup because each
// section returns early when records already exist.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedSettings(app); err != nil {
		return err
	}
	if err := seedPricingSchemeRecords(app); err != nil {
		return err
	}
	return seedSampleJob(app)
}

// seedSettings creates the tenant settings record when none exists.
func seedSettings(app *pocketbase.PocketBase) error {
	settingsCol, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		return fmt.Errorf("seed: could not find settings collection: %w", err)
	}
	existing, err := app.FindAllRecords(settingsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query settings: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("seed: creating tenant settings record …")

	record := core.NewRecord(settingsCol)
	record.Set("company_name", "Brightside Painting")
	record.Set("company_email", "office@brightside.example")
	record.Set("company_phone", "(503) 555-0142")
	record.Set("company_address", "14 Mill Rd, Portland, OR 97202")
	record.Set("email_from_name", "Brightside Painting")
	record.Set("email_templates", services.DefaultEmailTemplates)
	record.Set("magic_link_expiry_hours", 72)
	record.Set("magic_link_secret", security.RandomString(40))

	if err := app.Save(record); err != nil {
		return fmt.Errorf("seed: could not save settings: %w", err)
	}
	return nil
}

// seedPricingSchemeRecords inserts the default pricing schemes when the
// collection is empty.
func seedPricingSchemeRecords(app *pocketbase.PocketBase) error {
	schemesCol, err := app.FindCollectionByNameOrId("pricing_schemes")
	if err != nil {
		return fmt.Errorf("seed: could not find pricing_schemes collection: %w", err)
	}
	existing, err := app.FindAllRecords(schemesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query pricing_schemes: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("seed: pricing_schemes collection is empty – inserting defaults …")

	for _, def := range seedPricingSchemes {
		record := core.NewRecord(schemesCol)
		record.Set("name", def.name)
		record.Set("type", def.schemeType)
		record.Set("pricing_rules", def.pricingRules)
		record.Set("is_default", def.isDefault)
		record.Set("is_active", def.isActive)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save pricing scheme %q: %w", def.name, err)
		}
	}
	return nil
}

// seedSampleJob inserts one client, an accepted quote and its job so a
// fresh install has something to show.
func seedSampleJob(app *pocketbase.PocketBase) error {
	jobsCol, err := app.FindCollectionByNameOrId("jobs")
	if err != nil {
		return fmt.Errorf("seed: could not find jobs collection: %w", err)
	}
	existing, err := app.FindAllRecords(jobsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query jobs: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("seed: jobs collection is empty – inserting sample data …")

	clientsCol, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		return fmt.Errorf("seed: could not find clients collection: %w", err)
	}
	quotesCol, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return fmt.Errorf("seed: could not find quotes collection: %w", err)
	}

	client := core.NewRecord(clientsCol)
	client.Set("name", seedClient.name)
	client.Set("email", seedClient.email)
	client.Set("phone", seedClient.phone)
	client.Set("address_line_1", seedClient.addressLine1)
	client.Set("city", seedClient.city)
	client.Set("state", seedClient.state)
	client.Set("postal_code", seedClient.postalCode)
	if err := app.Save(client); err != nil {
		return fmt.Errorf("seed: could not save client: %w", err)
	}

	quote := core.NewRecord(quotesCol)
	quote.Set("client", client.Id)
	quote.Set("quote_number", seedQuote.quoteNumber)
	quote.Set("pricing_scheme_type", seedQuote.schemeType)
	quote.Set("flat_rate_items", seedQuote.flatRateItems)
	quote.Set("total", seedQuote.total)
	quote.Set("deposit_amount", seedQuote.depositAmount)
	quote.Set("deposit_paid", true)
	quote.Set("status", seedQuote.status)
	if err := app.Save(quote); err != nil {
		return fmt.Errorf("seed: could not save quote: %w", err)
	}

	job := core.NewRecord(jobsCol)
	job.Set("job_number", "PNT-JOB-24-001")
	job.Set("quote", quote.Id)
	job.Set("client", client.Id)
	job.Set("status", services.StatusDepositPaid)
	job.Set("deposit_paid", true)
	job.Set("visible_to_customer", true)
	job.Set("area_progress", map[string]services.AreaProgressEntry{})
	if err := app.Save(job); err != nil {
		return fmt.Errorf("seed: could not save job: %w", err)
	}

	return nil
}
