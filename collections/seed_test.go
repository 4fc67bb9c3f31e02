package collections_test

import (
	"testing"

	"paintadmin/collections"
	"paintadmin/services"
	"paintadmin/testhelpers"
)

func TestSeed_CreatesDefaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	settings, err := app.FindAllRecords("settings")
	if err != nil || len(settings) != 1 {
		t.Fatalf("expected 1 settings record, got %d (err=%v)", len(settings), err)
	}
	if settings[0].GetString("company_name") == "" {
		t.Error("seeded settings missing company_name")
	}
	if settings[0].GetString("magic_link_secret") == "" {
		t.Error("seeded settings missing magic_link_secret")
	}

	schemes, err := app.FindAllRecords("pricing_schemes")
	if err != nil {
		t.Fatalf("could not query pricing_schemes: %v", err)
	}
	if len(schemes) != 4 {
		t.Fatalf("expected 4 seeded pricing schemes, got %d", len(schemes))
	}
	defaults := 0
	for _, s := range schemes {
		if s.GetBool("is_default") {
			defaults++
		}
	}
	if defaults != 1 {
		t.Errorf("expected exactly 1 default scheme, got %d", defaults)
	}

	jobs, err := app.FindAllRecords("jobs")
	if err != nil || len(jobs) != 1 {
		t.Fatalf("expected 1 seeded job, got %d (err=%v)", len(jobs), err)
	}
	if jobs[0].GetString("status") != services.StatusDepositPaid {
		t.Errorf("seeded job status = %q", jobs[0].GetString("status"))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error = %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}

	schemes, _ := app.FindAllRecords("pricing_schemes")
	if len(schemes) != 4 {
		t.Errorf("expected 4 schemes after reseed, got %d", len(schemes))
	}
	jobs, _ := app.FindAllRecords("jobs")
	if len(jobs) != 1 {
		t.Errorf("expected 1 job after reseed, got %d", len(jobs))
	}
	settings, _ := app.FindAllRecords("settings")
	if len(settings) != 1 {
		t.Errorf("expected 1 settings record after reseed, got %d", len(settings))
	}
}
