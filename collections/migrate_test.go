package collections_test

import (
	"testing"

	"paintadmin/collections"
	"paintadmin/services"
	"paintadmin/testhelpers"
)

func TestMigrateAreaProgress_BackfillsMissingMaps(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	client := testhelpers.CreateTestClient(t, app, "Migration Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, services.SchemeFlatRateUnit)

	// A job saved without any area_progress value, as older versions did.
	record := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, services.StatusScheduled)
	record.Set("area_progress", nil)
	if err := app.Save(record); err != nil {
		t.Fatalf("could not null out area_progress: %v", err)
	}

	if err := collections.MigrateAreaProgress(app); err != nil {
		t.Fatalf("MigrateAreaProgress() error = %v", err)
	}

	migrated, err := app.FindRecordById("jobs", record.Id)
	if err != nil {
		t.Fatalf("job not found after migration: %v", err)
	}
	progress := map[string]services.AreaProgressEntry{}
	if err := migrated.UnmarshalJSONField("area_progress", &progress); err != nil {
		t.Fatalf("area_progress is not a well-formed map after migration: %v", err)
	}
}

func TestMigrateAreaProgress_LeavesExistingData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	client := testhelpers.CreateTestClient(t, app, "Migration Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, services.SchemeFlatRateUnit)
	record := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, services.StatusInProgress)

	record.Set("area_progress", map[string]services.AreaProgressEntry{
		"interior_doors": {Status: services.AreaStatusCompleted, Updated: "2024-06-01 00:00:00"},
	})
	if err := app.Save(record); err != nil {
		t.Fatalf("could not set progress: %v", err)
	}

	if err := collections.MigrateAreaProgress(app); err != nil {
		t.Fatalf("MigrateAreaProgress() error = %v", err)
	}

	migrated, _ := app.FindRecordById("jobs", record.Id)
	progress := map[string]services.AreaProgressEntry{}
	if err := migrated.UnmarshalJSONField("area_progress", &progress); err != nil {
		t.Fatalf("could not read progress: %v", err)
	}
	if progress["interior_doors"].Status != services.AreaStatusCompleted {
		t.Errorf("existing progress was overwritten: %+v", progress)
	}
}

func TestMigrateSettingsDefaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	record := testhelpers.CreateTestSettings(t, app)
	record.Set("email_templates", nil)
	record.Set("magic_link_secret", "")
	record.Set("magic_link_expiry_hours", 0)
	if err := app.Save(record); err != nil {
		t.Fatalf("could not strip settings: %v", err)
	}

	if err := collections.MigrateSettingsDefaults(app); err != nil {
		t.Fatalf("MigrateSettingsDefaults() error = %v", err)
	}

	migrated, _ := app.FindRecordById("settings", record.Id)
	templates := map[string]services.EmailTemplate{}
	if err := migrated.UnmarshalJSONField("email_templates", &templates); err != nil {
		t.Fatalf("email_templates not readable: %v", err)
	}
	for key := range services.DefaultEmailTemplates {
		if _, ok := templates[key]; !ok {
			t.Errorf("template key %q not backfilled", key)
		}
	}
	if migrated.GetString("magic_link_secret") == "" {
		t.Error("magic_link_secret not regenerated")
	}
	if migrated.GetInt("magic_link_expiry_hours") != 72 {
		t.Errorf("magic_link_expiry_hours = %d, want 72", migrated.GetInt("magic_link_expiry_hours"))
	}
}
