package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/tools/security"

	"paintadmin/services"
)

// MigrateSettingsDefaults fills gaps in the tenant settings record left by
// older versions: missing email template keys, a missing magic-link secret
// and a zero expiry. Safe to call on every startup.
func MigrateSettingsDefaults(app *pocketbase.PocketBase) error {
	settingsCol, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		return fmt.Errorf("migrate_settings: could not find settings collection: %w", err)
	}

	records, err := app.FindAllRecords(settingsCol)
	if err != nil {
		return fmt.Errorf("migrate_settings: could not query settings: %w", err)
	}

	for _, record := range records {
		changed := false

		templates := map[string]services.EmailTemplate{}
		if err := record.UnmarshalJSONField("email_templates", &templates); err != nil || templates == nil {
			templates = map[string]services.EmailTemplate{}
		}
		for key, def := range services.DefaultEmailTemplates {
			if _, ok := templates[key]; !ok {
				templates[key] = def
				changed = true
			}
		}
		if changed {
			record.Set("email_templates", templates)
		}

		if record.GetString("magic_link_secret") == "" {
			record.Set("magic_link_secret", security.RandomString(40))
			changed = true
		}
		if record.GetInt("magic_link_expiry_hours") <= 0 {
			record.Set("magic_link_expiry_hours", 72)
			changed = true
		}

		if changed {
			if err := app.Save(record); err != nil {
				return fmt.Errorf("migrate_settings: could not update settings %s: %w", record.Id, err)
			}
			log.Printf("migrate_settings: updated settings record %s", record.Id)
		}
	}
	return nil
}
