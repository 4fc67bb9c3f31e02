package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"paintadmin/services"
)

// MigrateAreaProgress backfills an empty area_progress map on jobs created
// before per-item tracking existed, so the progress projection always reads
// a well-formed map. Safe to call on every startup.
func MigrateAreaProgress(app *pocketbase.PocketBase) error {
	jobsCol, err := app.FindCollectionByNameOrId("jobs")
	if err != nil {
		return fmt.Errorf("migrate_area_progress: could not find jobs collection: %w", err)
	}

	jobs, err := app.FindAllRecords(jobsCol)
	if err != nil {
		return fmt.Errorf("migrate_area_progress: could not query jobs: %w", err)
	}

	migrated := 0
	for _, job := range jobs {
		raw := job.GetString("area_progress")
		if raw != "" && raw != "null" {
			continue
		}

		job.Set("area_progress", map[string]services.AreaProgressEntry{})
		if err := app.Save(job); err != nil {
			return fmt.Errorf("migrate_area_progress: could not update job %s: %w", job.Id, err)
		}
		migrated++
	}

	if migrated > 0 {
		log.Printf("migrate_area_progress: backfilled %d job(s)", migrated)
	}
	return nil
}
