package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatJobNumber constructs the job number string from components.
// Uses "-" as separator so downstream document filenames stay safe.
func formatJobNumber(year int, sequence int) string {
	return fmt.Sprintf("PNT-JOB-%02d-%03d", year%100, sequence)
}

// GenerateJobNumber creates the next job number for the tenant.
// Format: PNT-JOB-{YY}-{sequence}, sequence restarting each calendar year
// and zero-padded to 3 digits.
func GenerateJobNumber(app *pocketbase.PocketBase, now time.Time) (string, error) {
	prefix := fmt.Sprintf("PNT-JOB-%02d-", now.Year()%100)

	existing, err := app.FindRecordsByFilter(
		"jobs",
		"job_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		// Collection missing or empty; start at 1.
		existing = nil
	}

	return formatJobNumber(now.Year(), len(existing)+1), nil
}
