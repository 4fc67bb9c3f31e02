package handlers

import (
	"log"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/services"
)

func HandleJobStats(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobs, err := app.FindAllRecords("jobs")
		if err != nil {
			log.Printf("job_stats: could not query jobs: %v", err)
			jobs = nil
		}

		inputs := make([]services.StatsJob, 0, len(jobs))
		for _, job := range jobs {
			inputs = append(inputs, services.StatsJob{
				Status:      job.GetString("status"),
				DepositPaid: job.GetBool("deposit_paid"),
				Start:       job.GetDateTime("scheduled_start_date").Time(),
				Updated:     job.GetDateTime("updated").Time(),
			})
		}

		return OK(e, services.ComputeJobStats(inputs, time.Now()))
	}
}
