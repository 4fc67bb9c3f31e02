package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/services"
)

// HandleJobCalendar returns jobs overlapping a month window. The month is
// passed as ?month=2006-01 and defaults to the current month.
func HandleJobCalendar(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		monthParam := e.Request.URL.Query().Get("month")

		var monthStart time.Time
		if monthParam == "" {
			now := time.Now()
			monthStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		} else {
			parsed, err := time.Parse("2006-01", monthParam)
			if err != nil {
				return Fail(e, http.StatusBadRequest, "Month must be formatted as YYYY-MM")
			}
			monthStart = parsed
		}
		monthEnd := monthStart.AddDate(0, 1, -1)

		jobs, err := app.FindAllRecords("jobs")
		if err != nil {
			log.Printf("job_calendar: could not query jobs: %v", err)
			jobs = nil
		}

		calJobs := make([]services.CalendarJob, 0, len(jobs))
		for _, job := range jobs {
			clientName := ""
			if client, err := app.FindRecordById("clients", job.GetString("client")); err == nil {
				clientName = client.GetString("name")
			}
			calJobs = append(calJobs, services.CalendarJob{
				ID:         job.Id,
				JobNumber:  job.GetString("job_number"),
				ClientName: clientName,
				Status:     job.GetString("status"),
				Start:      job.GetDateTime("scheduled_start_date").Time(),
				End:        job.GetDateTime("scheduled_end_date").Time(),
			})
		}

		return OK(e, map[string]any{
			"month":   monthStart.Format("2006-01"),
			"entries": services.BuildCalendar(calJobs, monthStart, monthEnd),
		})
	}
}
