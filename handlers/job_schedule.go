package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/services"
)

type scheduleRequest struct {
	ScheduledStartDate string `json:"scheduledStartDate"`
	ScheduledEndDate   string `json:"scheduledEndDate"`
	EstimatedDuration  int    `json:"estimatedDuration"`
}

// HandleJobSchedule updates a job's scheduled window. Dates come in as
// YYYY-MM-DD; an empty end date clears it.
func HandleJobSchedule(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobID := e.Request.PathValue("id")

		job, err := app.FindRecordById("jobs", jobID)
		if err != nil {
			log.Printf("job_schedule: could not find job %s: %v", jobID, err)
			return Fail(e, http.StatusNotFound, "Job not found")
		}

		var req scheduleRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}

		if req.ScheduledStartDate == "" {
			return Fail(e, http.StatusBadRequest, services.ErrStartRequired.Error())
		}
		if req.EstimatedDuration < 0 {
			return Fail(e, http.StatusBadRequest, services.ErrDurationNegative.Error())
		}
		start, err := time.Parse("2006-01-02", req.ScheduledStartDate)
		if err != nil {
			return Fail(e, http.StatusBadRequest, "Start date must be formatted as YYYY-MM-DD")
		}

		var end time.Time
		hasEnd := req.ScheduledEndDate != ""
		if hasEnd {
			end, err = time.Parse("2006-01-02", req.ScheduledEndDate)
			if err != nil {
				return Fail(e, http.StatusBadRequest, "End date must be formatted as YYYY-MM-DD")
			}
		}

		if err := services.ValidateSchedule(start, end, hasEnd, time.Now()); err != nil {
			switch {
			case errors.Is(err, services.ErrStartInPast),
				errors.Is(err, services.ErrEndInPast),
				errors.Is(err, services.ErrEndBeforeStart),
				errors.Is(err, services.ErrStartRequired):
				return Fail(e, http.StatusBadRequest, err.Error())
			default:
				return Fail(e, http.StatusBadRequest, services.ErrScheduleDateOrder.Error())
			}
		}

		job.Set("scheduled_start_date", req.ScheduledStartDate)
		if hasEnd {
			job.Set("scheduled_end_date", req.ScheduledEndDate)
		} else {
			job.Set("scheduled_end_date", "")
		}
		job.Set("estimated_duration", services.ResolveDuration(req.EstimatedDuration, start, end, hasEnd))

		if err := app.Save(job); err != nil {
			log.Printf("job_schedule: could not save job %s: %v", jobID, err)
			return Fail(e, http.StatusInternalServerError, "Could not update schedule")
		}

		return OKMessage(e, "Schedule updated", jobDetailPayload(app, job))
	}
}
