package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/services"
)

type statusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// HandleJobStatusUpdate sets a job's status. Every status is reachable from
// every other; the transition is recorded in the status_events audit trail.
func HandleJobStatusUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return updateJobStatus(app, "admin")
}

// HandleJobStatusOverride is the explicit override path. Same transition
// rules, but events carry the override source and the operator's note.
func HandleJobStatusOverride(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return updateJobStatus(app, "override")
}

func updateJobStatus(app *pocketbase.PocketBase, source string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobID := e.Request.PathValue("id")

		job, err := app.FindRecordById("jobs", jobID)
		if err != nil {
			log.Printf("job_status: could not find job %s: %v", jobID, err)
			return Fail(e, http.StatusNotFound, "Job not found")
		}

		var req statusRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}
		if !services.IsValidJobStatus(req.Status) {
			return Fail(e, http.StatusBadRequest, "Unknown job status")
		}

		from := job.GetString("status")
		job.Set("status", req.Status)
		if req.Status == services.StatusInProgress && job.GetDateTime("actual_start_date").IsZero() {
			job.Set("actual_start_date", time.Now().Format("2006-01-02"))
		}

		if err := app.Save(job); err != nil {
			log.Printf("job_status: could not save job %s: %v", jobID, err)
			return Fail(e, http.StatusInternalServerError, "Could not update status")
		}

		if from != req.Status {
			recordStatusEvent(app, job.Id, from, req.Status, source, req.Note)
		}

		return OKMessage(e, "Status updated", jobDetailPayload(app, job))
	}
}
