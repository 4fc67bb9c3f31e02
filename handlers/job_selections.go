package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleJobSelectionsApprove marks the customer's submitted selections as
// approved. Selections must have been marked complete first.
func HandleJobSelectionsApprove(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobID := e.Request.PathValue("id")

		job, err := app.FindRecordById("jobs", jobID)
		if err != nil {
			log.Printf("job_selections: could not find job %s: %v", jobID, err)
			return Fail(e, http.StatusNotFound, "Job not found")
		}

		if !job.GetBool("customer_selections_complete") {
			return Fail(e, http.StatusBadRequest, "Customer selections have not been submitted yet")
		}

		job.Set("selections_approved_at", time.Now().UTC().Format(time.RFC3339))
		if err := app.Save(job); err != nil {
			log.Printf("job_selections: could not save job %s: %v", jobID, err)
			return Fail(e, http.StatusInternalServerError, "Could not approve selections")
		}

		return OKMessage(e, "Selections approved", jobDetailPayload(app, job))
	}
}
