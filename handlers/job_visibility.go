package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type visibilityRequest struct {
	Visible bool `json:"visible"`
}

// HandleJobVisibility toggles whether a job shows up in the customer portal.
func HandleJobVisibility(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobID := e.Request.PathValue("id")

		job, err := app.FindRecordById("jobs", jobID)
		if err != nil {
			log.Printf("job_visibility: could not find job %s: %v", jobID, err)
			return Fail(e, http.StatusNotFound, "Job not found")
		}

		var req visibilityRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}

		job.Set("visible_to_customer", req.Visible)
		if err := app.Save(job); err != nil {
			log.Printf("job_visibility: could not save job %s: %v", jobID, err)
			return Fail(e, http.StatusInternalServerError, "Could not update visibility")
		}

		return OKMessage(e, "Visibility updated", jobDetailPayload(app, job))
	}
}
