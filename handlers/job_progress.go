package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/services"
)

type progressRequest struct {
	ItemKey string `json:"itemKey"`
	AreaID  string `json:"areaId"`
	Status  string `json:"status"`
}

// HandleJobProgress updates one trackable item's status. The item is
// addressed by itemKey (flat-rate and turnkey quotes) or by areaId
// (area-based quotes); exactly one of the two must be set.
func HandleJobProgress(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobID := e.Request.PathValue("id")

		job, err := app.FindRecordById("jobs", jobID)
		if err != nil {
			log.Printf("job_progress: could not find job %s: %v", jobID, err)
			return Fail(e, http.StatusNotFound, "Job not found")
		}

		var req progressRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}

		if req.ItemKey != "" && req.AreaID != "" {
			return Fail(e, http.StatusBadRequest, "Provide either itemKey or areaId, not both")
		}
		key := req.ItemKey
		if key == "" {
			key = req.AreaID
		}
		if key == "" {
			return Fail(e, http.StatusBadRequest, "Either itemKey or areaId is required")
		}
		if !services.IsValidAreaStatus(req.Status) {
			return Fail(e, http.StatusBadRequest, "Unknown progress status")
		}

		progress := areaProgressFromRecord(job)
		progress[key] = services.AreaProgressEntry{
			Status:  req.Status,
			Updated: time.Now().UTC().Format(time.RFC3339),
		}
		job.Set("area_progress", progress)

		if err := app.Save(job); err != nil {
			log.Printf("job_progress: could not save job %s: %v", jobID, err)
			return Fail(e, http.StatusInternalServerError, "Could not update progress")
		}

		return OKMessage(e, "Progress updated", jobDetailPayload(app, job))
	}
}
