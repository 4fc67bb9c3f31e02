package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/services"
)

func HandleJobList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		statusFilter := e.Request.URL.Query().Get("status")
		search := e.Request.URL.Query().Get("search")

		if statusFilter != "" && !services.IsValidJobStatus(statusFilter) {
			return Fail(e, http.StatusBadRequest, "Unknown status filter")
		}

		filter := ""
		params := map[string]any{}

		if statusFilter != "" {
			filter = "status = {:status}"
			params["status"] = statusFilter
		}
		if search != "" {
			if filter != "" {
				filter += " && "
			}
			filter += "job_number ~ {:search}"
			params["search"] = search
		}

		var (
			jobs []*core.Record
			err  error
		)
		if filter == "" {
			jobs, err = app.FindRecordsByFilter("jobs", "id != ''", "-created", 0, 0, nil)
		} else {
			jobs, err = app.FindRecordsByFilter("jobs", filter, "-created", 0, 0, params)
		}
		if err != nil {
			log.Printf("job_list: could not query jobs: %v", err)
			jobs = nil
		}

		items := make([]map[string]any, 0, len(jobs))
		for _, job := range jobs {
			items = append(items, jobSummaryPayload(app, job))
		}

		return OK(e, map[string]any{
			"jobs":  items,
			"total": len(items),
		})
	}
}
