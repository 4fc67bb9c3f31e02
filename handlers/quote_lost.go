package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/services"
)

type lostRequest struct {
	Reason  string `json:"reason"`
	Details string `json:"details"`
}

// HandleQuoteMarkLost records why a quote was lost and moves it to the
// lost status. The "other" reason requires free-text details.
func HandleQuoteMarkLost(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("quote_lost: could not find quote %s: %v", quoteID, err)
			return Fail(e, http.StatusNotFound, "Quote not found")
		}

		var req lostRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}
		if err := services.ValidateLostReason(req.Reason, req.Details); err != nil {
			return Fail(e, http.StatusBadRequest, err.Error())
		}

		quote.Set("status", "lost")
		quote.Set("lost_reason", req.Reason)
		quote.Set("lost_reason_details", req.Details)

		if err := app.Save(quote); err != nil {
			log.Printf("quote_lost: could not save quote %s: %v", quoteID, err)
			return Fail(e, http.StatusInternalServerError, "Could not mark quote as lost")
		}

		return OKMessage(e, "Quote marked as lost", map[string]any{
			"id":                quote.Id,
			"status":            quote.GetString("status"),
			"lostReason":        quote.GetString("lost_reason"),
			"lostReasonDetails": quote.GetString("lost_reason_details"),
		})
	}
}

// HandleQuoteReopen moves a lost quote back into play and clears the
// recorded reason.
func HandleQuoteReopen(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("quote_reopen: could not find quote %s: %v", quoteID, err)
			return Fail(e, http.StatusNotFound, "Quote not found")
		}

		if quote.GetString("status") != "lost" {
			return Fail(e, http.StatusBadRequest, "Only lost quotes can be reopened")
		}

		quote.Set("status", "reopened")
		quote.Set("lost_reason", "")
		quote.Set("lost_reason_details", "")

		if err := app.Save(quote); err != nil {
			log.Printf("quote_reopen: could not save quote %s: %v", quoteID, err)
			return Fail(e, http.StatusInternalServerError, "Could not reopen quote")
		}

		return OKMessage(e, "Quote reopened", map[string]any{
			"id":     quote.Id,
			"status": quote.GetString("status"),
		})
	}
}

// HandleJobLostReason records a lost reason from the job view. The reason
// lives on the job's quote; the job itself is put on hold.
func HandleJobLostReason(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobID := e.Request.PathValue("id")

		job, err := app.FindRecordById("jobs", jobID)
		if err != nil {
			log.Printf("job_lost_reason: could not find job %s: %v", jobID, err)
			return Fail(e, http.StatusNotFound, "Job not found")
		}
		quote, err := app.FindRecordById("quotes", job.GetString("quote"))
		if err != nil {
			log.Printf("job_lost_reason: could not find quote for job %s: %v", jobID, err)
			return Fail(e, http.StatusNotFound, "Quote not found")
		}

		var req lostRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}
		if err := services.ValidateLostReason(req.Reason, req.Details); err != nil {
			return Fail(e, http.StatusBadRequest, err.Error())
		}

		quote.Set("status", "lost")
		quote.Set("lost_reason", req.Reason)
		quote.Set("lost_reason_details", req.Details)
		if err := app.Save(quote); err != nil {
			log.Printf("job_lost_reason: could not save quote %s: %v", quote.Id, err)
			return Fail(e, http.StatusInternalServerError, "Could not record lost reason")
		}

		from := job.GetString("status")
		if from != services.StatusOnHold {
			job.Set("status", services.StatusOnHold)
			if err := app.Save(job); err != nil {
				log.Printf("job_lost_reason: could not save job %s: %v", jobID, err)
				return Fail(e, http.StatusInternalServerError, "Could not record lost reason")
			}
			recordStatusEvent(app, job.Id, from, services.StatusOnHold, "system", "marked lost: "+req.Reason)
		}

		return OKMessage(e, "Lost reason recorded", jobDetailPayload(app, job))
	}
}

// HandleLostReasonOptions lists the selectable lost reasons.
func HandleLostReasonOptions() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		options := make([]map[string]any, 0, len(services.LostReasonOptions))
		for _, reason := range services.LostReasonOptions {
			options = append(options, map[string]any{
				"value":           reason,
				"label":           services.LostReasonLabel(reason),
				"requiresDetails": reason == services.LostReasonOther,
			})
		}
		return OK(e, map[string]any{"reasons": options})
	}
}
