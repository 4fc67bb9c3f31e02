package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/payments"
	"paintadmin/services"
)

// HandleQuoteMarkDepositPaid records the deposit as received on a quote.
// The first deposit payment is what turns an accepted quote into a job, so
// a job is created here when none exists yet.
func HandleQuoteMarkDepositPaid(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("admin_status: could not find quote %s: %v", quoteID, err)
			return Fail(e, http.StatusNotFound, "Quote not found")
		}

		job, err := recordDepositPaid(app, quote)
		if err != nil {
			log.Printf("admin_status: could not record deposit for quote %s: %v", quoteID, err)
			return Fail(e, http.StatusInternalServerError, "Could not mark deposit as paid")
		}

		return OKMessage(e, "Deposit marked as paid", jobDetailPayload(app, job))
	}
}

// HandleQuoteSyncPayment checks the payment gateway for the quote's payment
// reference and records the deposit when the gateway reports approval.
func HandleQuoteSyncPayment(app *pocketbase.PocketBase, gateway payments.Gateway) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("admin_status: could not find quote %s: %v", quoteID, err)
			return Fail(e, http.StatusNotFound, "Quote not found")
		}
		if gateway == nil {
			return Fail(e, http.StatusServiceUnavailable, "Payment gateway is not configured")
		}

		reference := quote.GetString("payment_reference")
		if reference == "" {
			return Fail(e, http.StatusBadRequest, "Quote has no payment reference to check")
		}

		status, err := gateway.GetPaymentStatus(e.Request.Context(), reference)
		if err != nil {
			log.Printf("admin_status: gateway lookup failed for %s: %v", reference, err)
			return Fail(e, http.StatusBadGateway, "Could not reach the payment gateway")
		}

		payload := map[string]any{"paymentStatus": status}
		if payments.IsApproved(status) {
			job, err := recordDepositPaid(app, quote)
			if err != nil {
				log.Printf("admin_status: could not record deposit for quote %s: %v", quoteID, err)
				return Fail(e, http.StatusInternalServerError, "Could not record payment")
			}
			payload["job"] = jobDetailPayload(app, job)
		}

		return OK(e, payload)
	}
}

// recordDepositPaid flips the deposit flag on the quote and its job,
// creating the job on the first payment.
func recordDepositPaid(app *pocketbase.PocketBase, quote *core.Record) (*core.Record, error) {
	quote.Set("deposit_paid", true)
	if err := app.Save(quote); err != nil {
		return nil, err
	}

	jobs, err := app.FindRecordsByFilter("jobs", "quote = {:quoteId}", "", 1, 0,
		map[string]any{"quoteId": quote.Id})
	if err == nil && len(jobs) > 0 {
		job := jobs[0]
		job.Set("deposit_paid", true)
		if err := app.Save(job); err != nil {
			return nil, err
		}
		return job, nil
	}

	return createJobForQuote(app, quote)
}

func createJobForQuote(app *pocketbase.PocketBase, quote *core.Record) (*core.Record, error) {
	col, err := app.FindCollectionByNameOrId("jobs")
	if err != nil {
		return nil, err
	}

	number, err := services.GenerateJobNumber(app, time.Now())
	if err != nil {
		return nil, err
	}

	job := core.NewRecord(col)
	job.Set("job_number", number)
	job.Set("quote", quote.Id)
	job.Set("client", quote.GetString("client"))
	job.Set("status", services.StatusDepositPaid)
	job.Set("deposit_paid", true)
	job.Set("visible_to_customer", true)
	job.Set("area_progress", map[string]services.AreaProgressEntry{})

	if err := app.Save(job); err != nil {
		return nil, err
	}
	recordStatusEvent(app, job.Id, "", services.StatusDepositPaid, "system", "deposit received")
	return job, nil
}
