package handlers

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/services"
)

// quoteShapeFromRecord projects a quote record into the shape the progress
// service reads. Malformed JSON fields degrade to empty structures rather
// than failing the request.
func quoteShapeFromRecord(quote *core.Record) services.QuoteShape {
	shape := services.QuoteShape{
		SchemeType: quote.GetString("pricing_scheme_type"),
	}
	if err := quote.UnmarshalJSONField("areas", &shape.Areas); err != nil {
		shape.Areas = nil
	}
	if err := quote.UnmarshalJSONField("flat_rate_items", &shape.FlatRateItems); err != nil {
		shape.FlatRateItems = services.FlatRateItems{}
	}
	if err := quote.UnmarshalJSONField("breakdown", &shape.Breakdown); err != nil {
		shape.Breakdown = nil
	}
	return shape
}

// areaProgressFromRecord reads a job's per-item progress map.
func areaProgressFromRecord(job *core.Record) map[string]services.AreaProgressEntry {
	progress := map[string]services.AreaProgressEntry{}
	if err := job.UnmarshalJSONField("area_progress", &progress); err != nil || progress == nil {
		return map[string]services.AreaProgressEntry{}
	}
	return progress
}

// deriveJobProgress loads the job's quote and derives the progress summary.
func deriveJobProgress(app *pocketbase.PocketBase, job *core.Record) services.ProgressSummary {
	quote, err := app.FindRecordById("quotes", job.GetString("quote"))
	if err != nil {
		log.Printf("progress: quote %s not found for job %s: %v",
			job.GetString("quote"), job.Id, err)
		return services.ProgressSummary{Items: []services.ProgressItem{}}
	}
	return services.DeriveProgressItems(quoteShapeFromRecord(quote), areaProgressFromRecord(job))
}

// dateString formats a record date field as YYYY-MM-DD, empty when unset.
func dateString(record *core.Record, field string) string {
	dt := record.GetDateTime(field)
	if dt.IsZero() {
		return ""
	}
	return dt.Time().Format("2006-01-02")
}

// clientSummary builds the embedded client payload for job responses.
func clientSummary(app *pocketbase.PocketBase, clientID string) map[string]any {
	client, err := app.FindRecordById("clients", clientID)
	if err != nil {
		return map[string]any{"id": clientID}
	}
	return map[string]any{
		"id":      client.Id,
		"name":    client.GetString("name"),
		"email":   client.GetString("email"),
		"phone":   client.GetString("phone"),
		"address": clientAddress(client),
	}
}

func clientAddress(client *core.Record) string {
	parts := []string{
		client.GetString("address_line_1"),
		client.GetString("city"),
		client.GetString("state"),
		client.GetString("postal_code"),
	}
	address := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if address != "" {
			address += ", "
		}
		address += p
	}
	return address
}

// jobSummaryPayload is the list-view shape of a job.
func jobSummaryPayload(app *pocketbase.PocketBase, job *core.Record) map[string]any {
	progress := deriveJobProgress(app, job)
	status := job.GetString("status")

	clientName := ""
	if client, err := app.FindRecordById("clients", job.GetString("client")); err == nil {
		clientName = client.GetString("name")
	}

	return map[string]any{
		"id":                 job.Id,
		"jobNumber":          job.GetString("job_number"),
		"status":             status,
		"statusLabel":        services.JobStatusLabel(status),
		"statusColor":        services.JobStatusColor(status),
		"clientName":         clientName,
		"scheduledStartDate": dateString(job, "scheduled_start_date"),
		"scheduledEndDate":   dateString(job, "scheduled_end_date"),
		"estimatedDuration":  job.GetInt("estimated_duration"),
		"depositPaid":        job.GetBool("deposit_paid"),
		"progressPercent":    progress.ProgressPercent,
		"hasItems":           progress.HasItems,
	}
}

// jobDetailPayload is the full shape of a job, returned by the detail
// endpoint and by every mutation so clients reconcile against server state
// instead of their optimistic copy.
func jobDetailPayload(app *pocketbase.PocketBase, job *core.Record) map[string]any {
	progress := deriveJobProgress(app, job)
	status := job.GetString("status")

	payload := map[string]any{
		"id":                         job.Id,
		"jobNumber":                  job.GetString("job_number"),
		"status":                     status,
		"statusLabel":                services.JobStatusLabel(status),
		"statusColor":                services.JobStatusColor(status),
		"statusOptions":              services.StatusOptionsFor(status),
		"scheduledStartDate":         dateString(job, "scheduled_start_date"),
		"scheduledEndDate":           dateString(job, "scheduled_end_date"),
		"estimatedDuration":          job.GetInt("estimated_duration"),
		"actualStartDate":            dateString(job, "actual_start_date"),
		"customerSelectionsComplete": job.GetBool("customer_selections_complete"),
		"selectionsSubmittedAt":      dateString(job, "selections_submitted_at"),
		"selectionsApprovedAt":       dateString(job, "selections_approved_at"),
		"depositPaid":                job.GetBool("deposit_paid"),
		"visibleToCustomer":          job.GetBool("visible_to_customer"),
		"progress":                   progress,
		"client":                     clientSummary(app, job.GetString("client")),
	}

	if quote, err := app.FindRecordById("quotes", job.GetString("quote")); err == nil {
		payload["quote"] = map[string]any{
			"id":                quote.Id,
			"quoteNumber":       quote.GetString("quote_number"),
			"pricingSchemeType": quote.GetString("pricing_scheme_type"),
			"total":             quote.GetFloat("total"),
			"depositAmount":     quote.GetFloat("deposit_amount"),
			"depositPaid":       quote.GetBool("deposit_paid"),
			"status":            quote.GetString("status"),
		}
	}

	return payload
}

// recordStatusEvent appends an audit row for a job status change.
func recordStatusEvent(app *pocketbase.PocketBase, jobID, from, to, source, note string) {
	col, err := app.FindCollectionByNameOrId("status_events")
	if err != nil {
		log.Printf("status_events: collection not found: %v", err)
		return
	}
	event := core.NewRecord(col)
	event.Set("job", jobID)
	event.Set("from_status", from)
	event.Set("to_status", to)
	event.Set("source", source)
	event.Set("note", note)
	if err := app.Save(event); err != nil {
		log.Printf("status_events: could not save event for job %s: %v", jobID, err)
	}
}
