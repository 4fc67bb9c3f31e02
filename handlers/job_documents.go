package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/services"
)

// HandleJobDocumentList returns the generated documents recorded for a job.
// An empty list is a success, not an error.
func HandleJobDocumentList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobID := e.Request.PathValue("id")

		if _, err := app.FindRecordById("jobs", jobID); err != nil {
			log.Printf("job_documents: could not find job %s: %v", jobID, err)
			return Fail(e, http.StatusNotFound, "Job not found")
		}

		docs, err := app.FindRecordsByFilter(
			"job_documents",
			"job = {:jobId}",
			"-generated",
			0,
			0,
			map[string]any{"jobId": jobID},
		)
		if err != nil {
			log.Printf("job_documents: could not query documents for job %s: %v", jobID, err)
			return Fail(e, http.StatusInternalServerError, "Could not load documents")
		}

		items := make([]map[string]any, 0, len(docs))
		for _, doc := range docs {
			items = append(items, map[string]any{
				"id":          doc.Id,
				"docType":     doc.GetString("doc_type"),
				"generatedAt": doc.GetDateTime("generated").Time().UTC().Format(time.RFC3339),
			})
		}

		return OK(e, map[string]any{"documents": items})
	}
}

type generateDocumentRequest struct {
	DocType string `json:"docType"`
}

// HandleJobDocumentGenerate generates a document of the requested type and
// records it. Generation requires a paid deposit.
func HandleJobDocumentGenerate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobID := e.Request.PathValue("id")

		var req generateDocumentRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}
		docType := req.DocType

		job, err := app.FindRecordById("jobs", jobID)
		if err != nil {
			log.Printf("job_documents: could not find job %s: %v", jobID, err)
			return Fail(e, http.StatusNotFound, "Job not found")
		}
		if !services.IsValidDocumentType(docType) {
			return Fail(e, http.StatusBadRequest, "Unknown document type")
		}
		if !job.GetBool("deposit_paid") {
			return Fail(e, http.StatusBadRequest, "Documents are available after the deposit is paid")
		}

		if err := upsertJobDocument(app, jobID, docType); err != nil {
			log.Printf("job_documents: could not record document for job %s: %v", jobID, err)
			return Fail(e, http.StatusInternalServerError, "Could not record document")
		}

		return OKMessage(e, "Document generated", map[string]any{
			"jobId":   jobID,
			"docType": docType,
		})
	}
}

// HandleJobDocumentDownload streams a freshly rendered PDF of the requested
// document type.
func HandleJobDocumentDownload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobID := e.Request.PathValue("id")
		docType := e.Request.PathValue("docType")

		job, err := app.FindRecordById("jobs", jobID)
		if err != nil {
			log.Printf("job_documents: could not find job %s: %v", jobID, err)
			return Fail(e, http.StatusNotFound, "Job not found")
		}
		if !services.IsValidDocumentType(docType) {
			return Fail(e, http.StatusBadRequest, "Unknown document type")
		}
		if !job.GetBool("deposit_paid") {
			return Fail(e, http.StatusBadRequest, "Documents are available after the deposit is paid")
		}

		data := buildDocumentData(app, e, job)
		pdfBytes, err := services.GenerateJobDocument(docType, data)
		if err != nil {
			log.Printf("job_documents: could not generate %s for job %s: %v", docType, jobID, err)
			return Fail(e, http.StatusInternalServerError, "Could not generate document")
		}

		if err := upsertJobDocument(app, jobID, docType); err != nil {
			log.Printf("job_documents: could not record document for job %s: %v", jobID, err)
		}

		filename := fmt.Sprintf("%s_%s.pdf", job.GetString("job_number"), docType)
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		_, err = e.Response.Write(pdfBytes)
		return err
	}
}

// upsertJobDocument records that a document type exists for a job; repeat
// generations keep a single row per type.
func upsertJobDocument(app *pocketbase.PocketBase, jobID, docType string) error {
	existing, err := app.FindRecordsByFilter(
		"job_documents",
		"job = {:jobId} && doc_type = {:docType}",
		"",
		1,
		0,
		map[string]any{"jobId": jobID, "docType": docType},
	)
	if err == nil && len(existing) > 0 {
		return app.Save(existing[0])
	}

	col, err := app.FindCollectionByNameOrId("job_documents")
	if err != nil {
		return err
	}
	doc := core.NewRecord(col)
	doc.Set("job", jobID)
	doc.Set("doc_type", docType)
	return app.Save(doc)
}

func buildDocumentData(app *pocketbase.PocketBase, e *core.RequestEvent, job *core.Record) services.DocumentData {
	data := services.DocumentData{
		JobNumber:     job.GetString("job_number"),
		JobStatus:     job.GetString("status"),
		ScheduledFrom: dateString(job, "scheduled_start_date"),
		ScheduledTo:   dateString(job, "scheduled_end_date"),
		Progress:      deriveJobProgress(app, job),
		GeneratedDate: time.Now().Format("January 2, 2006"),
	}

	if settings := GetTenantSettings(e.Request, app); settings != nil {
		data.CompanyName = settings.GetString("company_name")
		data.CompanyAddress = settings.GetString("company_address")
		data.CompanyPhone = settings.GetString("company_phone")
		data.CompanyEmail = settings.GetString("company_email")
	}

	if client, err := app.FindRecordById("clients", job.GetString("client")); err == nil {
		data.ClientName = client.GetString("name")
		data.ClientAddress = clientAddress(client)
	}

	if quote, err := app.FindRecordById("quotes", job.GetString("quote")); err == nil {
		data.QuoteNumber = quote.GetString("quote_number")
		data.QuoteTotal = quote.GetFloat("total")
		data.DepositAmount = quote.GetFloat("deposit_amount")
		data.DepositPaid = quote.GetBool("deposit_paid")
	}

	return data
}
