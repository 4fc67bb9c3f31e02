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

// HandleJobExportExcel streams the jobs list as an Excel workbook. The same
// ?status= filter as the list endpoint applies.
func HandleJobExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		statusFilter := e.Request.URL.Query().Get("status")
		if statusFilter != "" && !services.IsValidJobStatus(statusFilter) {
			return Fail(e, http.StatusBadRequest, "Unknown status filter")
		}

		var (
			jobs []*core.Record
			err  error
		)
		if statusFilter == "" {
			jobs, err = app.FindAllRecords("jobs")
		} else {
			jobs, err = app.FindRecordsByFilter("jobs", "status = {:status}", "-created", 0, 0,
				map[string]any{"status": statusFilter})
		}
		if err != nil {
			log.Printf("job_export: could not query jobs: %v", err)
			jobs = nil
		}

		rows := make([]services.JobExportRow, 0, len(jobs))
		for _, job := range jobs {
			clientName := ""
			if client, err := app.FindRecordById("clients", job.GetString("client")); err == nil {
				clientName = client.GetString("name")
			}
			quoteTotal := 0.0
			if quote, err := app.FindRecordById("quotes", job.GetString("quote")); err == nil {
				quoteTotal = quote.GetFloat("total")
			}
			progress := deriveJobProgress(app, job)

			rows = append(rows, services.JobExportRow{
				JobNumber:       job.GetString("job_number"),
				ClientName:      clientName,
				Status:          job.GetString("status"),
				ScheduledStart:  dateString(job, "scheduled_start_date"),
				ScheduledEnd:    dateString(job, "scheduled_end_date"),
				DurationDays:    job.GetInt("estimated_duration"),
				ProgressPercent: progress.ProgressPercent,
				DepositPaid:     job.GetBool("deposit_paid"),
				QuoteTotal:      quoteTotal,
			})
		}

		companyName := "Jobs"
		if settings := GetTenantSettings(e.Request, app); settings != nil {
			companyName = settings.GetString("company_name")
		}

		fileBytes, err := services.GenerateJobsExcel(services.JobExportData{
			CompanyName: companyName,
			ExportDate:  time.Now().Format("January 2, 2006"),
			Rows:        rows,
		})
		if err != nil {
			log.Printf("job_export: could not generate Excel file: %v", err)
			return Fail(e, http.StatusInternalServerError, "Could not generate export")
		}

		filename := fmt.Sprintf("jobs_%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		_, err = e.Response.Write(fileBytes)
		return err
	}
}
