package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paintadmin/testhelpers"
)

func TestHandleJobDocumentList_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Docs Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "turnkey")
	job := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "scheduled")

	handler := HandleJobDocumentList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/jobs/"+job.Id+"/documents", nil)
	req.SetPathValue("id", job.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	env := testhelpers.AssertSuccess(t, rec.Body.Bytes())

	var data struct {
		Documents []map[string]any `json:"documents"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Documents == nil {
		t.Error("a job with no documents should return an empty array, not null")
	}
	if len(data.Documents) != 0 {
		t.Errorf("expected no documents, got %d", len(data.Documents))
	}
}

func TestHandleJobDocumentGenerate_DepositGate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Unpaid Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "turnkey")
	job := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "scheduled")
	job.Set("deposit_paid", false)
	if err := app.Save(job); err != nil {
		t.Fatalf("failed to reset deposit flag: %v", err)
	}

	handler := HandleJobDocumentGenerate(app)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs/"+job.Id+"/documents/generate",
		strings.NewReader(`{"docType":"work_order"}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", job.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	testhelpers.AssertFailure(t, rec.Body.Bytes())
}

func TestHandleJobDocumentGenerate_RecordsOnce(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Paid Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "turnkey")
	job := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "scheduled")

	handler := HandleJobDocumentGenerate(app)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs/"+job.Id+"/documents/generate",
			strings.NewReader(`{"docType":"work_order"}`))
		req.Header.Set("Content-Type", "application/json")
		req.SetPathValue("id", job.Id)
		rec := httptest.NewRecorder()

		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		testhelpers.AssertSuccess(t, rec.Body.Bytes())
	}

	docs, err := app.FindRecordsByFilter("job_documents", "job = {:jobId}", "", 0, 0,
		map[string]any{"jobId": job.Id})
	if err != nil {
		t.Fatalf("failed to query documents: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("repeat generation should keep one row per type, got %d", len(docs))
	}
}

func TestHandleJobDocumentDownload_PDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestSettings(t, app)
	client := testhelpers.CreateTestClient(t, app, "Download Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "flat_rate_unit")
	job := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "in_progress")

	handler := HandleJobDocumentDownload(app)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/jobs/"+job.Id+"/documents/job_summary", nil)
	req.SetPathValue("id", job.Id)
	req.SetPathValue("docType", "job_summary")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected PDF content type, got %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "PNT-JOB-24-001_job_summary.pdf") {
		t.Errorf("expected filename in disposition, got %s", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Error("expected a PDF body")
	}
}

func TestHandleJobDocumentDownload_UnknownType(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Type Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "turnkey")
	job := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "scheduled")

	handler := HandleJobDocumentDownload(app)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/jobs/"+job.Id+"/documents/invoice", nil)
	req.SetPathValue("id", job.Id)
	req.SetPathValue("docType", "invoice")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	testhelpers.AssertFailure(t, rec.Body.Bytes())
}
