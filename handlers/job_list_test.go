package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"paintadmin/testhelpers"
)

func TestHandleJobList_All(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Dana Alvarez")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "flat_rate_unit")
	testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "scheduled")

	handler := HandleJobList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/jobs", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	env := testhelpers.AssertSuccess(t, rec.Body.Bytes())

	var data struct {
		Jobs  []map[string]any `json:"jobs"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Total != 1 || len(data.Jobs) != 1 {
		t.Fatalf("expected one job, got total=%d len=%d", data.Total, len(data.Jobs))
	}

	job := data.Jobs[0]
	if job["jobNumber"] != "PNT-JOB-24-001" {
		t.Errorf("expected job number PNT-JOB-24-001, got %v", job["jobNumber"])
	}
	if job["clientName"] != "Dana Alvarez" {
		t.Errorf("expected client name in the list row, got %v", job["clientName"])
	}
	if job["statusLabel"] != "Scheduled" {
		t.Errorf("expected status label Scheduled, got %v", job["statusLabel"])
	}
}

func TestHandleJobList_StatusFilter(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Filter Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "turnkey")
	testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "scheduled")
	testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "completed")

	handler := HandleJobList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/jobs?status=completed", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	env := testhelpers.AssertSuccess(t, rec.Body.Bytes())

	var data struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if len(data.Jobs) != 1 {
		t.Fatalf("expected one completed job, got %d", len(data.Jobs))
	}
	if data.Jobs[0]["status"] != "completed" {
		t.Errorf("expected completed status, got %v", data.Jobs[0]["status"])
	}
}

func TestHandleJobList_UnknownStatusRejected(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleJobList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/jobs?status=bogus", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	testhelpers.AssertFailure(t, rec.Body.Bytes())
}

func TestHandleJobList_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleJobList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/jobs", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	env := testhelpers.AssertSuccess(t, rec.Body.Bytes())

	var data struct {
		Jobs  []map[string]any `json:"jobs"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Jobs == nil {
		t.Error("expected an empty jobs array, got null")
	}
	if data.Total != 0 {
		t.Errorf("expected total 0, got %d", data.Total)
	}
}
