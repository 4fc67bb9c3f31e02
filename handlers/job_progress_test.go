package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paintadmin/testhelpers"
)

func progressBody(itemKey, areaID, status string) *strings.Reader {
	raw, _ := json.Marshal(map[string]string{
		"itemKey": itemKey,
		"areaId":  areaID,
		"status":  status,
	})
	return strings.NewReader(string(raw))
}

func TestHandleJobProgress_FlatRateItem(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Progress Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "flat_rate_unit")
	job := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "in_progress")

	handler := HandleJobProgress(app)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs/"+job.Id+"/area-progress",
		progressBody("interior_doors", "", "completed"))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", job.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	env := testhelpers.AssertSuccess(t, rec.Body.Bytes())

	// The response reflects the recomputed server state, not an echo of
	// the request.
	var data struct {
		Progress struct {
			CompletedCount  int  `json:"completedCount"`
			TotalCount      int  `json:"totalCount"`
			ProgressPercent int  `json:"progressPercent"`
			HasItems        bool `json:"hasItems"`
		} `json:"progress"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Progress.CompletedCount != 1 || data.Progress.TotalCount != 2 {
		t.Errorf("expected 1/2 complete, got %d/%d",
			data.Progress.CompletedCount, data.Progress.TotalCount)
	}
	if data.Progress.ProgressPercent != 50 {
		t.Errorf("expected 50%%, got %d", data.Progress.ProgressPercent)
	}
}

func TestHandleJobProgress_AreaItem(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Area Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "production")
	job := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "in_progress")

	handler := HandleJobProgress(app)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs/"+job.Id+"/area-progress",
		progressBody("", "area1", "prepped"))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", job.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertSuccess(t, rec.Body.Bytes())

	saved, _ := app.FindRecordById("jobs", job.Id)
	progress := areaProgressFromRecord(saved)
	if progress["area1"].Status != "prepped" {
		t.Errorf("expected area1 prepped, got %q", progress["area1"].Status)
	}
	if progress["area1"].Updated == "" {
		t.Error("expected an updated timestamp on the progress entry")
	}
}

func TestHandleJobProgress_Rejections(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Reject Progress Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "flat_rate_unit")
	job := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "in_progress")

	cases := []struct {
		name    string
		itemKey string
		areaID  string
		status  string
	}{
		{"both identifiers", "interior_doors", "area1", "completed"},
		{"neither identifier", "", "", "completed"},
		{"unknown status", "interior_doors", "", "done"},
	}

	handler := HandleJobProgress(app)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs/"+job.Id+"/area-progress",
				progressBody(tc.itemKey, tc.areaID, tc.status))
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
		})
	}
}
