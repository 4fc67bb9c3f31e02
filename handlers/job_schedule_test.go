package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paintadmin/testhelpers"
)

func scheduleBody(start, end string, duration int) *strings.Reader {
	body := map[string]any{
		"scheduledStartDate": start,
		"scheduledEndDate":   end,
		"estimatedDuration":  duration,
	}
	raw, _ := json.Marshal(body)
	return strings.NewReader(string(raw))
}

func TestHandleJobSchedule_ValidRange(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Schedule Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "turnkey")
	job := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "deposit_paid")

	start := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	end := time.Now().AddDate(0, 0, 11).Format("2006-01-02")

	handler := HandleJobSchedule(app)

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/jobs/"+job.Id+"/schedule",
		scheduleBody(start, end, 0))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", job.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	env := testhelpers.AssertSuccess(t, rec.Body.Bytes())

	var data struct {
		ScheduledStartDate string `json:"scheduledStartDate"`
		ScheduledEndDate   string `json:"scheduledEndDate"`
		EstimatedDuration  int    `json:"estimatedDuration"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.ScheduledStartDate != start || data.ScheduledEndDate != end {
		t.Errorf("response should carry the saved dates, got %s..%s", data.ScheduledStartDate, data.ScheduledEndDate)
	}
	if data.EstimatedDuration != 5 {
		t.Errorf("expected derived duration 5 days inclusive, got %d", data.EstimatedDuration)
	}

	saved, err := app.FindRecordById("jobs", job.Id)
	if err != nil {
		t.Fatalf("failed to reload job: %v", err)
	}
	if saved.GetInt("estimated_duration") != 5 {
		t.Errorf("expected persisted duration 5, got %d", saved.GetInt("estimated_duration"))
	}
}

func TestHandleJobSchedule_TodayAccepted(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Today Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "turnkey")
	job := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "deposit_paid")

	today := time.Now().Format("2006-01-02")

	handler := HandleJobSchedule(app)

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/jobs/"+job.Id+"/schedule",
		scheduleBody(today, "", 3))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", job.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertSuccess(t, rec.Body.Bytes())
}

func TestHandleJobSchedule_Rejections(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Reject Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "turnkey")
	job := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "deposit_paid")

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	cases := []struct {
		name     string
		start    string
		end      string
		duration int
	}{
		{"start in past", yesterday, nextWeek, 0},
		{"end before start", nextWeek, tomorrow, 0},
		{"missing start", "", nextWeek, 0},
		{"bad format", "07/15/2026", "", 0},
		{"negative duration", tomorrow, nextWeek, -3},
	}

	handler := HandleJobSchedule(app)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/api/admin/jobs/"+job.Id+"/schedule",
				scheduleBody(tc.start, tc.end, tc.duration))
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

func TestHandleJobSchedule_ManualDurationWins(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Manual Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "turnkey")
	job := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "deposit_paid")

	start := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	end := time.Now().AddDate(0, 0, 9).Format("2006-01-02")

	handler := HandleJobSchedule(app)

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/jobs/"+job.Id+"/schedule",
		scheduleBody(start, end, 10))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", job.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	env := testhelpers.AssertSuccess(t, rec.Body.Bytes())

	var data struct {
		EstimatedDuration int `json:"estimatedDuration"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.EstimatedDuration != 10 {
		t.Errorf("expected manual duration 10 to win, got %d", data.EstimatedDuration)
	}
}
