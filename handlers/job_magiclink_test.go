package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paintadmin/services"
	"paintadmin/testhelpers"
)

func TestHandleJobMagicLink_IssuesVerifiableToken(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestSettings(t, app)
	client := testhelpers.CreateTestClient(t, app, "Portal Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "turnkey")
	job := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "scheduled")

	handler := HandleJobMagicLink(app)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs/"+job.Id+"/magic-link",
		strings.NewReader(`{"sendEmail":false}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", job.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	env := testhelpers.AssertSuccess(t, rec.Body.Bytes())

	var data struct {
		Link        string `json:"link"`
		Token       string `json:"token"`
		ExpiryHours int    `json:"expiryHours"`
		EmailSent   bool   `json:"emailSent"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}

	if data.ExpiryHours != 72 {
		t.Errorf("expected tenant expiry 72, got %d", data.ExpiryHours)
	}
	if data.EmailSent {
		t.Error("no email was requested")
	}
	if !strings.Contains(data.Link, "token=") {
		t.Errorf("expected token in link, got %s", data.Link)
	}

	claims, err := services.VerifyMagicLinkToken("test-magic-secret", data.Token)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.ClientID != client.Id || claims.JobID != job.Id {
		t.Errorf("claims mismatch: client=%s job=%s", claims.ClientID, claims.JobID)
	}
}

func TestHandleJobMagicLink_NoSettings(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "No Settings Client")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "turnkey")
	job := testhelpers.CreateTestJob(t, app, quote.Id, client.Id, "scheduled")

	handler := HandleJobMagicLink(app)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs/"+job.Id+"/magic-link",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", job.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
	testhelpers.AssertFailure(t, rec.Body.Bytes())
}
