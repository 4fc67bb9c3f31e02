package handlers

import (
	"log"
	"net/http"
	"net/mail"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/mailer"

	"paintadmin/services"
)

type magicLinkRequest struct {
	SendEmail bool `json:"sendEmail"`
}

// HandleJobMagicLink issues a portal access link for the job's client.
// When sendEmail is set and the client has an address, the link is also
// emailed using the tenant's magic_link template.
func HandleJobMagicLink(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobID := e.Request.PathValue("id")

		job, err := app.FindRecordById("jobs", jobID)
		if err != nil {
			log.Printf("job_magiclink: could not find job %s: %v", jobID, err)
			return Fail(e, http.StatusNotFound, "Job not found")
		}

		var req magicLinkRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}

		settings := GetTenantSettings(e.Request, app)
		if settings == nil {
			return Fail(e, http.StatusInternalServerError, "Tenant settings are not configured")
		}

		expiryHours := settings.GetInt("magic_link_expiry_hours")
		token, err := services.IssueMagicLinkToken(
			settings.GetString("magic_link_secret"),
			job.GetString("client"),
			job.Id,
			expiryHours,
			time.Now(),
		)
		if err != nil {
			log.Printf("job_magiclink: could not issue token for job %s: %v", jobID, err)
			return Fail(e, http.StatusInternalServerError, "Could not issue magic link")
		}
		link := services.MagicLinkURL(settings.GetString("magic_link_base_url"), token)

		emailSent := false
		if req.SendEmail {
			emailSent = sendMagicLinkEmail(app, settings, job, link, expiryHours)
		}

		return OK(e, map[string]any{
			"link":        link,
			"token":       token,
			"expiryHours": expiryHours,
			"emailSent":   emailSent,
		})
	}
}

func sendMagicLinkEmail(app *pocketbase.PocketBase, settings, job *core.Record, link string, expiryHours int) bool {
	client, err := app.FindRecordById("clients", job.GetString("client"))
	if err != nil || client.GetString("email") == "" {
		log.Printf("job_magiclink: no client email for job %s", job.Id)
		return false
	}

	templates := map[string]services.EmailTemplate{}
	if err := settings.UnmarshalJSONField("email_templates", &templates); err != nil {
		log.Printf("job_magiclink: could not read email templates: %v", err)
	}
	tmpl, ok := templates[services.EmailTemplateMagicLink]
	if !ok {
		tmpl = services.DefaultEmailTemplates[services.EmailTemplateMagicLink]
	}

	subject, body, err := services.RenderEmail(tmpl, services.EmailData{
		CompanyName: settings.GetString("company_name"),
		ClientName:  client.GetString("name"),
		JobNumber:   job.GetString("job_number"),
		StartDate:   dateString(job, "scheduled_start_date"),
		Link:        link,
		ExpiryHours: expiryHoursOrDefault(expiryHours),
	})
	if err != nil {
		log.Printf("job_magiclink: could not render email: %v", err)
		return false
	}

	message := &mailer.Message{
		From: mail.Address{
			Name:    settings.GetString("email_from_name"),
			Address: app.Settings().Meta.SenderAddress,
		},
		To:      []mail.Address{{Name: client.GetString("name"), Address: client.GetString("email")}},
		Subject: subject,
		Text:    body,
	}
	if err := app.NewMailClient().Send(message); err != nil {
		log.Printf("job_magiclink: could not send email to %s: %v", client.GetString("email"), err)
		return false
	}
	return true
}

func expiryHoursOrDefault(hours int) int {
	if hours < 1 {
		return 24
	}
	return hours
}
