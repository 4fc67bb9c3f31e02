package services

import (
	"bytes"
	"fmt"
	"text/template"
)

// Email template keys stored in the tenant settings email_templates map.
const (
	EmailTemplateMagicLink     = "magic_link"
	EmailTemplatePasswordReset = "password_reset"
	EmailTemplateJobScheduled  = "job_scheduled"
)

// EmailTemplate is one tenant-editable email, subject and body both
// rendered with the same data.
type EmailTemplate struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// DefaultEmailTemplates seeds new tenants with working templates for every
// known key. Placeholders use Go template syntax over EmailData fields.
var DefaultEmailTemplates = map[string]EmailTemplate{
	EmailTemplateMagicLink: {
		Subject: "Your {{.CompanyName}} project portal link",
		Body: "Hi {{.ClientName}},\n\n" +
			"Use the link below to view your project. It expires in {{.ExpiryHours}} hours.\n\n" +
			"{{.Link}}\n\n{{.CompanyName}}",
	},
	EmailTemplatePasswordReset: {
		Subject: "{{.CompanyName}} password reset",
		Body: "A password reset was requested for your account.\n\n" +
			"Reset link: {{.Link}}\n\n" +
			"If you did not request this, you can ignore this email.",
	},
	EmailTemplateJobScheduled: {
		Subject: "Your project with {{.CompanyName}} is scheduled",
		Body: "Hi {{.ClientName}},\n\n" +
			"Job {{.JobNumber}} is scheduled to start on {{.StartDate}}.\n\n{{.CompanyName}}",
	},
}

// EmailData carries every placeholder the tenant templates may reference.
type EmailData struct {
	CompanyName string
	ClientName  string
	JobNumber   string
	StartDate   string
	Link        string
	ExpiryHours int
}

// RenderEmail renders a tenant template's subject and body against data.
func RenderEmail(tmpl EmailTemplate, data EmailData) (subject, body string, err error) {
	subject, err = renderTemplateString("subject", tmpl.Subject, data)
	if err != nil {
		return "", "", err
	}
	body, err = renderTemplateString("body", tmpl.Body, data)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

func renderTemplateString(name, text string, data EmailData) (string, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse email %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email %s template: %w", name, err)
	}
	return buf.String(), nil
}
