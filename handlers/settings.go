package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/services"
)

// settingsPayload is the tenant settings shape returned to the admin UI.
// Secrets never leave the server; the response only reports whether they
// are configured.
func settingsPayload(settings *core.Record) map[string]any {
	templates := map[string]services.EmailTemplate{}
	if err := settings.UnmarshalJSONField("email_templates", &templates); err != nil {
		templates = map[string]services.EmailTemplate{}
	}

	return map[string]any{
		"companyName":          settings.GetString("company_name"),
		"companyAddress":       settings.GetString("company_address"),
		"companyPhone":         settings.GetString("company_phone"),
		"companyEmail":         settings.GetString("company_email"),
		"logoUrl":              settings.GetString("logo_url"),
		"emailFromName":        settings.GetString("email_from_name"),
		"emailTemplates":       templates,
		"magicLinkExpiryHours": settings.GetInt("magic_link_expiry_hours"),
		"magicLinkBaseUrl":     settings.GetString("magic_link_base_url"),
		"magicLinkConfigured":  settings.GetString("magic_link_secret") != "",
		"cloudinaryCloudName":  settings.GetString("cloudinary_cloud_name"),
		"cloudinaryConfigured": settings.GetString("cloudinary_api_secret") != "",
	}
}

func HandleSettingsView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		settings := GetTenantSettings(e.Request, app)
		if settings == nil {
			return Fail(e, http.StatusNotFound, "Tenant settings not found")
		}
		return OK(e, settingsPayload(settings))
	}
}

type settingsUpdateRequest struct {
	CompanyName          *string                           `json:"companyName"`
	CompanyAddress       *string                           `json:"companyAddress"`
	CompanyPhone         *string                           `json:"companyPhone"`
	CompanyEmail         *string                           `json:"companyEmail"`
	LogoURL              *string                           `json:"logoUrl"`
	EmailFromName        *string                           `json:"emailFromName"`
	EmailTemplates       map[string]services.EmailTemplate `json:"emailTemplates"`
	MagicLinkExpiryHours *int                              `json:"magicLinkExpiryHours"`
	MagicLinkBaseURL     *string                           `json:"magicLinkBaseUrl"`
	CloudinaryCloudName  *string                           `json:"cloudinaryCloudName"`
	CloudinaryAPIKey     *string                           `json:"cloudinaryApiKey"`
}

// HandleSettingsUpdate applies a partial update; absent fields keep their
// stored values. Submitted email templates must parse and render before
// they are accepted.
func HandleSettingsUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		settings := GetTenantSettings(e.Request, app)
		if settings == nil {
			return Fail(e, http.StatusNotFound, "Tenant settings not found")
		}

		var req settingsUpdateRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}

		if req.CompanyName != nil {
			settings.Set("company_name", *req.CompanyName)
		}
		if req.CompanyAddress != nil {
			settings.Set("company_address", *req.CompanyAddress)
		}
		if req.CompanyPhone != nil {
			settings.Set("company_phone", *req.CompanyPhone)
		}
		if req.CompanyEmail != nil {
			settings.Set("company_email", *req.CompanyEmail)
		}
		if req.LogoURL != nil {
			settings.Set("logo_url", *req.LogoURL)
		}
		if req.EmailFromName != nil {
			settings.Set("email_from_name", *req.EmailFromName)
		}
		if req.MagicLinkExpiryHours != nil {
			if *req.MagicLinkExpiryHours < 1 {
				return Fail(e, http.StatusBadRequest, "Magic link expiry must be at least 1 hour")
			}
			settings.Set("magic_link_expiry_hours", *req.MagicLinkExpiryHours)
		}
		if req.MagicLinkBaseURL != nil {
			settings.Set("magic_link_base_url", *req.MagicLinkBaseURL)
		}
		// The Cloudinary API secret and magic-link signing secret are not
		// accepted here; operators rotate those through the dashboard.
		if req.CloudinaryCloudName != nil {
			settings.Set("cloudinary_cloud_name", *req.CloudinaryCloudName)
		}
		if req.CloudinaryAPIKey != nil {
			settings.Set("cloudinary_api_key", *req.CloudinaryAPIKey)
		}

		if req.EmailTemplates != nil {
			sample := services.EmailData{
				CompanyName: "Company", ClientName: "Client", JobNumber: "PNT-JOB-00-000",
				StartDate: "2006-01-02", Link: "https://example.com", ExpiryHours: 24,
			}
			templates := map[string]services.EmailTemplate{}
			if err := settings.UnmarshalJSONField("email_templates", &templates); err != nil {
				templates = map[string]services.EmailTemplate{}
			}
			for key, tmpl := range req.EmailTemplates {
				if _, ok := services.DefaultEmailTemplates[key]; !ok {
					return Fail(e, http.StatusBadRequest, "Unknown email template key: "+key)
				}
				if _, _, err := services.RenderEmail(tmpl, sample); err != nil {
					return Fail(e, http.StatusBadRequest, "Template "+key+" does not render: "+err.Error())
				}
				templates[key] = tmpl
			}
			settings.Set("email_templates", templates)
		}

		if err := app.Save(settings); err != nil {
			log.Printf("settings: could not save settings: %v", err)
			return Fail(e, http.StatusInternalServerError, "Could not save settings")
		}

		return OKMessage(e, "Settings saved", settingsPayload(settings))
	}
}

// HandleUploadSignature signs a direct-to-Cloudinary upload request so the
// API secret never reaches the browser.
func HandleUploadSignature(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		settings := GetTenantSettings(e.Request, app)
		if settings == nil {
			return Fail(e, http.StatusNotFound, "Tenant settings not found")
		}

		folder := e.Request.URL.Query().Get("folder")
		if folder == "" {
			folder = "paintadmin"
		}

		sig, err := services.SignCloudinaryUpload(
			settings.GetString("cloudinary_cloud_name"),
			settings.GetString("cloudinary_api_key"),
			settings.GetString("cloudinary_api_secret"),
			folder,
			time.Now(),
		)
		if err != nil {
			return Fail(e, http.StatusBadRequest, "Cloudinary is not configured")
		}

		return OK(e, sig)
	}
}
