package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/services"
)

func HandleSchemeEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		schemeID := e.Request.PathValue("id")

		scheme, err := app.FindRecordById("pricing_schemes", schemeID)
		if err != nil {
			log.Printf("scheme_edit: could not find scheme %s: %v", schemeID, err)
			return Fail(e, http.StatusNotFound, "Scheme not found")
		}

		var req schemeRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}

		if req.Name != "" {
			scheme.Set("name", strings.TrimSpace(req.Name))
		}
		if req.Type != "" {
			if !services.IsValidSchemeType(req.Type) {
				return Fail(e, http.StatusBadRequest, "Unknown scheme type")
			}
			scheme.Set("type", req.Type)
		}
		if req.PricingRules != nil {
			scheme.Set("pricing_rules", req.PricingRules)
		}
		if req.IsActive != nil {
			if !*req.IsActive && scheme.GetBool("is_default") {
				return Fail(e, http.StatusBadRequest, "The default scheme cannot be deactivated")
			}
			scheme.Set("is_active", *req.IsActive)
		}

		if err := app.Save(scheme); err != nil {
			log.Printf("scheme_edit: could not save scheme %s: %v", schemeID, err)
			return Fail(e, http.StatusInternalServerError, "Could not update scheme")
		}

		return OKMessage(e, "Scheme updated", schemePayload(scheme))
	}
}

func HandleSchemeSetDefault(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		schemeID := e.Request.PathValue("id")

		scheme, err := app.FindRecordById("pricing_schemes", schemeID)
		if err != nil {
			log.Printf("scheme_default: could not find scheme %s: %v", schemeID, err)
			return Fail(e, http.StatusNotFound, "Scheme not found")
		}
		if !scheme.GetBool("is_active") {
			return Fail(e, http.StatusBadRequest, "An inactive scheme cannot be the default")
		}

		if err := setDefaultScheme(app, scheme); err != nil {
			log.Printf("scheme_default: could not set default %s: %v", schemeID, err)
			return Fail(e, http.StatusInternalServerError, "Could not set default scheme")
		}

		return OKMessage(e, "Default scheme updated", schemePayload(scheme))
	}
}
