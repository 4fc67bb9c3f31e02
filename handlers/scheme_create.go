package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/services"
)

type schemeRequest struct {
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	PricingRules map[string]any `json:"pricingRules"`
	IsDefault    bool           `json:"isDefault"`
	IsActive     *bool          `json:"isActive"`
}

func HandleSchemeCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req schemeRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(req.Name) == "" {
			return Fail(e, http.StatusBadRequest, "Scheme name is required")
		}
		if !services.IsValidSchemeType(req.Type) {
			return Fail(e, http.StatusBadRequest, "Unknown scheme type")
		}

		col, err := app.FindCollectionByNameOrId("pricing_schemes")
		if err != nil {
			log.Printf("scheme_create: collection not found: %v", err)
			return Fail(e, http.StatusInternalServerError, "Could not create scheme")
		}

		scheme := core.NewRecord(col)
		scheme.Set("name", strings.TrimSpace(req.Name))
		scheme.Set("type", req.Type)
		if req.PricingRules != nil {
			scheme.Set("pricing_rules", req.PricingRules)
		} else {
			scheme.Set("pricing_rules", map[string]any{})
		}
		scheme.Set("is_default", false)
		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}
		scheme.Set("is_active", active)

		if err := app.Save(scheme); err != nil {
			log.Printf("scheme_create: could not save scheme: %v", err)
			return Fail(e, http.StatusInternalServerError, "Could not create scheme")
		}

		if req.IsDefault {
			if err := setDefaultScheme(app, scheme); err != nil {
				log.Printf("scheme_create: could not set default: %v", err)
			}
		}

		return OKMessage(e, "Scheme created", schemePayload(scheme))
	}
}

// setDefaultScheme makes scheme the single default, clearing the flag on
// every other scheme.
func setDefaultScheme(app *pocketbase.PocketBase, scheme *core.Record) error {
	others, err := app.FindRecordsByFilter(
		"pricing_schemes",
		"is_default = true && id != {:id}",
		"",
		0,
		0,
		map[string]any{"id": scheme.Id},
	)
	if err != nil {
		return err
	}
	for _, other := range others {
		other.Set("is_default", false)
		if err := app.Save(other); err != nil {
			return err
		}
	}
	scheme.Set("is_default", true)
	return app.Save(scheme)
}
