package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func schemePayload(scheme *core.Record) map[string]any {
	rules := map[string]any{}
	if err := scheme.UnmarshalJSONField("pricing_rules", &rules); err != nil {
		rules = map[string]any{}
	}
	return map[string]any{
		"id":           scheme.Id,
		"name":         scheme.GetString("name"),
		"type":         scheme.GetString("type"),
		"pricingRules": rules,
		"isDefault":    scheme.GetBool("is_default"),
		"isActive":     scheme.GetBool("is_active"),
	}
}

func HandleSchemeView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		schemeID := e.Request.PathValue("id")

		scheme, err := app.FindRecordById("pricing_schemes", schemeID)
		if err != nil {
			log.Printf("scheme_view: could not find scheme %s: %v", schemeID, err)
			return Fail(e, http.StatusNotFound, "Scheme not found")
		}

		return OK(e, schemePayload(scheme))
	}
}

func HandleSchemeList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		schemes, err := app.FindRecordsByFilter("pricing_schemes", "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("scheme_list: could not query pricing_schemes: %v", err)
			schemes = nil
		}

		items := make([]map[string]any, 0, len(schemes))
		for _, scheme := range schemes {
			items = append(items, schemePayload(scheme))
		}

		return OK(e, map[string]any{"schemes": items})
	}
}
