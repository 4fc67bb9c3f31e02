package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const TenantSettingsKey contextKey = "tenantSettings"

// TenantSettingsMiddleware loads the singleton settings record once per
// request and stores it in the request context so handlers don't repeat
// the lookup.
func TenantSettingsMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindAllRecords("settings")
		if err != nil {
			log.Printf("middleware: could not load settings: %v", err)
		}
		if len(records) > 0 {
			ctx := context.WithValue(e.Request.Context(), TenantSettingsKey, records[0])
			e.Request = e.Request.WithContext(ctx)
		}
		return e.Next()
	}
}

// GetTenantSettings returns the settings record from the request context,
// falling back to a direct lookup for callers outside the middleware chain.
func GetTenantSettings(r *http.Request, app *pocketbase.PocketBase) *core.Record {
	if val, ok := r.Context().Value(TenantSettingsKey).(*core.Record); ok {
		return val
	}
	records, err := app.FindAllRecords("settings")
	if err != nil || len(records) == 0 {
		return nil
	}
	return records[0]
}
