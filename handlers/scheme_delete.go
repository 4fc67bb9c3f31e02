package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleSchemeDelete removes a pricing scheme. The default scheme is
// protected; pick a new default first.
func HandleSchemeDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		schemeID := e.Request.PathValue("id")

		scheme, err := app.FindRecordById("pricing_schemes", schemeID)
		if err != nil {
			log.Printf("scheme_delete: could not find scheme %s: %v", schemeID, err)
			return Fail(e, http.StatusNotFound, "Scheme not found")
		}
		if scheme.GetBool("is_default") {
			return Fail(e, http.StatusBadRequest, "The default scheme cannot be deleted")
		}

		if err := app.Delete(scheme); err != nil {
			log.Printf("scheme_delete: could not delete scheme %s: %v", schemeID, err)
			return Fail(e, http.StatusInternalServerError, "Could not delete scheme")
		}

		return OKMessage(e, "Scheme deleted", map[string]any{"id": schemeID})
	}
}
