package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"paintadmin/collections"
	"paintadmin/handlers"
	"paintadmin/payments"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	app := pocketbase.New()

	var gateway payments.Gateway
	if g, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")); err != nil {
		log.Printf("Warning: payment gateway disabled: %v", err)
	} else {
		gateway = g
	}

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateAreaProgress(app); err != nil {
			log.Printf("Warning: area progress migration failed: %v", err)
		}
		if err := collections.MigrateSettingsDefaults(app); err != nil {
			log.Printf("Warning: settings migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.TenantSettingsMiddleware(app))

		// ── Jobs: list, dashboard, calendar, export ──────────────
		se.Router.GET("/api/admin/jobs", handlers.HandleJobList(app))
		se.Router.GET("/api/admin/jobs/stats", handlers.HandleJobStats(app))
		se.Router.GET("/api/admin/jobs/calendar", handlers.HandleJobCalendar(app))
		se.Router.GET("/api/admin/jobs/export/excel", handlers.HandleJobExportExcel(app))

		// ── Jobs: per-job operations ─────────────────────────────
		se.Router.GET("/api/admin/jobs/{id}", handlers.HandleJobView(app))
		se.Router.PATCH("/api/admin/jobs/{id}/schedule", handlers.HandleJobSchedule(app))
		se.Router.PATCH("/api/admin/jobs/{id}/status", handlers.HandleJobStatusUpdate(app))
		se.Router.POST("/api/admin/jobs/{id}/area-progress", handlers.HandleJobProgress(app))
		se.Router.PATCH("/api/admin/jobs/{id}/approve-selections", handlers.HandleJobSelectionsApprove(app))
		se.Router.PATCH("/api/admin/jobs/{id}/visibility", handlers.HandleJobVisibility(app))
		se.Router.POST("/api/admin/jobs/{id}/lost-reason", handlers.HandleJobLostReason(app))
		se.Router.POST("/api/admin/jobs/{id}/magic-link", handlers.HandleJobMagicLink(app))

		// ── Job documents ────────────────────────────────────────
		se.Router.GET("/api/admin/jobs/{id}/documents", handlers.HandleJobDocumentList(app))
		se.Router.POST("/api/admin/jobs/{id}/documents/generate", handlers.HandleJobDocumentGenerate(app))
		se.Router.GET("/api/admin/jobs/{id}/documents/{docType}", handlers.HandleJobDocumentDownload(app))

		// ── Quote status administration ──────────────────────────
		se.Router.GET("/api/admin/lost-reasons", handlers.HandleLostReasonOptions())
		se.Router.POST("/api/admin/quotes/{id}/lost", handlers.HandleQuoteMarkLost(app))
		se.Router.POST("/api/admin/status/quotes/{id}/mark-deposit-paid", handlers.HandleQuoteMarkDepositPaid(app))
		se.Router.POST("/api/admin/status/quotes/{id}/reopen", handlers.HandleQuoteReopen(app))
		se.Router.POST("/api/admin/status/quotes/{id}/sync-payment", handlers.HandleQuoteSyncPayment(app, gateway))
		se.Router.PATCH("/api/admin/status/jobs/{id}/status", handlers.HandleJobStatusUpdate(app))
		se.Router.POST("/api/admin/status/jobs/{id}/override-status", handlers.HandleJobStatusOverride(app))

		// ── Pricing schemes ──────────────────────────────────────
		se.Router.GET("/api/admin/pricing-schemes", handlers.HandleSchemeList(app))
		se.Router.POST("/api/admin/pricing-schemes", handlers.HandleSchemeCreate(app))
		se.Router.GET("/api/admin/pricing-schemes/{id}", handlers.HandleSchemeView(app))
		se.Router.PUT("/api/admin/pricing-schemes/{id}", handlers.HandleSchemeEdit(app))
		se.Router.PUT("/api/admin/pricing-schemes/{id}/set-default", handlers.HandleSchemeSetDefault(app))
		se.Router.DELETE("/api/admin/pricing-schemes/{id}", handlers.HandleSchemeDelete(app))

		// ── Tenant settings ──────────────────────────────────────
		se.Router.GET("/api/admin/settings", handlers.HandleSettingsView(app))
		se.Router.PUT("/api/admin/settings", handlers.HandleSettingsUpdate(app))
		se.Router.GET("/api/admin/settings/upload-signature", handlers.HandleUploadSignature(app))

		// ── Auth ─────────────────────────────────────────────────
		se.Router.POST("/api/admin/auth/forgot-password", handlers.HandleForgotPassword(app))
		se.Router.POST("/api/admin/auth/reset-password", handlers.HandleResetPassword(app))
		se.Router.POST("/api/admin/auth/change-password", handlers.HandleChangePassword(app))
		se.Router.POST("/api/admin/auth/enable-2fa", handlers.HandleTwoFactorEnable(app))
		se.Router.POST("/api/admin/auth/disable-2fa", handlers.HandleTwoFactorDisable(app))
		se.Router.GET("/api/admin/auth/2fa-status", handlers.HandleTwoFactorStatus(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
