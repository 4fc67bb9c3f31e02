package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/mailer"
	"github.com/pocketbase/pocketbase/tools/security"

	"paintadmin/services"
)

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// HandleForgotPassword issues a password reset token. The response is the
// same whether or not the address is registered.
func HandleForgotPassword(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req forgotPasswordRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}
		email := strings.TrimSpace(strings.ToLower(req.Email))
		if email == "" {
			return Fail(e, http.StatusBadRequest, "Email is required")
		}

		accepted := func() error {
			return OKMessage(e, "If that email is registered, a reset link has been sent", nil)
		}

		user, err := app.FindAuthRecordByEmail("users", email)
		if err != nil {
			return accepted()
		}

		col, err := app.FindCollectionByNameOrId("password_reset_tokens")
		if err != nil {
			log.Printf("auth: password_reset_tokens collection not found: %v", err)
			return accepted()
		}

		token := security.RandomString(40)
		record := core.NewRecord(col)
		record.Set("user", user.Id)
		record.Set("token", token)
		record.Set("expires", time.Now().UTC().Add(time.Hour).Format(time.RFC3339))
		record.Set("used", false)
		if err := app.Save(record); err != nil {
			log.Printf("auth: could not save reset token: %v", err)
			return accepted()
		}

		sendPasswordResetEmail(app, e, user, token)
		return accepted()
	}
}

func sendPasswordResetEmail(app *pocketbase.PocketBase, e *core.RequestEvent, user *core.Record, token string) {
	settings := GetTenantSettings(e.Request, app)
	if settings == nil {
		log.Printf("auth: no tenant settings, skipping reset email")
		return
	}

	link := fmt.Sprintf("/reset-password?token=%s", url.QueryEscape(token))

	templates := map[string]services.EmailTemplate{}
	if err := settings.UnmarshalJSONField("email_templates", &templates); err != nil {
		log.Printf("auth: could not read email templates: %v", err)
	}
	tmpl, ok := templates[services.EmailTemplatePasswordReset]
	if !ok {
		tmpl = services.DefaultEmailTemplates[services.EmailTemplatePasswordReset]
	}

	subject, body, err := services.RenderEmail(tmpl, services.EmailData{
		CompanyName: settings.GetString("company_name"),
		Link:        link,
	})
	if err != nil {
		log.Printf("auth: could not render reset email: %v", err)
		return
	}

	message := &mailer.Message{
		From: mail.Address{
			Name:    settings.GetString("email_from_name"),
			Address: app.Settings().Meta.SenderAddress,
		},
		To:      []mail.Address{{Address: user.Email()}},
		Subject: subject,
		Text:    body,
	}
	if err := app.NewMailClient().Send(message); err != nil {
		log.Printf("auth: could not send reset email to %s: %v", user.Email(), err)
	}
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// HandleResetPassword completes the forgot-password flow with a one-time
// token.
func HandleResetPassword(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req resetPasswordRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}
		if req.Token == "" {
			return Fail(e, http.StatusBadRequest, "Token is required")
		}
		if len(req.NewPassword) < 8 {
			return Fail(e, http.StatusBadRequest, "Password must be at least 8 characters")
		}

		tokens, err := app.FindRecordsByFilter(
			"password_reset_tokens",
			"token = {:token} && used = false",
			"",
			1,
			0,
			map[string]any{"token": req.Token},
		)
		if err != nil || len(tokens) == 0 {
			return Fail(e, http.StatusBadRequest, "Invalid or expired token")
		}
		tokenRecord := tokens[0]
		if tokenRecord.GetDateTime("expires").Time().Before(time.Now()) {
			return Fail(e, http.StatusBadRequest, "Invalid or expired token")
		}

		user, err := app.FindRecordById("users", tokenRecord.GetString("user"))
		if err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid or expired token")
		}

		user.SetPassword(req.NewPassword)
		if err := app.Save(user); err != nil {
			log.Printf("auth: could not save new password: %v", err)
			return Fail(e, http.StatusInternalServerError, "Could not reset password")
		}

		tokenRecord.Set("used", true)
		if err := app.Save(tokenRecord); err != nil {
			log.Printf("auth: could not mark token used: %v", err)
		}

		return OKMessage(e, "Password reset", nil)
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// HandleChangePassword updates the authenticated user's password after
// confirming the current one.
func HandleChangePassword(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := requestUser(app, e)
		if user == nil {
			return Fail(e, http.StatusUnauthorized, "Authentication required")
		}

		var req changePasswordRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}
		if !user.ValidatePassword(req.CurrentPassword) {
			return Fail(e, http.StatusBadRequest, "Current password is incorrect")
		}
		if len(req.NewPassword) < 8 {
			return Fail(e, http.StatusBadRequest, "Password must be at least 8 characters")
		}

		user.SetPassword(req.NewPassword)
		if err := app.Save(user); err != nil {
			log.Printf("auth: could not save new password: %v", err)
			return Fail(e, http.StatusInternalServerError, "Could not change password")
		}

		return OKMessage(e, "Password changed", nil)
	}
}

type twoFactorRequest struct {
	Password string `json:"password"`
}

// HandleTwoFactorEnable turns on 2FA for the authenticated user after a
// password confirmation and returns the enrollment secret once.
func HandleTwoFactorEnable(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := requestUser(app, e)
		if user == nil {
			return Fail(e, http.StatusUnauthorized, "Authentication required")
		}

		var req twoFactorRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}
		if !user.ValidatePassword(req.Password) {
			return Fail(e, http.StatusBadRequest, "Password is incorrect")
		}
		if user.GetBool("twofa_enabled") {
			return Fail(e, http.StatusBadRequest, "Two-factor authentication is already enabled")
		}

		secret := strings.ReplaceAll(uuid.NewString(), "-", "")
		user.Set("twofa_enabled", true)
		user.Set("twofa_secret", secret)
		if err := app.Save(user); err != nil {
			log.Printf("auth: could not enable 2fa: %v", err)
			return Fail(e, http.StatusInternalServerError, "Could not enable two-factor authentication")
		}

		return OKMessage(e, "Two-factor authentication enabled", map[string]any{
			"secret": secret,
		})
	}
}

// HandleTwoFactorDisable turns off 2FA after a password confirmation.
func HandleTwoFactorDisable(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := requestUser(app, e)
		if user == nil {
			return Fail(e, http.StatusUnauthorized, "Authentication required")
		}

		var req twoFactorRequest
		if err := e.BindBody(&req); err != nil {
			return Fail(e, http.StatusBadRequest, "Invalid request body")
		}
		if !user.ValidatePassword(req.Password) {
			return Fail(e, http.StatusBadRequest, "Password is incorrect")
		}

		user.Set("twofa_enabled", false)
		user.Set("twofa_secret", "")
		if err := app.Save(user); err != nil {
			log.Printf("auth: could not disable 2fa: %v", err)
			return Fail(e, http.StatusInternalServerError, "Could not disable two-factor authentication")
		}

		return OKMessage(e, "Two-factor authentication disabled", nil)
	}
}

// HandleTwoFactorStatus reports whether the authenticated user has 2FA on.
func HandleTwoFactorStatus(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := requestUser(app, e)
		if user == nil {
			return Fail(e, http.StatusUnauthorized, "Authentication required")
		}
		return OK(e, map[string]any{
			"enabled": user.GetBool("twofa_enabled"),
		})
	}
}

// requestUser resolves the authenticated user from the event auth state or,
// failing that, from a bearer token in the Authorization header.
func requestUser(app *pocketbase.PocketBase, e *core.RequestEvent) *core.Record {
	if e.Auth != nil {
		return e.Auth
	}
	token := strings.TrimPrefix(e.Request.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		return nil
	}
	user, err := app.FindAuthRecordByToken(token, core.TokenTypeAuth)
	if err != nil {
		return nil
	}
	return user
}
