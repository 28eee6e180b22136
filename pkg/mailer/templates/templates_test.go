package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	data := ToMap(EmailData{
		Name:    "Ana",
		Email:   "ana@example.com",
		AppName: "inventory-api",
	})
	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)

	assert.Contains(t, subject, "inventory-api")
	assert.Contains(t, text, "Ana")
	assert.Contains(t, text, "ana@example.com")
	assert.Contains(t, html, "ana@example.com")
}

func TestRenderPasswordReset(t *testing.T) {
	exp := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	data := ToMap(EmailData{
		Name:          "Ana",
		Email:         "ana@example.com",
		AppName:       "inventory-api",
		ResetURL:      "http://localhost:3000/reset-password?token=abc",
		ExpiresAt:     exp,
		ExpiresAtText: exp.Format("Jan 2, 2006 15:04 MST"),
	})
	subject, text, html, err := Render(PasswordReset, data)
	require.NoError(t, err)

	assert.Contains(t, subject, "Reset")
	assert.Contains(t, text, "http://localhost:3000/reset-password?token=abc")
	assert.Contains(t, html, `href="http://localhost:3000/reset-password?token=abc"`)
	assert.Contains(t, text, "Aug 30, 2026")
}

func TestRenderUnknownTemplateFails(t *testing.T) {
	_, _, _, err := Render("no_such_template", nil)
	assert.Error(t, err)
}
