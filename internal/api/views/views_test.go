// internal/api/views/views_test.go
package views

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-registration/internal/api/types"
	"user-registration/internal/domain"
)

func TestRegister_EmptyForm(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MustNew().Register(&buf, types.RegisterPage{}))

	html := buf.String()
	assert.Contains(t, html, "<title>Registration Form</title>")
	assert.Contains(t, html, `<form action="/register" method="post">`)
	assert.NotContains(t, html, `class="error"`)
}

func TestRegister_EchoesEscapedValuesAndErrors(t *testing.T) {
	page := types.RegisterPage{
		Values: domain.RegistrationForm{
			Username: `"><script>alert(1)</script>`,
			Email:    "jane@example.com",
			Password: "must-not-appear",
			FullName: "Jane & Co",
		}.Echo(),
		Errors: domain.FieldErrors{
			domain.FieldUsername: "Username can only contain letters, numbers, and underscores",
			domain.FieldPassword: "Password must be at least 6 characters",
		},
		GeneralError: "Registration failed. Please try again later.",
	}

	var buf bytes.Buffer
	require.NoError(t, MustNew().Register(&buf, page))
	html := buf.String()

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, `value="jane@example.com"`)
	assert.Contains(t, html, "Jane &amp; Co")
	assert.NotContains(t, html, "must-not-appear")
	assert.Contains(t, html, `<div class="error" id="username-error">`)
	assert.Contains(t, html, `<div class="error" id="password-error">Password must be at least 6 characters</div>`)
	assert.Contains(t, html, `<div class="error" id="general-error">Registration failed. Please try again later.</div>`)
	assert.NotContains(t, html, `id="email-error"`)
	assert.Equal(t, 1, strings.Count(html, `type="password"`))
}

func TestSuccess(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MustNew().Success(&buf))
	assert.Contains(t, buf.String(), "Your account has been created.")
}
