package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordResetBody(t *testing.T) {
	body := passwordResetBody("https://dash.example.com/reset-password?token=abc123", "user@example.com")

	assert.Contains(t, body, "https://dash.example.com/reset-password?token=abc123")
	assert.Contains(t, body, "user@example.com")
	assert.Contains(t, body, "Reset Password")
	assert.Contains(t, body, "expire in <strong>1 hour</strong>")
}

// html/template must escape hostile input, not interpolate it raw.
func TestPasswordResetBody_EscapesInput(t *testing.T) {
	body := passwordResetBody("https://dash.example.com/reset", `<script>alert(1)</script>@example.com`)

	assert.NotContains(t, body, "<script>")
}
