package mail

import (
	"html/template"
	"strings"
	"time"
)

var resetTemplate = template.Must(template.New("password-reset").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Password Reset - Bug Dashboard</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f5f5f5;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; overflow: hidden;">
    <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 30px; text-align: center;">
      <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 400;">Bug Dashboard</h1>
    </div>
    <div style="padding: 40px 30px;">
      <h2 style="color: #202124; font-size: 24px; font-weight: 400; margin: 0 0 20px 0;">Reset your password</h2>
      <p style="color: #5f6368; font-size: 16px; line-height: 24px; margin: 0 0 20px 0;">
        We received a request to reset the password for your Bug Dashboard account.
      </p>
      <p style="color: #5f6368; font-size: 16px; line-height: 24px; margin: 0 0 30px 0;">
        Click the button below to reset your password. This link will expire in <strong>1 hour</strong>.
      </p>
      <div style="text-align: center; margin: 40px 0;">
        <a href="{{.ResetURL}}" style="display: inline-block; background-color: #1a73e8; color: #ffffff; text-decoration: none; padding: 12px 24px; border-radius: 4px; font-size: 16px;">
          Reset Password
        </a>
      </div>
      <div style="background-color: #f8f9fa; padding: 20px; border-radius: 4px; margin: 30px 0;">
        <p style="color: #5f6368; font-size: 14px; margin: 0 0 10px 0;">If the button doesn't work, copy and paste this link into your browser:</p>
        <p style="color: #1a73e8; font-size: 14px; word-break: break-all; margin: 0; font-family: monospace;">{{.ResetURL}}</p>
      </div>
      <div style="border-left: 4px solid #fbbc04; padding: 15px 20px; margin: 30px 0; background-color: #fef7e0;">
        <p style="color: #5f6368; font-size: 14px; margin: 0; line-height: 20px;">
          If you didn't request this password reset, please ignore this email. Your password will remain unchanged.
        </p>
      </div>
      <div style="border-top: 1px solid #dadce0; padding-top: 20px; margin-top: 30px;">
        <p style="color: #5f6368; font-size: 14px; margin: 0 0 5px 0;">Account: {{.Email}}</p>
        <p style="color: #5f6368; font-size: 14px; margin: 0;">Requested: {{.RequestedAt}}</p>
      </div>
    </div>
  </div>
</body>
</html>`))

// passwordResetBody renders the reset email. Template execution over a
// fixed template and string data cannot fail, so the error is discarded.
func passwordResetBody(resetURL, email string) string {
	var b strings.Builder
	_ = resetTemplate.Execute(&b, struct {
		ResetURL    string
		Email       string
		RequestedAt string
	}{
		ResetURL:    resetURL,
		Email:       email,
		RequestedAt: time.Now().Format("Jan 2, 2006 15:04 MST"),
	})
	return b.String()
}
