package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
)

type EmailData struct {
	Name      string
	Message   string
	ActionURL string
	ActionTag string
}

var emailTemplate = template.Must(template.New("email").Parse(`
<html>
<body>
	<div style="max-width: 600px; margin: 0 auto; font-family: Arial, sans-serif;">
		<h2 style="color: #8B4513;">JR Rodriguez Meat Dealer</h2>
		<p>Dear {{.Name}},</p>
		<p>{{.Message}}</p>
		{{if .ActionURL}}<p><a href="{{.ActionURL}}" style="background: #8B4513; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">{{.ActionTag}}</a></p>{{end}}
		<br>
		<p>Best regards,<br>JR Rodriguez Meat Dealer Team</p>
	</div>
</body>
</html>
`))

func SendEmail(emailTo, emailSubject string, data EmailData) error {
	var body bytes.Buffer
	if err := emailTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		os.Getenv("FROM_EMAIL"),
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth(
		"",
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	if err := smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, os.Getenv("FROM_EMAIL"), []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendVerificationEmail delivers the account activation link.
func SendVerificationEmail(emailTo, name, token string) error {
	return SendEmail(emailTo, "Account Verification", EmailData{
		Name:      name,
		Message:   "Thank you for registering with us! To complete your registration, please verify your email address by clicking the button below.",
		ActionURL: os.Getenv("FRONTEND_URL") + "/verify-email?token=" + token,
		ActionTag: "Verify Email Address",
	})
}

// SendPasswordResetEmail delivers the reset link. The link expires in one
// hour.
func SendPasswordResetEmail(emailTo, name, token string) error {
	return SendEmail(emailTo, "Password Reset - JR Rodriguez Meat Dealer", EmailData{
		Name:      name,
		Message:   "We received a request to reset your password. Click the button below to reset it. This link will expire in 1 hour.",
		ActionURL: os.Getenv("FRONTEND_URL") + "/reset-password?token=" + token,
		ActionTag: "Reset Password",
	})
}
