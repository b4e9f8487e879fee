package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// ResetSubject тема письма для сброса пароля
const ResetSubject = "Capsort - Password Reset Request"

var resetHTML = htmltemplate.Must(htmltemplate.New("reset.html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Password Reset Request</h2>
  <p>Hello {{.FullName}},</p>
  <p>We received a request to reset the password for your Capsort account.</p>
  <p><a href="{{.Link}}" style="background:#1e3a8a;color:#fff;padding:10px 20px;text-decoration:none;border-radius:4px;">Reset Password</a></p>
  <p>Or copy this link into your browser:<br>{{.Link}}</p>
  <p>This link expires in {{.ExpiresIn}}. If you did not request a reset, you can ignore this email.</p>
  <p>Capsort Team</p>
</body>
</html>
`))

var resetText = texttemplate.Must(texttemplate.New("reset.txt").Parse(`Hello {{.FullName}},

We received a request to reset the password for your Capsort account.

Open this link to choose a new password:
{{.Link}}

This link expires in {{.ExpiresIn}}. If you did not request a reset, you can ignore this email.

Capsort Team
`))

// ResetData данные для шаблона письма
type ResetData struct {
	FullName  string
	Link      string
	ExpiresIn string
}

// ResetMessage renders the password reset email for one recipient
func ResetMessage(to string, data ResetData) (Message, error) {
	var html, text bytes.Buffer

	if err := resetHTML.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render html template: %w", err)
	}
	if err := resetText.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("render text template: %w", err)
	}

	return Message{
		To:      to,
		Subject: ResetSubject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
