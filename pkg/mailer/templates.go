package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var passwordResetHTML = template.Must(template.New("reset").Parse(`<p>Hello {{.Name}},</p>
<p>Click the link below to reset your password:</p>
<p><a href="{{.URL}}" target="_blank">{{.URL}}</a></p>
<p>The link is valid for 1 hour. If you did not request a reset, you can ignore this email.</p>
<p>The TaskPro Team</p>`))

var helpRequestHTML = template.Must(template.New("help").Parse(`<h3>New help request</h3>
<p><strong>User:</strong> {{.Email}}</p>
<hr />
<p><strong>Message:</strong></p>
<p>{{.Comment}}</p>`))

// PasswordReset builds the reset-link email for a user.
func PasswordReset(toEmail, name, resetURL string) (Message, error) {
	if name == "" {
		name = "TaskPro user"
	}
	var html bytes.Buffer
	if err := passwordResetHTML.Execute(&html, struct{ Name, URL string }{name, resetURL}); err != nil {
		return Message{}, err
	}
	return Message{
		ToEmail: toEmail,
		ToName:  name,
		Subject: "TaskPro - Password reset instructions",
		HTML:    html.String(),
		Text:    fmt.Sprintf("Hello %s, use this link to reset your password: %s", name, resetURL),
	}, nil
}

// HelpRequest builds the message forwarded to the support inbox.
func HelpRequest(supportEmail, fromEmail, comment string) (Message, error) {
	var html bytes.Buffer
	if err := helpRequestHTML.Execute(&html, struct{ Email, Comment string }{fromEmail, comment}); err != nil {
		return Message{}, err
	}
	return Message{
		ToEmail: supportEmail,
		ReplyTo: fromEmail,
		Subject: "TaskPro - New help request",
		HTML:    html.String(),
		Text:    fmt.Sprintf("Help request from %s:\n\n%s", fromEmail, comment),
	}, nil
}
