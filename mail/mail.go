// Package mail delivers the magic-link login email. The transport is an
// injectable function so the server can run without SMTP configured; the
// default sender speaks plain SMTP with STARTTLS-capable servers.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"
	"text/template"
	"time"
)

// SendFunc delivers a rendered email. Implementations must be safe for
// concurrent use.
type SendFunc func(to, from, subject, body string) error

// Params is the data rendered into the login email template.
type Params struct {
	URL        string
	Expiration time.Duration
}

// DefaultTemplate is the body of the login email.
const DefaultTemplate = `Sign in to Admin Dashboard

Click this link to sign in:

{{.URL}}

The link is valid for {{printf "%.f" .Expiration.Minutes}} minutes.

If you did not request this email, you can ignore it.
`

type Mailer struct {
	send  SendFunc
	from  string
	templ *template.Template
}

// New creates a Mailer that delivers through send. This function panics if
// send is nil.
func New(from string, send SendFunc) *Mailer {
	if send == nil {
		panic("send must be provided")
	}
	return &Mailer{
		send:  send,
		from:  from,
		templ: template.Must(template.New("login-email").Parse(DefaultTemplate)),
	}
}

// SendLoginLink emails the magic link to the given address.
func (m *Mailer) SendLoginLink(to, url string, expiration time.Duration) error {
	var body strings.Builder
	if err := m.templ.Execute(&body, Params{URL: url, Expiration: expiration}); err != nil {
		return fmt.Errorf("render login email: %w", err)
	}
	return m.send(to, m.from, "Sign in to Admin Dashboard", body.String())
}

// SMTPSender returns a SendFunc backed by net/smtp with plain auth.
func SMTPSender(host string, port int, user, password string) SendFunc {
	addr := fmt.Sprintf("%s:%d", host, port)
	auth := smtp.PlainAuth("", user, password, host)
	return func(to, from, subject, body string) error {
		msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
			from, to, subject, body)
		return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
	}
}
