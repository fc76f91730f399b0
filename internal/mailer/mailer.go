package mailer

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Mailer delivers confirmation codes out-of-band. Delivery is
// best-effort: callers log failures and keep going.
type Mailer interface {
	SendConfirmationCode(ctx context.Context, to, username, code string) error
}

// New returns an SMTP mailer when a host is configured and a log-only
// mailer otherwise, so development works without a relay.
func New(host, port, from, username, password string) Mailer {
	if host == "" {
		log.Println("SMTP_HOST not set, confirmation codes will be logged instead of mailed")
		return &logMailer{}
	}

	if port == "" {
		port = "587"
	}
	if from == "" {
		from = "noreply@yamdb.local"
	}

	return &smtpMailer{
		addr:     net.JoinHostPort(host, port),
		host:     host,
		from:     from,
		username: username,
		password: password,
		timeout:  30 * time.Second,
	}
}

type smtpMailer struct {
	addr     string
	host     string
	from     string
	username string
	password string
	timeout  time.Duration
}

func (m *smtpMailer) SendConfirmationCode(ctx context.Context, to, username, code string) error {
	msg := buildMessage(m.from, to, username, code)

	conn, err := net.DialTimeout("tcp", m.addr, m.timeout)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(m.timeout))
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if m.username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", m.username, m.password, m.host)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	return client.Quit()
}

func buildMessage(from, to, username, code string) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: YaMDB <%s>\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString("Subject: Your YaMDB confirmation code\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(fmt.Sprintf("Hi %s,\r\n\r\n", username))
	msg.WriteString(fmt.Sprintf("Use this confirmation code to obtain your access token: %s\r\n", code))

	return msg.String()
}

type logMailer struct{}

func (m *logMailer) SendConfirmationCode(_ context.Context, to, username, code string) error {
	log.Printf("confirmation code for %s <%s>: %s", username, to, code)
	return nil
}
