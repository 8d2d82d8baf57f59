package mailer

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SMTPMailer delivers through an authenticated SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP creates an SMTP mailer. Port defaults to 587.
func NewSMTP(host string, port int, user, password, from string) *SMTPMailer {
	if port == 0 {
		port = 587
	}
	return &SMTPMailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
		sendMail: smtp.SendMail,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, text, html string) (string, error) {
	if m.host == "" || m.user == "" {
		return "", fmt.Errorf("smtp: %w", ErrNotConfigured)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	domain := m.from
	if at := strings.LastIndex(m.from, "@"); at >= 0 {
		domain = m.from[at+1:]
	}
	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)

	msg, err := buildMessage(m.from, to, subject, messageID, text, html)
	if err != nil {
		return "", err
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	if err := m.sendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}
	return messageID, nil
}

// buildMessage renders a multipart/alternative message.
func buildMessage(from, to, subject, messageID, text, html string) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=utf-8", text},
		{"text/html; charset=utf-8", html},
	}
	for _, p := range parts {
		if p.content == "" {
			continue
		}
		part, err := writer.CreatePart(textproto.MIMEHeader{"Content-Type": {p.contentType}})
		if err != nil {
			return nil, err
		}
		if _, err := part.Write([]byte(p.content)); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&msg, "Message-ID: %s\r\n", messageID)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", writer.Boundary())
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}
