package utils

import (
	"fmt"
	"mime"
	"net/smtp"
)

type Email struct {
	From    string
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(email Email) error
}

type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, Username: username, Password: password}
}

// buildMessage renders the raw message. The subject is RFC 2047 encoded.
func buildMessage(email Email) []byte {
	// Headers: hỗ trợ UTF-8 & HTML
	msg := ""
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	msg += fmt.Sprintf("From: %s\r\n", email.From)
	msg += fmt.Sprintf("To: %s\r\n", email.To)
	msg += fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject))
	msg += "\r\n" + email.HTML
	return []byte(msg)
}

func (m *SMTPMailer) Send(email Email) error {
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	err := smtp.SendMail(
		fmt.Sprintf("%s:%d", m.Host, m.Port),
		auth,
		email.From,
		[]string{email.To},
		buildMessage(email),
	)
	if err != nil {
		return fmt.Errorf("send email to %s: %w", email.To, err)
	}
	return nil
}
