// Package smtp отправляет письма через SMTP с STARTTLS.
//
// Dialer открывает авторизованное соединение, Send передает по нему одно
// сообщение. Заголовки с не-ASCII текстом кодируются по RFC 2047.
package smtp

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/mail"
	"strings"
)

// Conn команды SMTP-сессии, которыми пользуется Send. Реализуется *smtp.Client.
type Conn interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// Dialer открывает SMTP-сессию от имени отправителя From.
type Dialer interface {
	Dial() (Conn, error)
	From() string
}

// Message текстовое письмо в UTF-8.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Bytes собирает письмо с заголовками для команды DATA.
func (m Message) Bytes(from string) []byte {
	var b bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, v) }

	header("From", from)
	header("To", strings.Join(m.To, ", "))
	header("Subject", mime.QEncoding.Encode("UTF-8", m.Subject))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="UTF-8"`)
	header("Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))
	return b.Bytes()
}

// envelopeAddr голый адрес для MAIL FROM: "Vigor Vista <noreply@x.com>" -> "noreply@x.com".
func envelopeAddr(from string) string {
	if addr, err := mail.ParseAddress(from); err == nil {
		return addr.Address
	}
	return from
}

// Send открывает сессию через d и отправляет m. Сессия закрывается в любом случае.
func Send(d Dialer, m Message) error {
	const op = "smtp.Send"

	if len(m.To) == 0 {
		return fmt.Errorf("%s: no recipients", op)
	}
	from := d.From()

	conn, err := d.Dial()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer conn.Close()

	if err := conn.Mail(envelopeAddr(from)); err != nil {
		return fmt.Errorf("%s: mail from: %w", op, err)
	}
	for _, rcpt := range m.To {
		if err := conn.Rcpt(rcpt); err != nil {
			return fmt.Errorf("%s: rcpt to %s: %w", op, rcpt, err)
		}
	}

	wc, err := conn.Data()
	if err != nil {
		return fmt.Errorf("%s: data: %w", op, err)
	}
	if _, err := wc.Write(m.Bytes(from)); err != nil {
		_ = wc.Close()
		return fmt.Errorf("%s: write: %w", op, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("%s: end data: %w", op, err)
	}
	if err := conn.Quit(); err != nil {
		return fmt.Errorf("%s: quit: %w", op, err)
	}
	return nil
}
