// Package mailer отправляет HTML-письма через SMTP поверх TLS.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Message struct {
	To       []string
	Subject  string
	HTMLBody string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
}

// New возвращает SMTP-отправителя или, если учётные данные не заданы,
// демо-отправителя, который только пишет письма в лог.
func New(host string, port int, user, password string, logger *zap.Logger) Mailer {
	if user == "" || password == "" {
		logger.Warn("SMTP не настроен, письма будут только логироваться")
		return &LogMailer{logger: logger}
	}
	return &SMTPMailer{host: host, port: port, user: user, password: password}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: m.host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("не удалось подключиться к SMTP %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(30 * time.Second))
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("ошибка SMTP-рукопожатия: %w", err)
	}
	defer client.Close()

	if err = client.Auth(smtp.PlainAuth("", m.user, m.password, m.host)); err != nil {
		return fmt.Errorf("ошибка авторизации SMTP: %w", err)
	}
	if err = client.Mail(m.user); err != nil {
		return err
	}
	for _, rcpt := range msg.To {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("получатель %s отклонён: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(Compose(m.user, msg)); err != nil {
		w.Close()
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// Compose собирает RFC 5322 сообщение с HTML-телом в UTF-8.
func Compose(from string, msg Message) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.BEncoding.Encode("utf-8", msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	buf.WriteString(msg.HTMLBody)
	return buf.Bytes()
}

// LogMailer - демо-режим: письмо не отправляется, а пишется в лог.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("ДЕМО-РЕЖИМ: письмо не отправлено",
		zap.Strings("кому", msg.To),
		zap.String("тема", msg.Subject),
	)
	return nil
}
