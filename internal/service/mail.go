// Package service contains the outbound collaborators used by the handlers
package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// ErrRecipientIsSender is returned when a code would be mailed to the sender address itself
var ErrRecipientIsSender = errors.New("recipient address is the sender address")

// Mailer delivers confirmation codes. Implementations must report delivery
// failures, a nil error means the message was handed to the transport.
type Mailer interface {
	SendConfirmationCode(to, username, code string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type SMTPMailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *SMTPMailer) SendConfirmationCode(to, username, code string) error {
	if to == s.cfg.Sender {
		return ErrRecipientIsSender
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.Sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your confirmation code")
	m.SetBody("text/plain", confirmationBody(username, code))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation code to %s, %w", to, err)
	}

	return nil
}

// LogMailer writes confirmation codes to the log instead of sending them.
// Meant for local development only.
type LogMailer struct{}

func (LogMailer) SendConfirmationCode(to, username, code string) error {
	zap.L().Info("Confirmation code issued",
		zap.String("to", to),
		zap.String("username", username),
		zap.String("code", code),
	)

	return nil
}

func confirmationBody(username, code string) string {
	return fmt.Sprintf("Hi %s,\n\nUse this code together with your username to get an access token:\n\n%s\n\nThe code stops working once it has been used or your account changes.\n",
		username, code)
}
