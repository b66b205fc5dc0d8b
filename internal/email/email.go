// Package email formats agency notifications and sends them over SMTP.
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/evcraddock/wander/internal/inquiry"
	"github.com/evcraddock/wander/internal/wizard"
)

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
	User string `mapstructure:"user" yaml:"user"`
	Pass string `mapstructure:"pass" yaml:"pass"`
	From string `mapstructure:"from" yaml:"from"`
}

// IsConfigured returns true if SMTP settings are present.
func (c SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.From != ""
}

// FormatInquiry builds the plain-text body for a new contact inquiry.
func FormatInquiry(inq *inquiry.Inquiry) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "New inquiry from %s\n\n", inq.Name)
	fmt.Fprintf(&buf, "Contact: %s\n", inq.ContactNumber)
	fmt.Fprintf(&buf, "Email:   %s\n", inq.Email)
	fmt.Fprintf(&buf, "Budget:  %s\n", inq.Budget)

	if inq.Message != "" {
		fmt.Fprintf(&buf, "\nMessage:\n")
		for _, line := range strings.Split(inq.Message, "\n") {
			fmt.Fprintf(&buf, "   %s\n", line)
		}
	}

	if !inq.CreatedAt.IsZero() {
		fmt.Fprintf(&buf, "\nReceived %s\n", inq.CreatedAt.Format("2006-01-02 15:04 MST"))
	}
	fmt.Fprintf(&buf, "Reference: %s\n", inq.ID)

	return buf.String()
}

// FormatPlan builds the plain-text body for a confirmed itinerary.
func FormatPlan(sessionID string, it wizard.Itinerary) string {
	s := wizard.NewSummary(it)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\n", s.Headline)
	fmt.Fprintf(&buf, "   Destination: %s\n", s.Destination)
	fmt.Fprintf(&buf, "   Duration:    %s\n", s.Duration)
	fmt.Fprintf(&buf, "   Travelers:   %s\n", s.Travelers)
	fmt.Fprintf(&buf, "   Rooms:       %s\n", s.Rooms)
	fmt.Fprintf(&buf, "   Trip type:   %s\n", s.TripType)
	fmt.Fprintf(&buf, "\nSession: %s\n", sessionID)

	return buf.String()
}

// SendFunc delivers one message.
type SendFunc func(cfg SMTPConfig, to []string, subject, body string) error

// Notifier mails the agency inbox about inquiries and plans.
type Notifier struct {
	cfg  SMTPConfig
	to   []string
	send SendFunc
}

// NewNotifier returns a notifier, or nil when SMTP or the recipient is unset.
func NewNotifier(cfg SMTPConfig, to string) *Notifier {
	if !cfg.IsConfigured() || to == "" {
		return nil
	}
	return &Notifier{cfg: cfg, to: []string{to}, send: Send}
}

// Inquiry sends the inquiry notification. A nil Notifier does nothing.
func (n *Notifier) Inquiry(ctx context.Context, inq *inquiry.Inquiry) error {
	if n == nil {
		return nil
	}
	subject := fmt.Sprintf("New inquiry: %s (%s)", inq.Name, inq.Budget)
	if err := n.send(n.cfg, n.to, subject, FormatInquiry(inq)); err != nil {
		return fmt.Errorf("sending inquiry notification: %w", err)
	}
	slog.InfoContext(ctx, "inquiry notification sent", "inquiry_id", inq.ID)
	return nil
}

// Plan sends the confirmed-itinerary notification. A nil Notifier does nothing.
func (n *Notifier) Plan(ctx context.Context, sessionID string, it wizard.Itinerary) error {
	if n == nil {
		return nil
	}
	subject := fmt.Sprintf("Trip planned: %s, %s", it.Destination, it.DurationLabel)
	if err := n.send(n.cfg, n.to, subject, FormatPlan(sessionID, it)); err != nil {
		return fmt.Errorf("sending plan notification: %w", err)
	}
	slog.InfoContext(ctx, "plan notification sent", "session_id", sessionID)
	return nil
}

// Send sends an email via SMTP.
// Supports both port 465 (implicit TLS) and port 587 (STARTTLS).
func Send(cfg SMTPConfig, to []string, subject, body string) error {
	if !cfg.IsConfigured() {
		return fmt.Errorf("SMTP not configured")
	}

	addr := cfg.Host + ":" + cfg.Port
	msg := buildMessage(cfg.From, to, subject, body)

	if cfg.Port == "465" {
		return sendImplicitTLS(cfg, addr, to, msg)
	}
	return sendSTARTTLS(cfg, addr, to, msg)
}

var headerBreaks = strings.NewReplacer("\r", " ", "\n", " ")

func buildMessage(from string, to []string, subject, body string) string {
	subject = headerBreaks.Replace(subject)
	return fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		from,
		strings.Join(to, ", "),
		subject,
		body,
	)
}

// sendImplicitTLS connects over TLS directly (port 465/SMTPS).
func sendImplicitTLS(cfg SMTPConfig, addr string, to []string, msg string) (err error) {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: cfg.Host})
	if err != nil {
		return fmt.Errorf("TLS dial: %w", err)
	}

	c, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer func() {
		if quitErr := c.Quit(); quitErr != nil && err == nil {
			err = fmt.Errorf("quit: %w", quitErr)
		}
	}()

	if cfg.User != "" {
		if err := c.Auth(smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}

	return nil
}

// sendSTARTTLS connects plain then upgrades to TLS (port 587).
func sendSTARTTLS(cfg SMTPConfig, addr string, to []string, msg string) error {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, cfg.From, to, []byte(msg)); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
