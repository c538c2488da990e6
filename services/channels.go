// services/channels.go
package services

import (
	"fmt"
	"net"
	"net/smtp"
	"os"
	"sync"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// EmailSender delivers a rendered message over email and reports the
// provider message id, if any.
type EmailSender interface {
	Send(to, subject, body string) (string, error)
}

// SMSSender delivers a rendered message over SMS.
type SMSSender interface {
	Send(to, body string) (string, error)
}

const defaultSendTimeout = 15 * time.Second

// NewEmailSenderFromEnv picks the email adapter at startup. Business logic
// only ever sees the EmailSender interface.
func NewEmailSenderFromEnv() EmailSender {
	if os.Getenv("NOTIFY_PROVIDER") == "mock" {
		return &MockEmailSender{}
	}
	return NewSMTPEmailSender()
}

// NewSMSSenderFromEnv picks the SMS adapter at startup.
func NewSMSSenderFromEnv() SMSSender {
	if os.Getenv("NOTIFY_PROVIDER") == "mock" {
		return &MockSMSSender{}
	}
	return NewTwilioSMSSender()
}

// TwilioSMSSender sends SMS through the Twilio REST API
type TwilioSMSSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSMSSender() *TwilioSMSSender {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	// A hung provider call must not stall the sequential daily run
	client.SetTimeout(defaultSendTimeout)

	return &TwilioSMSSender{
		client: client,
		from:   os.Getenv("TWILIO_PHONE_NUMBER"),
	}
}

func (s *TwilioSMSSender) Send(to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// SMTPEmailSender sends plain-text email over SMTP with a dial/send deadline
type SMTPEmailSender struct {
	host     string
	port     string
	from     string
	username string
	password string
	timeout  time.Duration
}

func NewSMTPEmailSender() *SMTPEmailSender {
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &SMTPEmailSender{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		from:     os.Getenv("SMTP_FROM"),
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		timeout:  defaultSendTimeout,
	}
}

func (s *SMTPEmailSender) Send(to, subject, body string) (string, error) {
	addr := net.JoinHostPort(s.host, s.port)

	conn, err := net.DialTimeout("tcp", addr, s.timeout)
	if err != nil {
		return "", err
	}
	conn.SetDeadline(time.Now().Add(s.timeout))

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return "", err
	}
	defer client.Close()

	if s.username != "" {
		if err := client.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
			return "", err
		}
	}

	if err := client.Mail(s.from); err != nil {
		return "", err
	}
	if err := client.Rcpt(to); err != nil {
		return "", err
	}

	w, err := client.Data()
	if err != nil {
		return "", err
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		s.from, to, subject, body)
	if _, err := w.Write([]byte(msg)); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	// SMTP has no provider message id to report
	return "", client.Quit()
}

// MockMessage records one delivery attempt made against a mock sender
type MockMessage struct {
	To      string
	Subject string
	Body    string
}

// MockEmailSender records sends instead of delivering them. Used in tests
// and when NOTIFY_PROVIDER=mock.
type MockEmailSender struct {
	mu   sync.Mutex
	Sent []MockMessage
	Err  error // when set, every send fails with this error
}

func (m *MockEmailSender) Send(to, subject, body string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.Sent = append(m.Sent, MockMessage{To: to, Subject: subject, Body: body})
	return fmt.Sprintf("mock-email-%d", len(m.Sent)), nil
}

func (m *MockEmailSender) Messages() []MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockMessage, len(m.Sent))
	copy(out, m.Sent)
	return out
}

// MockSMSSender records sends instead of delivering them
type MockSMSSender struct {
	mu   sync.Mutex
	Sent []MockMessage
	Err  error
}

func (m *MockSMSSender) Send(to, body string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.Sent = append(m.Sent, MockMessage{To: to, Body: body})
	return fmt.Sprintf("mock-sms-%d", len(m.Sent)), nil
}

func (m *MockSMSSender) Messages() []MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockMessage, len(m.Sent))
	copy(out, m.Sent)
	return out
}
