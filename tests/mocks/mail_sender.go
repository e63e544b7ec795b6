package mocks

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/redacok/redacok-backend/internal/domain/valueobject/mail"
)

type MailSender struct {
	mu        sync.Mutex
	sentMails []mail.Payload
	failWith  error
}

func NewMailSender() *MailSender {
	return &MailSender{sentMails: make([]mail.Payload, 0)}
}

func (m *MailSender) SendMail(ctx context.Context, payload mail.Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}
	m.sentMails = append(m.sentMails, payload)
	return nil
}

func (m *MailSender) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

func (m *MailSender) SentMails() []mail.Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Payload{}, m.sentMails...)
}

func (m *MailSender) AssertMailSent(t *testing.T, email, subject string) {
	t.Helper()
	for _, sent := range m.SentMails() {
		if sent.To == email && strings.Contains(sent.Subject, subject) {
			return
		}
	}
	t.Errorf("expected mail to %s with subject containing %q, sent: %v", email, subject, m.SentMails())
}

func (m *MailSender) AssertNoMailSent(t *testing.T) {
	t.Helper()
	if sent := m.SentMails(); len(sent) != 0 {
		t.Errorf("expected no mails sent, got %d", len(sent))
	}
}
