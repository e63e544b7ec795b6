package mocks

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/redacok/redacok-backend/internal/domain/valueobject/sms"
)

type SMSSender struct {
	mu       sync.Mutex
	sent     []sms.Message
	failWith error
}

func NewSMSSender() *SMSSender {
	return &SMSSender{sent: make([]sms.Message, 0)}
}

func (m *SMSSender) SendSMS(ctx context.Context, msg sms.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *SMSSender) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

func (m *SMSSender) SentMessages() []sms.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sms.Message{}, m.sent...)
}

func (m *SMSSender) AssertSMSSent(t *testing.T, phone, bodyPart string) {
	t.Helper()
	for _, msg := range m.SentMessages() {
		if msg.To == phone && strings.Contains(msg.Body, bodyPart) {
			return
		}
	}
	t.Errorf("expected sms to %s containing %q, sent: %v", phone, bodyPart, m.SentMessages())
}

func (m *SMSSender) AssertNoSMSSent(t *testing.T) {
	t.Helper()
	if sent := m.SentMessages(); len(sent) != 0 {
		t.Errorf("expected no sms sent, got %d", len(sent))
	}
}
