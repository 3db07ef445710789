package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/shaharia-lab/todo/internal/eventbus"
)

type stubProvider struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func purgedEvent(count string) eventbus.Event {
	return eventbus.Event{
		Type:      EventTodoPurged,
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Payload:   map[string]string{"count": count},
	}
}

func TestHandle_SendsReport(t *testing.T) {
	p := &stubProvider{}
	NewHandler(p, nil).Handle(purgedEvent("3"))

	require.Len(t, p.sent, 1)
	assert.Equal(t, "Todo - Completed todos purged", p.sent[0].Subject)
	assert.Contains(t, p.sent[0].Body, "3 completed todos")
	assert.Contains(t, p.sent[0].Body, "2026-01-02T03:04:05Z")
}

func TestHandle_ProviderErrorDoesNotPanic(t *testing.T) {
	p := &stubProvider{err: errors.New("smtp down")}
	assert.NotPanics(t, func() {
		NewHandler(p, nil).Handle(purgedEvent("1"))
	})
	assert.Empty(t, p.sent)
}

func TestListener_IgnoresOtherEvents(t *testing.T) {
	p := &stubProvider{}
	l := NewHandler(p, nil).Listener()

	l(eventbus.Event{Type: "todo.created", Payload: map[string]string{"id": "x"}})
	assert.Empty(t, p.sent)

	l(purgedEvent("2"))
	assert.Len(t, p.sent, 1)
}

func TestSMTPConfig_Enabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  SMTPConfig
		want bool
	}{
		{"empty", SMTPConfig{}, false},
		{"no recipients", SMTPConfig{Host: "smtp", FromAddr: "a@example.com", ToAddrs: " , "}, false},
		{"no from", SMTPConfig{Host: "smtp", ToAddrs: "b@example.com"}, false},
		{"complete", SMTPConfig{Host: "smtp", FromAddr: "a@example.com", ToAddrs: "b@example.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Enabled())
		})
	}
}

func TestSMTPProvider_BuildMsg(t *testing.T) {
	p := NewSMTPProvider(SMTPConfig{
		Host:     "smtp.example.com",
		FromAddr: "todo@example.com",
		ToAddrs:  "a@example.com, b@example.com",
	})
	m, err := p.buildMsg(Message{Subject: "s", Body: "b"})
	require.NoError(t, err)
	assert.Len(t, m.GetTo(), 2)
}

func TestSMTPProvider_BuildMsgInvalidFrom(t *testing.T) {
	p := NewSMTPProvider(SMTPConfig{FromAddr: "not an address", ToAddrs: "a@example.com"})
	_, err := p.buildMsg(Message{})
	assert.Error(t, err)
}

func TestTLSPolicyFromEncryption(t *testing.T) {
	assert.Equal(t, mail.TLSMandatory, tlsPolicyFromEncryption("ssl_tls"))
	assert.Equal(t, mail.TLSOpportunistic, tlsPolicyFromEncryption("starttls"))
	assert.Equal(t, mail.NoTLS, tlsPolicyFromEncryption(""))
}
