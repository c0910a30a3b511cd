package services_test

import (
	"context"
	"fmt"
	"testing"

	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMailer captures the last message handed to it.
type recordingMailer struct {
	from    string
	to      string
	subject string
	body    string
	err     error
	calls   int
}

func (m *recordingMailer) Send(ctx context.Context, from, to, subject, body string) error {
	m.calls++
	m.from = from
	m.to = to
	m.subject = subject
	m.body = body
	return m.err
}

func TestContactService_SendMessage(t *testing.T) {
	m := &recordingMailer{}
	service := services.NewContactService(m, "noreply@shop.example", "owner@shop.example")

	err := service.SendMessage(context.Background(), "Jordan", "jordan@example.com", "Do you ship overseas?")
	require.NoError(t, err)

	assert.Equal(t, 1, m.calls)
	assert.Equal(t, "noreply@shop.example", m.from)
	assert.Equal(t, "owner@shop.example", m.to)
	assert.Equal(t, "Received contact form submission", m.subject)
	assert.Contains(t, m.body, "Jordan, jordan@example.com")
	assert.Contains(t, m.body, "Do you ship overseas?")
}

func TestContactService_SendMessageFailure(t *testing.T) {
	m := &recordingMailer{err: fmt.Errorf("relay unreachable")}
	service := services.NewContactService(m, "noreply@shop.example", "owner@shop.example")

	err := service.SendMessage(context.Background(), "Jordan", "jordan@example.com", "Hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "relay unreachable")
}
