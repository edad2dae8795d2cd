package storage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant-ordering/notify-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestSMTPMailer_Send(t *testing.T) {
	sender := &fakeSender{}
	mailer := &SMTPMailer{Sender: sender, From: "orders@trattoria.test", Domain: "trattoria.test"}

	id, err := mailer.Send(context.Background(), domain.Email{To: "ana@example.com", Subject: "Hi", HTML: "<p>hi</p>"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(id, "@trattoria.test>"))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"ana@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Hi"}, msg.GetHeader("Subject"))
	assert.Equal(t, []string{id}, msg.GetHeader("Message-Id"))
}

func TestSMTPMailer_SendError(t *testing.T) {
	mailer := &SMTPMailer{Sender: &fakeSender{err: errors.New("connection refused")}, Domain: "x"}

	_, err := mailer.Send(context.Background(), domain.Email{To: "ana@example.com"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestAPIMailer_Send(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		response    string
		expectedID  string
		expectedErr bool
	}{
		{
			name:       "accepted",
			status:     http.StatusOK,
			response:   `{"id":"re_123"}`,
			expectedID: "re_123",
		},
		{
			name:        "rejected",
			status:      http.StatusUnprocessableEntity,
			response:    `{"message":"invalid from"}`,
			expectedErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var got apiEmail
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/emails", r.URL.Path)
				assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
				json.NewDecoder(r.Body).Decode(&got)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(testCase.status)
				w.Write([]byte(testCase.response))
			}))
			defer server.Close()

			mailer := NewAPIMailer(server.URL, "key", "Trattoria <orders@trattoria.test>")
			id, err := mailer.Send(context.Background(), domain.Email{To: "ana@example.com", Subject: "Hi", HTML: "<p>hi</p>"})

			assert.Equal(t, []string{"ana@example.com"}, got.To)
			assert.Equal(t, "Trattoria <orders@trattoria.test>", got.From)
			if testCase.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expectedID, id)
		})
	}
}
