package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"restaurant-ordering/notify-svc/internal/domain"
	"restaurant-ordering/notify-svc/internal/mocks"
	"restaurant-ordering/notify-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeReader replays messages then cancels the consumer context.
type fakeReader struct {
	messages []kafka.Message
	cancel   context.CancelFunc
}

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(f.messages) == 0 {
		f.cancel()
		return kafka.Message{}, ctx.Err()
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return msg, nil
}

func TestConsumer_Start(t *testing.T) {
	note := domain.Notification{Type: domain.TypeNewsletterWelcome, Payload: json.RawMessage(`{"email":"ana@example.com"}`)}
	value, err := json.Marshal(note)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{
		cancel: cancel,
		messages: []kafka.Message{
			{Value: []byte(`not json`)},
			{Value: value},
			{Value: value},
		},
	}

	notifier := mocks.NewNotifierInterface(t)
	notifier.On("Dispatch", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Type == domain.TypeNewsletterWelcome
	})).Return("", errors.New("provider down")).Once()
	notifier.On("Dispatch", mock.Anything, mock.Anything).Return("msg-1", nil).Once()

	consumer := service.NewConsumer(reader, notifier, nullLog())
	consumer.Start(ctx)
}
