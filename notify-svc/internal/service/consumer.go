package service

import (
	"context"
	"encoding/json"

	"restaurant-ordering/notify-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

// Consumer turns notifications from Kafka into emails. Failed sends are
// logged and dropped.
type Consumer struct {
	Reader   MessageReader
	Notifier NotifierInterface
	Log      *logrus.Entry
}

func NewConsumer(reader MessageReader, notifier NotifierInterface, log *logrus.Entry) *Consumer {
	return &Consumer{Reader: reader, Notifier: notifier, Log: log}
}

// Start blocks until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info("Starting notification consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.Log.Info("Notification consumer stopped")
				return
			}
			c.Log.WithError(err).Error("Error reading message")
			continue
		}

		var note domain.Notification
		if err := json.Unmarshal(message.Value, &note); err != nil {
			c.Log.WithError(err).WithField("offset", message.Offset).Error("Error unmarshaling message")
			continue
		}
		c.ProcessNotification(ctx, note)
	}
}

func (c *Consumer) ProcessNotification(ctx context.Context, note domain.Notification) {
	log := c.Log.WithField("type", note.Type)
	id, err := c.Notifier.Dispatch(ctx, note)
	if err != nil {
		log.WithError(err).Error("Failed to process notification")
		return
	}
	log.WithField("message_id", id).Info("Processed notification")
}
