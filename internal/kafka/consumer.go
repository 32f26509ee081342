package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	kgo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const defaultRetryDelay = time.Second

// Consumer читает события группой и коммитит offset только после обработки.
// Ошибка обработчика логируется и сообщение все равно коммитится,
// иначе одно плохое событие навсегда застопорит партицию.
type Consumer struct {
	Reader     ReaderInterface
	Logger     *zap.SugaredLogger
	RetryDelay time.Duration
}

func NewConsumer(brokers []string, topic, groupID string, logger *zap.SugaredLogger) *Consumer {
	return &Consumer{
		Reader: kgo.NewReader(kgo.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 10e3, // 10KB
			MaxBytes: 10e6, // 10MB
		}),
		Logger:     logger,
		RetryDelay: defaultRetryDelay,
	}
}

// Consume обрабатывает события, пока не отменят контекст или не закроют reader
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, Event) error) {
	for {
		msg, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			c.Logger.Errorf("Failed to fetch message: %v", err)
			if !c.wait(ctx) {
				return
			}
			continue
		}

		var event Event
		if err = json.Unmarshal(msg.Value, &event); err != nil {
			c.Logger.Errorw("Skipping malformed event",
				"partition", msg.Partition,
				"offset", msg.Offset,
				zap.Error(err),
			)
		} else if err = handler(ctx, event); err != nil {
			c.Logger.Errorf("Failed to process event %s for ad %d: %v", event.Type, event.AdID, err)
		}

		if err = c.Reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.Logger.Warnf("Failed to commit offset %d: %v", msg.Offset, err)
		}
	}
}

// wait - пауза перед повторным чтением; false, если за это время отменили контекст
func (c *Consumer) wait(ctx context.Context) bool {
	t := time.NewTimer(c.RetryDelay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) Close() error {
	return c.Reader.Close()
}
