package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const eventTypeHeader = "event_type"

type Producer struct {
	Writer WriterInterface
	Logger *zap.SugaredLogger
}

func NewProducer(brokers []string, topic string, logger *zap.SugaredLogger) *Producer {
	return &Producer{
		Writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           50 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		Logger: logger,
	}
}

// SendEvent пишет событие в топик. Ключ - id объявления,
// так события одного объявления попадают в одну партицию и не переупорядочиваются
func (p *Producer) SendEvent(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.AdID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(event.Type)},
		},
		Time: event.Timestamp,
	}

	if err = p.Writer.WriteMessages(ctx, msg); err != nil {
		p.Logger.Errorw("Failed to write kafka message",
			"event", event.Type,
			"ad_id", event.AdID,
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
