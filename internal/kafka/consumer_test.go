package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"adboard/internal/kafka"
	"adboard/internal/mocks"

	"github.com/golang/mock/gomock"
	kgo "github.com/segmentio/kafka-go"
	"go.uber.org/zap/zaptest"
)

// fakeReader отдает сначала messages, потом errors, потом context.Canceled
type fakeReader struct {
	messages  []kgo.Message
	errors    []error
	idx       int
	committed []int64
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kgo.Message, error) {
	if f.idx < len(f.messages) {
		msg := f.messages[f.idx]
		f.idx++
		return msg, nil
	}
	errIdx := f.idx - len(f.messages)
	if errIdx < len(f.errors) {
		f.idx++
		return kgo.Message{}, f.errors[errIdx]
	}
	return kgo.Message{}, context.Canceled
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kgo.Message) error {
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeReader) Close() error {
	return nil
}

func encodeEvent(t *testing.T, evt kafka.Event, offset int64) kgo.Message {
	t.Helper()
	payload, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return kgo.Message{Value: payload, Offset: offset}
}

func newConsumer(t *testing.T, r kafka.ReaderInterface) *kafka.Consumer {
	return &kafka.Consumer{
		Reader:     r,
		Logger:     zaptest.NewLogger(t).Sugar(),
		RetryDelay: time.Millisecond,
	}
}

func TestConsumer_Consume_ValidEvent(t *testing.T) {
	evt := kafka.NewEvent(kafka.AdDeleted, 9, 4, 2)
	fr := &fakeReader{messages: []kgo.Message{encodeEvent(t, evt, 11)}}

	var received []kafka.Event
	newConsumer(t, fr).Consume(context.Background(), func(ctx context.Context, e kafka.Event) error {
		received = append(received, e)
		return nil
	})

	if len(received) != 1 {
		t.Fatalf("ожидали 1 событие, получили %d", len(received))
	}
	if received[0].AdID != 9 || received[0].CategoryID != 2 || received[0].Type != kafka.AdDeleted {
		t.Errorf("неожиданное событие: %+v", received[0])
	}
	if len(fr.committed) != 1 || fr.committed[0] != 11 {
		t.Errorf("ожидали коммит offset 11, получили %v", fr.committed)
	}
}

func TestConsumer_Consume_SkipsBrokenMessages(t *testing.T) {
	// битый JSON коммитится и пропускается, ошибка чтения не останавливает цикл
	fr := &fakeReader{
		messages: []kgo.Message{
			{Value: []byte(`{"ad_id": 1, bad json`), Offset: 1},
			encodeEvent(t, kafka.NewEvent(kafka.AdViewed, 2, 0, 1), 2),
		},
		errors: []error{errors.New("broker unavailable")},
	}

	var ids []int64
	newConsumer(t, fr).Consume(context.Background(), func(ctx context.Context, e kafka.Event) error {
		ids = append(ids, e.AdID)
		return nil
	})

	if len(ids) != 1 || ids[0] != 2 {
		t.Errorf("ожидали только событие по объявлению 2, получили %v", ids)
	}
	if len(fr.committed) != 2 {
		t.Errorf("ожидали 2 коммита, получили %v", fr.committed)
	}
}

func TestConsumer_Consume_HandlerErrorStillCommits(t *testing.T) {
	fr := &fakeReader{
		messages: []kgo.Message{
			encodeEvent(t, kafka.NewEvent(kafka.AdViewed, 1, 0, 7), 5),
			encodeEvent(t, kafka.NewEvent(kafka.AdViewed, 2, 0, 7), 6),
		},
	}

	calls := 0
	newConsumer(t, fr).Consume(context.Background(), func(ctx context.Context, e kafka.Event) error {
		calls++
		return errors.New("simulated handler failure")
	})

	if calls != 2 {
		t.Errorf("ожидали 2 вызова handler, получили %d", calls)
	}
	if len(fr.committed) != 2 {
		t.Errorf("ожидали коммит обоих сообщений, получили %v", fr.committed)
	}
}

func TestConsumer_Consume_StopsOnCancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := mocks.NewMockReaderInterface(ctrl)
	r.EXPECT().FetchMessage(gomock.Any()).Return(kgo.Message{}, context.DeadlineExceeded)
	r.EXPECT().Close().Return(nil)

	consumer := newConsumer(t, r)
	consumer.Consume(ctx, func(ctx context.Context, e kafka.Event) error {
		t.Error("handler не должен вызываться")
		return nil
	})

	if err := consumer.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConsumer_Consume_StopsWhileWaitingRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	r := mocks.NewMockReaderInterface(ctrl)
	r.EXPECT().FetchMessage(gomock.Any()).Return(kgo.Message{}, errors.New("broker down"))

	consumer := newConsumer(t, r)
	consumer.RetryDelay = time.Hour

	done := make(chan struct{})
	go func() {
		consumer.Consume(ctx, func(ctx context.Context, e kafka.Event) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Consume не вернулся после отмены контекста")
	}
}
