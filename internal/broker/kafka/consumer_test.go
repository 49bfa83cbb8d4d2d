package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/BearBump/RollOff/internal/broker/messages"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	msgs      []kafka.Message
	err       error
	i         int
	committed []kafka.Message
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if r.i < len(r.msgs) {
		m := r.msgs[r.i]
		r.i++
		return m, nil
	}
	if r.err != nil {
		return kafka.Message{}, r.err
	}
	return kafka.Message{}, errors.New("eof")
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error { return nil }

func TestConsumer_Consume_CallsHandlerAndCommits(t *testing.T) {
	fr := &fakeReader{
		msgs: []kafka.Message{
			{Key: []byte("CNT-1"), Value: []byte("a")},
			{Key: []byte("CNT-2"), Value: []byte("b")},
		},
		err: errors.New("stop"),
	}
	c := newConsumerWithReader(fr)

	var keys []string
	err := c.Consume(context.Background(), func(k, v []byte) error {
		keys = append(keys, string(k))
		return nil
	})
	require.ErrorContains(t, err, "fetch message")
	require.Equal(t, []string{"CNT-1", "CNT-2"}, keys)
	require.Len(t, fr.committed, 2)
}

func TestConsumer_Consume_HandlerErrorStopsWithoutCommit(t *testing.T) {
	fr := &fakeReader{msgs: []kafka.Message{{Key: []byte("k"), Value: []byte("v")}}}
	c := newConsumerWithReader(fr)

	want := errors.New("handler failed")
	err := c.Consume(context.Background(), func(k, v []byte) error { return want })
	require.ErrorIs(t, err, want)
	require.Empty(t, fr.committed)
}

func TestNewConsumer_Close(t *testing.T) {
	c := NewConsumer([]string{"localhost:0"}, "rolloff.changes", "rolloff-api")
	require.NotNil(t, c)
	require.NoError(t, c.Close())
}

func TestConsumer_ConsumeChanges_SkipsMalformedAndCommits(t *testing.T) {
	ev := messages.NewRecordChanged(messages.ResourceContainer, messages.OpUpdated, "CNT-1", time.Now())
	good, err := json.Marshal(ev)
	require.NoError(t, err)

	fr := &fakeReader{
		msgs: []kafka.Message{
			{Key: []byte("x"), Value: []byte("not json")},
			{Key: []byte("y"), Value: []byte(`{"record_id":"CNT-2"}`)},
			{Key: []byte("CNT-1"), Value: good},
		},
		err: errors.New("stop"),
	}
	c := newConsumerWithReader(fr)

	var got []messages.RecordChanged
	err = c.ConsumeChanges(context.Background(), func(_ context.Context, ev messages.RecordChanged) error {
		got = append(got, ev)
		return nil
	})
	require.ErrorContains(t, err, "fetch message")
	require.Len(t, got, 1)
	require.Equal(t, ev.EventID, got[0].EventID)
	require.Equal(t, messages.ResourceContainer, got[0].Resource)
	require.Len(t, fr.committed, 3)
}

func TestConsumer_ConsumeChanges_ApplyErrorStops(t *testing.T) {
	b, err := json.Marshal(messages.NewRecordChanged(messages.ResourceCustomer, messages.OpDeleted, "7", time.Now()))
	require.NoError(t, err)
	fr := &fakeReader{msgs: []kafka.Message{{Key: []byte("7"), Value: b}}}
	c := newConsumerWithReader(fr)

	want := errors.New("redis down")
	err = c.ConsumeChanges(context.Background(), func(context.Context, messages.RecordChanged) error { return want })
	require.ErrorIs(t, err, want)
	require.Empty(t, fr.committed)
}

func TestConsumer_Consume_ReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newConsumerWithReader(&fakeReader{err: context.Canceled})

	err := c.Consume(ctx, func(k, v []byte) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}
