package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/logger"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func newTestProducer(w *recordingWriter) *Producer {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProducer(pkgkafka.NewProducerWithWriter(w, nil, log), log)
}

func decode(t *testing.T, msg kafka.Message, data any) *pkgkafka.Event {
	t.Helper()
	ev, err := pkgkafka.DecodeEvent(msg.Value)
	require.NoError(t, err)
	require.NoError(t, ev.DecodeData(data))
	return ev
}

func TestPublishCartUpdated(t *testing.T) {
	w := &recordingWriter{}
	p := newTestProducer(w)
	lines := []domain.CartLine{
		{Product: domain.Product{ID: "a", Name: "A", Price: 1000}, Quantity: 2},
		{Product: domain.Product{ID: "b", Name: "B", Price: 250}, Quantity: 1},
	}

	ctx := logger.WithCorrelationID(context.Background(), "corr-1")
	require.NoError(t, p.PublishCartUpdated(ctx, "sess-1", lines, "USD"))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, TopicCartUpdated, msg.Topic)
	assert.Equal(t, "sess-1", string(msg.Key))

	var data CartUpdatedData
	ev := decode(t, msg, &data)
	assert.Equal(t, SourceStorefront, ev.Source)
	assert.Equal(t, AggregateTypeCart, ev.AggregateType)
	assert.Equal(t, "corr-1", ev.CorrelationID)
	assert.Equal(t, 3, data.TotalItems)
	assert.Equal(t, int64(2250), data.TotalPrice)
	assert.Equal(t, "USD", data.Currency)
	require.Len(t, data.Items, 2)
	assert.Equal(t, "a", data.Items[0].ProductID)
}

func TestPublishWishlistUpdated(t *testing.T) {
	w := &recordingWriter{}
	p := newTestProducer(w)
	entries := []domain.WishlistEntry{{Product: domain.Product{ID: "x"}}, {Product: domain.Product{ID: "y"}}}

	require.NoError(t, p.PublishWishlistUpdated(context.Background(), "sess-2", entries))

	require.Len(t, w.msgs, 1)
	var data WishlistUpdatedData
	decode(t, w.msgs[0], &data)
	assert.Equal(t, []string{"x", "y"}, data.ProductIDs)
	assert.Equal(t, 2, data.TotalItems)
}

func TestPublishCleared(t *testing.T) {
	w := &recordingWriter{}
	p := newTestProducer(w)

	require.NoError(t, p.PublishCartCleared(context.Background(), "s"))
	require.NoError(t, p.PublishWishlistCleared(context.Background(), "s"))

	require.Len(t, w.msgs, 2)
	assert.Equal(t, TopicCartCleared, w.msgs[0].Topic)
	assert.Equal(t, TopicWishlistCleared, w.msgs[1].Topic)

	var raw map[string]any
	ev, err := pkgkafka.DecodeEvent(w.msgs[1].Value)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(ev.Data, &raw))
	assert.Equal(t, "s", raw["session_id"])
}

func TestPublish_WriterError(t *testing.T) {
	p := newTestProducer(&recordingWriter{err: errors.New("broker down")})

	err := p.PublishCartCleared(context.Background(), "s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), TopicCartCleared)
}

func TestNoop(t *testing.T) {
	var n Noop
	assert.NoError(t, n.PublishCartUpdated(context.Background(), "s", nil, "USD"))
	assert.NoError(t, n.PublishWishlistCleared(context.Background(), "s"))
}
