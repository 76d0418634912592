package xkafka

import (
	"context"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xmdc/internal/mqcore"
	"github.com/omeyang/xmdc/pkg/context/xmdc"
)

func TestInjectHeaders_NilMessage(t *testing.T) {
	assert.ErrorIs(t, InjectHeaders(context.Background(), nil, nil), ErrNilMessage)
}

func TestInjectHeaders_OverwritesExisting(t *testing.T) {
	name := xmdc.HeaderName("order")
	msg := &kafka.Message{Headers: []kafka.Header{
		{Key: name, Value: []byte("stale")},
		{Key: "other", Value: []byte("kept")},
	}}
	ctx := xmdc.Put(context.Background(), xmdc.NewWithKey("order", map[string]string{"orderId": "o-1"}))

	require.NoError(t, InjectHeaders(ctx, mqcore.CarrierPropagator{}, msg))
	require.Len(t, msg.Headers, 2)

	h := headersToMap(msg.Headers)
	assert.Equal(t, "kept", h["other"])
	assert.NotEqual(t, "stale", h[name])
}

func TestHeaders_RoundTrip(t *testing.T) {
	ctx := xmdc.Put(context.Background(),
		xmdc.NewWithKey("order", map[string]string{"orderId": "o-1"}),
		xmdc.NewWithKey("user", map[string]string{"userId": "u 1"}),
	)
	msg := &kafka.Message{}
	require.NoError(t, InjectHeaders(ctx, nil, msg))

	got := ExtractHeaders(context.Background(), nil, msg)
	v, _ := xmdc.Read(got, "order").Get("orderId")
	assert.Equal(t, "o-1", v)
	v, _ = xmdc.Read(got, "user").Get("userId")
	assert.Equal(t, "u 1", v)
}

func TestExtractHeaders_NilInputs(t *testing.T) {
	var nilCtx context.Context
	assert.NotNil(t, ExtractHeaders(nilCtx, nil, nil))

	base := context.Background()
	assert.Equal(t, base, ExtractHeaders(base, mqcore.NoopPropagator{}, &kafka.Message{}))
}

func TestHeadersToMap_LastWins(t *testing.T) {
	h := headersToMap([]kafka.Header{
		{Key: "a", Value: []byte("1")},
		{Key: "a", Value: []byte("2")},
	})
	assert.Equal(t, map[string]string{"a": "2"}, h)
	assert.Empty(t, headersToMap(nil))
}

func TestTopicOf(t *testing.T) {
	topic := "orders"
	assert.Equal(t, "orders", topicOf(&kafka.Message{TopicPartition: kafka.TopicPartition{Topic: &topic}}))
	assert.Empty(t, topicOf(&kafka.Message{}))
	assert.Empty(t, topicOf(nil))
}
