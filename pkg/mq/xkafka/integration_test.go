//go:build integration

package xkafka_test

import (
	"context"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	kafkaContainer "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/omeyang/xmdc/pkg/context/xlocal"
	"github.com/omeyang/xmdc/pkg/context/xmdc"
	"github.com/omeyang/xmdc/pkg/lifecycle/xsched"
	"github.com/omeyang/xmdc/pkg/mq/xkafka"
	"github.com/omeyang/xmdc/pkg/observability/xmdclog"
)

// setupKafka 启动 Kafka 容器并返回 bootstrap servers。
func setupKafka(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := kafkaContainer.Run(ctx,
		"confluentinc/cp-kafka:7.5.0",
		kafkaContainer.WithClusterID("test-cluster"),
	)
	require.NoError(t, err, "failed to start kafka container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "failed to get kafka brokers")
	require.NotEmpty(t, brokers, "no brokers available")
	return brokers[0]
}

// createTopic 创建测试主题。
func createTopic(t *testing.T, brokers, topic string) {
	t.Helper()

	adminClient, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
	})
	require.NoError(t, err, "failed to create admin client")
	defer adminClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := adminClient.CreateTopics(ctx, []kafka.TopicSpecification{
		{Topic: topic, NumPartitions: 1, ReplicationFactor: 1},
	})
	require.NoError(t, err, "failed to create topic")
	require.Len(t, results, 1)
	if results[0].Error.Code() != kafka.ErrNoError && results[0].Error.Code() != kafka.ErrTopicAlreadyExists {
		t.Fatalf("failed to create topic: %v", results[0].Error)
	}
}

func TestIntegration_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	brokers := setupKafka(t)
	topic := "xmdc-roundtrip"
	createTopic(t, brokers, topic)

	producer, err := kafka.NewProducer(&kafka.ConfigMap{"bootstrap.servers": brokers})
	require.NoError(t, err)
	defer producer.Close()

	ctx := xmdc.Put(context.Background(),
		xmdc.NewWithKey("order", map[string]string{"orderId": "o-42"}),
	)
	delivery := make(chan kafka.Event, 1)
	err = xkafka.Produce(ctx, producer, &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          []byte("payload"),
	}, delivery)
	require.NoError(t, err)

	select {
	case ev := <-delivery:
		m, ok := ev.(*kafka.Message)
		require.True(t, ok)
		require.NoError(t, m.TopicPartition.Error)
	case <-time.After(30 * time.Second):
		t.Fatal("delivery report timed out")
	}

	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"group.id":          "xmdc-roundtrip",
		"auto.offset.reset": "earliest",
	})
	require.NoError(t, err)
	defer consumer.Close()
	require.NoError(t, consumer.SubscribeTopics([]string{topic}, nil))

	pool, err := xsched.NewPool(2, 8)
	require.NoError(t, err)
	defer pool.Close()
	r, err := xmdclog.NewRestorer(pool, "order")
	require.NoError(t, err)

	var got string
	handle := xkafka.Propagate(func(ctx context.Context, _ *kafka.Message) error {
		store, _ := xlocal.FromContext(ctx)
		got, _ = store.Get("orderId")
		return nil
	}, xkafka.WithRestorer(r))

	msg, err := consumer.ReadMessage(30 * time.Second)
	require.NoError(t, err)
	require.NoError(t, handle(context.Background(), msg))
	assert.Equal(t, "o-42", got)
}
