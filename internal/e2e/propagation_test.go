//go:build e2e

package e2e

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xmdc/pkg/context/xmdc"
	"github.com/omeyang/xmdc/pkg/context/xpropagate"
	"github.com/omeyang/xmdc/pkg/lifecycle/xsched"
	"github.com/omeyang/xmdc/pkg/mq/xkafka"
	"github.com/omeyang/xmdc/pkg/observability/xlog"
	"github.com/omeyang/xmdc/pkg/observability/xmdclog"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) records(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(b.buf.Bytes()))
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		out = append(out, rec)
	}
	return out
}

// TestHTTPToKafkaToLog 请求头中的载体经 HTTP 中间件、Kafka 消息头到达消费侧日志
func TestHTTPToKafkaToLog(t *testing.T) {
	var out syncBuffer
	backend, cleanup, err := xlog.New().SetOutput(&out).SetFormat("json").Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	pool, err := xsched.NewPool(4, 64)
	require.NoError(t, err)
	logger, err := xmdclog.New(
		xmdclog.WithContextKey("order"),
		xmdclog.WithScheduler(pool),
		xmdclog.WithBackend(backend),
	)
	require.NoError(t, err)
	defer func() {
		_ = logger.Close()
		_ = pool.Close()
	}()

	// HTTP 服务把请求转成 Kafka 消息
	var (
		mu   sync.Mutex
		sent []*kafka.Message
	)
	srv := httptest.NewServer(xpropagate.HTTPMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		msg := &kafka.Message{Value: []byte("payload")}
		if err := xkafka.InjectHeaders(r.Context(), nil, msg); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = logger.Info(r.Context(), "order accepted")
		mu.Lock()
		sent = append(sent, msg)
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	})))
	defer srv.Close()

	const clients = 20
	var wg sync.WaitGroup
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := xmdc.Put(context.Background(), xmdc.NewWithKey("order", map[string]string{
				"orderId": "o-" + string(rune('a'+i)),
			}))
			client := &http.Client{Transport: xpropagate.Transport(nil)}
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL, nil)
			if err != nil {
				t.Error(err)
				return
			}
			resp, err := client.Do(req)
			if err != nil {
				t.Error(err)
				return
			}
			_ = resp.Body.Close()
		}(i)
	}
	wg.Wait()

	mu.Lock()
	require.Len(t, sent, clients)
	msgs := append([]*kafka.Message(nil), sent...)
	mu.Unlock()

	handle := xkafka.Propagate(func(ctx context.Context, _ *kafka.Message) error {
		return logger.Info(ctx, "order consumed")
	}, xkafka.WithRestorer(logger.Restorer()))
	for _, msg := range msgs {
		require.NoError(t, handle(context.Background(), msg))
	}

	accepted := map[string]int{}
	consumed := map[string]int{}
	for _, rec := range out.records(t) {
		id, _ := rec["orderId"].(string)
		require.NotEmpty(t, id, "record without orderId: %v", rec)
		switch rec["msg"] {
		case "order accepted":
			accepted[id]++
		case "order consumed":
			consumed[id]++
		}
	}
	assert.Len(t, accepted, clients)
	assert.Equal(t, accepted, consumed)
}
