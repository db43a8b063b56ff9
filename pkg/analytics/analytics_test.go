package analytics_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inappbrowser/pkg/analytics"
)

const ua = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) Instagram 250.0"

func TestNewEvent(t *testing.T) {
	e := analytics.NewEvent("", "Instagram", ua)
	assert.Equal(t, analytics.DefaultEventName, e.Name)
	assert.Equal(t, "Instagram", e.Browser)
	assert.Equal(t, ua, e.UserAgent)
	assert.False(t, e.Timestamp.IsZero())
	_, err := uuid.Parse(e.ID)
	require.NoError(t, err)

	other := analytics.NewEvent("custom", "Facebook", ua)
	assert.Equal(t, "custom", other.Name)
	assert.NotEqual(t, e.ID, other.ID)

	assert.Equal(t, map[string]string{"browser": "Instagram", "user_agent": ua}, e.Properties())
}

func TestLogSink(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := analytics.NewLogSink(slog.New(slog.NewJSONHandler(buf, nil)))

	require.NoError(t, sink.Track(context.Background(), analytics.NewEvent("", "TikTok", ua)))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "TikTok", entry["browser"])
	assert.Equal(t, analytics.DefaultEventName, entry["event"])
}

func TestHTTPSink(t *testing.T) {
	t.Run("posts json payload", func(t *testing.T) {
		var got map[string]any
		var apiKey string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			apiKey = r.Header.Get("X-Api-Key")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		e := analytics.NewEvent("", "Snapchat", ua)
		sink := analytics.NewHTTPSink(srv.URL, analytics.WithHeader("X-Api-Key", "secret"))
		require.NoError(t, sink.Track(context.Background(), e))

		assert.Equal(t, "secret", apiKey)
		assert.Equal(t, e.ID, got["id"])
		assert.Equal(t, analytics.DefaultEventName, got["event"])
		props, ok := got["properties"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Snapchat", props["browser"])
		assert.Equal(t, ua, props["user_agent"])
	})

	t.Run("error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		err := analytics.NewHTTPSink(srv.URL).Track(context.Background(), analytics.NewEvent("", "Line", ua))
		require.ErrorIs(t, err, analytics.ErrDeliveryFailed)
		assert.Contains(t, err.Error(), "502")
	})
}

type fakeStream struct {
	args *redis.XAddArgs
	err  error
}

func (f *fakeStream) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = a
	return redis.NewStringResult("1-0", f.err)
}

func TestRedisSink(t *testing.T) {
	t.Run("appends to stream", func(t *testing.T) {
		stream := &fakeStream{}
		e := analytics.NewEvent("", "WeChat", ua)

		require.NoError(t, analytics.NewRedisSink(stream, "inapp:events", 1000).Track(context.Background(), e))
		require.NotNil(t, stream.args)
		assert.Equal(t, "inapp:events", stream.args.Stream)
		assert.Equal(t, int64(1000), stream.args.MaxLen)
		assert.True(t, stream.args.Approx)

		values, ok := stream.args.Values.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, e.ID, values["id"])
		assert.Equal(t, "WeChat", values["browser"])
	})

	t.Run("uncapped stream", func(t *testing.T) {
		stream := &fakeStream{}
		require.NoError(t, analytics.NewRedisSink(stream, "s", 0).Track(context.Background(), analytics.NewEvent("", "Line", ua)))
		assert.Zero(t, stream.args.MaxLen)
		assert.False(t, stream.args.Approx)
	})

	t.Run("wraps redis errors", func(t *testing.T) {
		stream := &fakeStream{err: errors.New("connection refused")}
		err := analytics.NewRedisSink(stream, "s", 0).Track(context.Background(), analytics.NewEvent("", "Line", ua))
		require.ErrorIs(t, err, analytics.ErrDeliveryFailed)
	})
}

func TestMetricsSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := analytics.NewMetricsSink(reg)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sink.Track(ctx, analytics.NewEvent("", "Instagram", ua)))
	require.NoError(t, sink.Track(ctx, analytics.NewEvent("", "Instagram", ua)))
	require.NoError(t, sink.Track(ctx, analytics.NewEvent("", "Facebook", ua)))

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.Collector().WithLabelValues(analytics.DefaultEventName, "Instagram")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.Collector().WithLabelValues(analytics.DefaultEventName, "Facebook")))

	again, err := analytics.NewMetricsSink(reg)
	require.NoError(t, err)
	assert.Same(t, sink.Collector(), again.Collector())
}

func TestMulti(t *testing.T) {
	var calls []string
	ok := analytics.SinkFunc(func(_ context.Context, e analytics.Event) error {
		calls = append(calls, "ok:"+e.Browser)
		return nil
	})
	failing := analytics.SinkFunc(func(_ context.Context, _ analytics.Event) error {
		calls = append(calls, "failing")
		return analytics.ErrDeliveryFailed
	})

	err := analytics.Multi(failing, nil, ok).Track(context.Background(), analytics.NewEvent("", "Twitter", ua))
	require.ErrorIs(t, err, analytics.ErrDeliveryFailed)
	assert.Equal(t, []string{"failing", "ok:Twitter"}, calls)

	assert.NoError(t, analytics.Multi().Track(context.Background(), analytics.NewEvent("", "Twitter", ua)))
}
