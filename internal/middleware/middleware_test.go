package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failWith(err error) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, err
	}
}

func succeed(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
	return connect.NewResponse(&struct{}{}), nil
}

func TestLoggingInterceptor_Levels(t *testing.T) {
	tests := []struct {
		name      string
		next      connect.UnaryFunc
		wantLevel string
	}{
		{"success", succeed, "INFO"},
		{"client error", failWith(connect.NewError(connect.CodeInvalidArgument, errors.New("bad amount"))), "WARN"},
		{"internal connect error", failWith(connect.NewError(connect.CodeInternal, errors.New("boom"))), "ERROR"},
		{"plain error", failWith(errors.New("boom")), "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			_, _ = LoggingInterceptor(logger)(tt.next)(context.Background(), connect.NewRequest(&struct{}{}))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Contains(t, entry, "duration_ms")
		})
	}
}

func TestMetrics_Interceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	interceptor := m.Interceptor()
	ctx := context.Background()

	_, err := interceptor(succeed)(ctx, connect.NewRequest(&struct{}{}))
	require.NoError(t, err)
	_, err = interceptor(failWith(connect.NewError(connect.CodeNotFound, errors.New("missing"))))(ctx, connect.NewRequest(&struct{}{}))
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("", "not_found")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestMetrics_ObserveSettlement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveSettlement(2)
	m.ObserveSettlement(0)

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "tripbudget_settlement_instructions" {
			assert.Equal(t, uint64(2), mf.GetMetric()[0].GetHistogram().GetSampleCount())
			return
		}
	}
	t.Fatal("settlement histogram not registered")
}
