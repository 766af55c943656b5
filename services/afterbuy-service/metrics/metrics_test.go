package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.AddSyncOrders(StageFetched, 3)
	m.AddSyncOrders(StageStored, 2)
	m.AddSyncOrders(StageStored, 0)
	m.IncSyncRun("success")
	m.IncUpstreamCall("GetSoldItems", "ok")
	m.IncUpstreamCall("GetSoldItems", "ok")

	assert.Equal(t, 3.0, testutil.ToFloat64(m.syncOrders.WithLabelValues(StageFetched)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.syncOrders.WithLabelValues(StageStored)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.syncRuns.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("GetSoldItems", "ok")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.AddSyncOrders(StageFetched, 1)
		m.IncSyncRun("success")
		m.IncUpstreamCall("GetSoldItems", "ok")
		m.ObserveHTTP(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveHTTP(http.MethodGet, "/api/v1/sold-items", http.StatusOK, 20*time.Millisecond)

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `afterbuy_http_requests_total{method="GET",route="/api/v1/sold-items",status="200"} 1`)
	assert.Contains(t, string(body), "afterbuy_http_request_duration_seconds_bucket")
	assert.Contains(t, string(body), "go_goroutines")
}
