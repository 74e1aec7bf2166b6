package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_WatchEntries(t *testing.T) {
	r := NewRegistry()
	size := 3
	r.WatchEntries(func() int { return size })

	const expected = `
# HELP tracking_store_entries Entries currently held by the dedup store.
# TYPE tracking_store_entries gauge
tracking_store_entries 3
`
	require.NoError(t, testutil.GatherAndCompare(r.reg, strings.NewReader(expected), "tracking_store_entries"))

	size = 5
	require.NoError(t, testutil.GatherAndCompare(r.reg, strings.NewReader(strings.Replace(expected, " 3\n", " 5\n", 1)), "tracking_store_entries"))
}

func TestRegistry_Counters(t *testing.T) {
	r := NewRegistry()
	r.Stored.Inc()
	r.Stored.Inc()
	r.Overwritten.Inc()
	r.GenerateLatency.Observe(0.001)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Stored))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Overwritten))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.PublishFailures))
	assert.Equal(t, 1, testutil.CollectAndCount(r.GenerateLatency))
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.WatchEntries(func() int { return 0 })

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# TYPE tracking_store_writes_total counter")
	assert.Contains(t, rec.Body.String(), "tracking_store_entries 0")
}
