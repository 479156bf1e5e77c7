// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	mu.Lock()
	service = noopService{}
	mu.Unlock()
}

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := current().(*promService).registry.Gather()
	require.NoError(t, err)
	m := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		m[mf.GetName()] = mf
	}
	return m
}

func TestNoop(t *testing.T) {
	reset()
	for _, m := range []any{
		Counter("c"),
		CounterVec("cv", nil),
		Gauge("g"),
		Histogram("h", nil),
		HistogramVec("hv", nil, nil),
	} {
		assert.IsType(t, noopMeter{}, m)
	}
	assert.Nil(t, HTTPHandler())
}

func TestPrometheus(t *testing.T) {
	reset()
	Enable()
	defer reset()

	Counter("ops").Add(2)
	Counter("ops").Add(3)
	vec := CounterVec("ops_by_status", []string{"status"})
	vec.AddWithLabel(1, map[string]string{"status": "ok"})
	vec.AddWithLabel(4, map[string]string{"status": "revert"})
	Gauge("slashed").Set(7)
	Gauge("slashed").Add(-2)
	Histogram("duration", BucketOps).Observe(15)
	HistogramVec("duration_by_op", []string{"op"}, BucketOps).ObserveWithLabels(3, map[string]string{"op": "sign"})

	families := gather(t)
	assert.Equal(t, float64(5), families["warden_ops"].Metric[0].GetCounter().GetValue())
	var total float64
	for _, m := range families["warden_ops_by_status"].Metric {
		total += m.GetCounter().GetValue()
	}
	assert.Equal(t, float64(5), total)
	assert.Equal(t, float64(5), families["warden_slashed"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, float64(15), families["warden_duration"].Metric[0].GetHistogram().GetSampleSum())
	assert.Equal(t, uint64(1), families["warden_duration_by_op"].Metric[0].GetHistogram().GetSampleCount())

	rec := httptest.NewRecorder()
	HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "warden_ops 5"))
}

func TestLazyLoad(t *testing.T) {
	reset()
	defer reset()

	lazyCounter := LazyLoadCounter("lazy_counter")
	lazyGauge := LazyLoadGauge("lazy_gauge")
	lazyVec := LazyLoadCounterVec("lazy_counter_vec", []string{"x"})
	lazyHist := LazyLoadHistogram("lazy_hist", nil)
	lazyHistVec := LazyLoadHistogramVec("lazy_hist_vec", []string{"x"}, nil)

	// meters defined before Enable pick up the prometheus service
	Enable()
	require.IsType(t, &promCounter{}, lazyCounter())
	require.IsType(t, &promGauge{}, lazyGauge())
	require.IsType(t, &promCounterVec{}, lazyVec())
	require.IsType(t, &promHistogram{}, lazyHist())
	require.IsType(t, &promHistogramVec{}, lazyHistVec())

	// and keep returning the same meter
	assert.Same(t, lazyCounter(), lazyCounter())
}
