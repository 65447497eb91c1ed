package internal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"net/http"
	"testing"
	"time"
)

func TestMetrics_RecordRequest(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.RecordRequest(paymentReturn, http.StatusOK, 20*time.Millisecond)
	metrics.RecordRequest(paymentReturn, http.StatusBadRequest, time.Millisecond)
	metrics.RecordRequest(paymentReturn, http.StatusBadRequest, time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requestsTotal.WithLabelValues(paymentReturn, "success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.requestsTotal.WithLabelValues(paymentReturn, "client_error")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.requestDuration))
}

func TestMetrics_Nil(t *testing.T) {
	var metrics *Metrics
	assert.NotPanics(t, func() {
		metrics.RecordRequest("/", http.StatusOK, time.Second)
		metrics.RecordPayment("signed")
		metrics.RecordCallback("success")
	})
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "success", statusLabel(http.StatusCreated))
	assert.Equal(t, "redirect", statusLabel(http.StatusSeeOther))
	assert.Equal(t, "client_error", statusLabel(http.StatusNotFound))
	assert.Equal(t, "server_error", statusLabel(http.StatusBadGateway))
	assert.Equal(t, "unknown", statusLabel(100))
}
