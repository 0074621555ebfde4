// Package metrics provides Prometheus metrics collection for the parcel service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CheckInsTotal tracks parcel check-ins by outcome. The matched label
	// distinguishes pre-registered arrivals from walk-ins.
	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_checkins_total",
			Help: "Total number of parcel check-ins",
		},
		[]string{"status", "matched", "zone"},
	)

	// CheckOutsTotal tracks parcel check-outs by outcome.
	CheckOutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_checkouts_total",
			Help: "Total number of parcel check-outs",
		},
		[]string{"status", "payment_method"},
	)

	// SlotAllocationRetries tracks how often a slot claim lost its race and
	// was retried. A climbing rate means heavy counter contention.
	SlotAllocationRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "slot_allocation_retries_total",
			Help: "Total number of storage slot allocation retries",
		},
	)

	// SyntheticSlotsTotal counts check-ins that fell back to a synthetic
	// slot code because the hub had no provisioned slots.
	SyntheticSlotsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "synthetic_slots_total",
			Help: "Total number of synthetic slot assignments",
		},
	)

	// StorageOccupancy tracks live slot occupancy per hub.
	StorageOccupancy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storage_occupancy",
			Help: "Number of occupied storage slots",
		},
		[]string{"hub_id"},
	)

	// FeesCollectedTotal accumulates collected storage fees.
	FeesCollectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fees_collected_total",
			Help: "Total storage fees collected",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordCheckIn records metrics for a parcel check-in.
func RecordCheckIn(status string, matched bool, zone string, synthetic bool) {
	CheckInsTotal.WithLabelValues(status, strconv.FormatBool(matched), zone).Inc()
	if synthetic {
		SyntheticSlotsTotal.Inc()
	}
}

// RecordCheckOut records metrics for a parcel check-out.
func RecordCheckOut(status, paymentMethod string, fee float64) {
	CheckOutsTotal.WithLabelValues(status, paymentMethod).Inc()
	if fee > 0 {
		FeesCollectedTotal.Add(fee)
	}
}
