package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "pattern", "status"},
	)

	GoalsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "goals_created_total",
			Help: "Total number of goals created",
		},
	)

	StepsToggled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steps_toggled_total",
			Help: "Total number of step toggles",
		},
		[]string{"done"}, // done: true, false
	)

	CelebrationsFired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "celebrations_fired_total",
			Help: "Total number of goal completion celebrations",
		},
	)
)

// RecordHTTPRequest records the duration of one handled HTTP request.
// pattern is the registered route pattern, not the raw URL path, to
// keep label cardinality bounded.
func RecordHTTPRequest(method, pattern string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, pattern, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordStepToggle records a step toggle by resulting done state.
func RecordStepToggle(done bool) {
	StepsToggled.WithLabelValues(strconv.FormatBool(done)).Inc()
}
