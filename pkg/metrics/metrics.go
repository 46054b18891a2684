package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Schedule estimates computed, split by whether the inputs were
	// complete enough to produce a schedule.
	ScheduleEstimateCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_estimate_count",
			Help: "Total number of schedule estimates computed",
		},
		[]string{"result"}, // result: ok, empty
	)

	// Queue validation runs, split by outcome.
	QueueValidationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_validation_count",
			Help: "Total number of queue integrity validation runs",
		},
		[]string{"result"}, // result: clean, issues
	)

	// Issues reported by the validator.
	QueueIssueCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_issue_count",
			Help: "Total number of queue integrity issues reported",
		},
	)

	// Per-task outcomes of queue repair writes.
	QueueRepairTaskCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_repair_task_count",
			Help: "Total number of per-task queue position updates during repair",
		},
		[]string{"result"}, // result: updated, failed
	)

	DBQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)
)

func RecordScheduleEstimate(result string) {
	ScheduleEstimateCount.WithLabelValues(result).Inc()
}

func RecordQueueValidation(issueCount int) {
	if issueCount == 0 {
		QueueValidationCount.WithLabelValues("clean").Inc()
		return
	}
	QueueValidationCount.WithLabelValues("issues").Inc()
	QueueIssueCount.Add(float64(issueCount))
}

func RecordQueueRepairTask(result string) {
	QueueRepairTaskCount.WithLabelValues(result).Inc()
}

func RecordDBQueryDuration(duration time.Duration) {
	DBQueryDuration.Observe(duration.Seconds())
}

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}
