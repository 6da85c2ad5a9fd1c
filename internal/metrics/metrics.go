package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evtariff_requests_total",
			Help: "Total number of API requests per route and method",
		},
		[]string{"route", "method"},
	)

	RequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "evtariff_request_duration_seconds",
			Help:    "Request duration in seconds per route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	RequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evtariff_request_errors_total",
			Help: "Total number of error responses per route and status code",
		},
		[]string{"route", "code"},
	)

	CalculationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evtariff_calculation_errors_total",
			Help: "Cost calculations rejected because of invalid input",
		},
		[]string{"calculation"},
	)
)

var (
	StorageOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evtariff_storage_ops_total",
			Help: "Key-value store operations per driver, operation and result",
		},
		[]string{"driver", "op", "result"},
	)

	StorageOpDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "evtariff_storage_op_duration_seconds",
			Help:    "Key-value store operation latency per driver and operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"driver", "op"},
	)

	DBPoolTotalConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "evtariff_db_pool_total_conns",
			Help: "Total number of connections in the DB pool per driver",
		},
		[]string{"driver"},
	)

	DBPoolIdleConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "evtariff_db_pool_idle_conns",
			Help: "Idle connections in the DB pool per driver",
		},
		[]string{"driver"},
	)

	DBPoolAcquiredConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "evtariff_db_pool_acquired_conns",
			Help: "Currently acquired (in-use) connections per driver",
		},
		[]string{"driver"},
	)

	DBPoolAcquires = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "evtariff_db_pool_acquires",
			Help: "Cumulative connection acquires reported by the pool per driver",
		},
		[]string{"driver"},
	)
)

func ObserveStorageOp(driver, op string, startedAt time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StorageOpsTotal.WithLabelValues(driver, op, result).Inc()
	StorageOpDurationSeconds.WithLabelValues(driver, op).Observe(time.Since(startedAt).Seconds())
}

func UpdateDBPoolMetrics(driver string, total, idle, acquired float64, acquires int64) {
	DBPoolTotalConns.WithLabelValues(driver).Set(total)
	DBPoolIdleConns.WithLabelValues(driver).Set(idle)
	DBPoolAcquiredConns.WithLabelValues(driver).Set(acquired)
	DBPoolAcquires.WithLabelValues(driver).Set(float64(acquires))
}

var (
	TariffAnnualCostPounds = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "evtariff_tariff_annual_cost_pounds",
			Help: "Estimated annual cost per tariff from the latest comparison report",
		},
		[]string{"tariff_id", "tariff"},
	)

	ScheduledJobLastRun = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "evtariff_job_last_run_timestamp",
			Help: "Unix timestamp of the last completed run for a job",
		},
		[]string{"job"},
	)

	ScheduledJobLastDurationSeconds = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "evtariff_job_last_duration_seconds",
			Help: "Duration of the last completed run for a job",
		},
		[]string{"job"},
	)

	ScheduledJobFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evtariff_job_failures_total",
			Help: "Total number of failed executions per job",
		},
		[]string{"job"},
	)
)

func UpdateJobMetrics(job string, startedAt time.Time, err error) {
	dur := time.Since(startedAt).Seconds()
	ScheduledJobLastDurationSeconds.WithLabelValues(job).Set(dur)
	ScheduledJobLastRun.WithLabelValues(job).Set(float64(time.Now().Unix()))
	if err != nil {
		ScheduledJobFailuresTotal.WithLabelValues(job).Inc()
	}
}
