package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterGoalsCreated       *prometheus.CounterVec
	CounterGoalsCompleted     prometheus.Counter
	CounterGoalsFailed        prometheus.Counter
	CounterMilestonesReached  prometheus.Counter
	CounterRecomputePasses    prometheus.Counter
	CounterRecomputeErrors    prometheus.Counter
	CounterHandleRequestPanic prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistRequestDuration   prometheus.Histogram
	HistRecomputeDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("goals", "test_server", prometheus.NewRegistry())
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterGoalsCreated := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "goals_created",
		Help:      "The total number of created goals",
	}, []string{"type"})
	counterGoalsCompleted := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "goals_completed",
		Help:      "The total number of goals auto-completed",
	})
	counterGoalsFailed := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "goals_failed",
		Help:      "The total number of goals auto-failed after a missed deadline",
	})
	counterMilestonesReached := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "milestones_reached",
		Help:      "The total number of newly crossed goal milestones",
	})
	counterRecomputePasses := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "recompute_passes",
		Help:      "The total number of goal recomputation passes",
	})
	counterRecomputeErrors := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "recompute_errors",
		Help:      "The total number of per-goal errors during recomputation passes",
	})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histReqDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.0000001, 0.0000005, 0.000001, 0.00001,
				0.0001, 0.001, 0.01, 0.1, 1, 10, 60,
			},
			Name: "request_duration_seconds",
			Help: "Total duration of requests in seconds",
		},
	)
	histRecomputeDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30, 60,
			},
			Name: "recompute_duration_seconds",
			Help: "Total duration of a single goal recomputation pass in seconds",
		},
	)

	return &Manager{
		CounterRequests:           counterRequests,
		CounterGoalsCreated:       counterGoalsCreated,
		CounterGoalsCompleted:     counterGoalsCompleted,
		CounterGoalsFailed:        counterGoalsFailed,
		CounterMilestonesReached:  counterMilestonesReached,
		CounterRecomputePasses:    counterRecomputePasses,
		CounterRecomputeErrors:    counterRecomputeErrors,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		GaugeRequests:             gaugeRequests,
		GaugeLifeSignal:           gaugeLifeSignal,
		HistRequestDuration:       histReqDuration,
		HistRecomputeDuration:     histRecomputeDuration,
	}
}
