package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess  = "success"
	ResultInvalid  = "invalid"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

type Manager struct {
	// counters
	CounterRequests    *prometheus.CounterVec
	CounterSubmissions *prometheus.CounterVec
	CounterDrafts      prometheus.Counter

	// histograms
	HistSubmitDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("swolelog", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("swolelog", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterSubmissions := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workout_submissions",
		Help:      "Workout submissions by result",
	}, []string{"result"})
	counterDrafts := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "drafts_created",
		Help:      "The total number of workout drafts created",
	})

	histSubmitDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			Name:      "workout_submit_duration_seconds",
			Help:      "Duration of a single workout POST to the workouts API",
		},
	)

	return &Manager{
		CounterRequests:    counterRequests,
		CounterSubmissions: counterSubmissions,
		CounterDrafts:      counterDrafts,
		HistSubmitDuration: histSubmitDuration,
	}
}
