// Package metrics defines the Prometheus collectors the server exports.
//
// All methods are safe on a nil *Metrics so callers that run without a
// registry (the CLI, most tests) need no special casing.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quizup"

// Submission outcomes.
const (
	OutcomeGraded   = "graded"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Generation sources.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
	SourceManual   = "manual"
)

// Metrics owns a registry and the collectors registered on it.
type Metrics struct {
	reg *prometheus.Registry

	submissions    *prometheus.CounterVec
	scores         prometheus.Histogram
	transitions    *prometheus.CounterVec
	quizzesCreated *prometheus.CounterVec
	guidance       *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates a registry with the process and Go runtime collectors plus
// the application collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		submissions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Quiz submissions by outcome",
			},
			[]string{"outcome"},
		),
		scores: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "submission_score",
				Help:      "Percentage score of graded submissions",
				Buckets:   prometheus.LinearBuckets(10, 10, 10),
			},
		),
		transitions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "difficulty_transitions_total",
				Help:      "Difficulty level changes observed while grading",
			},
			[]string{"from", "to"},
		),
		quizzesCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quizzes_created_total",
				Help:      "Quizzes created by question source",
			},
			[]string{"source"},
		),
		guidance: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "guidance_total",
				Help:      "Improvement guidance requests by queue result",
			},
			[]string{"result"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Submission counts one submission attempt.
func (m *Metrics) Submission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

// Score observes a graded submission's percentage.
func (m *Metrics) Score(score int) {
	if m == nil {
		return
	}
	m.scores.Observe(float64(score))
}

// Transition counts a difficulty change. Equal levels are ignored.
func (m *Metrics) Transition(from, to string) {
	if m == nil || from == to {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

// QuizCreated counts a new quiz by source.
func (m *Metrics) QuizCreated(source string) {
	if m == nil {
		return
	}
	m.quizzesCreated.WithLabelValues(source).Inc()
}

// Guidance counts a guidance request by result ("queued" or "dropped").
func (m *Metrics) Guidance(result string) {
	if m == nil {
		return
	}
	m.guidance.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Middleware records request latency by matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
			m.httpDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Observe(v)
		}))
		c.Next()
		timer.ObserveDuration()
	}
}
