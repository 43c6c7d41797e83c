package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the agent endpoints.
type Metrics struct {
	registry      *prometheus.Registry
	AgentRuns     *prometheus.CounterVec
	AgentDuration *prometheus.HistogramVec
	AgentChunks   *prometheus.CounterVec
	HTTPResponses *prometheus.CounterVec
}

// NewMetrics constructs a registry with the agent and HTTP collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "codereview_agent_runs_total",
		Help: "Agent invocations by agent and outcome",
	}, []string{"agent", "outcome"})

	durs := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codereview_agent_duration_seconds",
		Help:    "Time spent streaming a full agent response",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
	}, []string{"agent", "outcome"})

	chunks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "codereview_agent_chunks_total",
		Help: "Text chunks received from agent streams",
	}, []string{"agent"})

	responses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "codereview_http_responses_total",
		Help: "HTTP responses by route and status code",
	}, []string{"route", "status"})

	reg.MustRegister(runs, durs, chunks, responses)

	return &Metrics{
		registry:      reg,
		AgentRuns:     runs,
		AgentDuration: durs,
		AgentChunks:   chunks,
		HTTPResponses: responses,
	}
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAgentRun records one invocation of the named agent.
func (m *Metrics) RecordAgentRun(agent string, err error, duration time.Duration, chunks int) {
	if m == nil {
		return
	}
	if agent == "" {
		agent = "unknown"
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.AgentRuns.WithLabelValues(agent, outcome).Inc()
	m.AgentDuration.WithLabelValues(agent, outcome).Observe(duration.Seconds())
	m.AgentChunks.WithLabelValues(agent).Add(float64(chunks))
}

// RecordResponse counts a served HTTP response.
func (m *Metrics) RecordResponse(route string, status int) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.HTTPResponses.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
