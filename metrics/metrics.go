// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus metrics for the scoring service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "gimnis"
	subsystem = "scoring"
)

// Validation outcomes
const (
	OutcomeValidated   = "validated"
	OutcomeIncomplete  = "incomplete"
	OutcomeConflict    = "already_validated"
	OutcomeUnvalidated = "unvalidated"
	OutcomeError       = "error"
)

// Manager owns every metric of the service on its own registry.
type Manager struct {
	registry *prometheus.Registry

	scoresSubmitted   *prometheus.CounterVec
	scoresRejected    *prometheus.CounterVec
	mirroredWrites    prometheus.Counter
	scoresDeleted     prometheus.Counter
	validations       *prometheus.CounterVec
	voteChanges       *prometheus.CounterVec
	activeCompetitor  prometheus.Gauge
	httpRequests      *prometheus.CounterVec
	httpRequestMillis *prometheus.HistogramVec
}

// Custom registry to avoid default Go metrics.
var global = NewManager(prometheus.NewRegistry()) //nolint:gochecknoglobals // process-wide metrics

// NewManager registers all metrics on registry.
func NewManager(registry *prometheus.Registry) *Manager {
	auto := promauto.With(registry)
	m := &Manager{registry: registry}

	m.scoresSubmitted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "scores_submitted_total",
		Help:      "Marks accepted, by score type",
	}, []string{"score_type"})

	m.scoresRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "scores_rejected_total",
		Help:      "Marks rejected, by reason",
	}, []string{"reason"})

	m.mirroredWrites = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "mirrored_writes_total",
		Help:      "Extra rows written by difficulty-panel mirroring",
	})

	m.scoresDeleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "scores_deleted_total",
		Help:      "Score rows deleted, mirrored rows included",
	})

	m.validations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "validations_total",
		Help:      "Validate and unvalidate attempts, by outcome",
	}, []string{"outcome"})

	m.voteChanges = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "vote_changes_total",
		Help:      "Live vote start/stop calls",
	}, []string{"action"})

	m.activeCompetitor = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "active_competitor_id",
		Help:      "Competitor currently open for voting (0 when none)",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestMillis = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"route", "method"})

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Manager) ScoreSubmitted(scoreType string, mirrored int) {
	m.scoresSubmitted.WithLabelValues(scoreType).Inc()
	if mirrored > 0 {
		m.mirroredWrites.Add(float64(mirrored))
	}
}

func (m *Manager) ScoreRejected(reason string) {
	m.scoresRejected.WithLabelValues(reason).Inc()
}

func (m *Manager) ScoresDeleted(n int64) {
	m.scoresDeleted.Add(float64(n))
}

func (m *Manager) Validation(outcome string) {
	m.validations.WithLabelValues(outcome).Inc()
}

// VoteChanged records a start; competitorID 0 means the vote was stopped.
func (m *Manager) VoteChanged(competitorID int64) {
	action := "start"
	if competitorID == 0 {
		action = "stop"
	}
	m.voteChanges.WithLabelValues(action).Inc()
	m.activeCompetitor.Set(float64(competitorID))
}

func (m *Manager) HTTPRequest(route, method string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestMillis.WithLabelValues(route, method).Observe(float64(d.Milliseconds()))
}

// Get returns the process-wide manager.
func Get() *Manager { return global }
