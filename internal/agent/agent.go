// Package agent implements the rule-based biodiversity question agent: an
// intent classifier, five intent handlers and the query facade that wraps
// their output into a response envelope.
package agent

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aerowise/aerowise-go/internal/datastore"
	"github.com/aerowise/aerowise-go/internal/logging"
	"github.com/aerowise/aerowise-go/internal/model"
	"github.com/aerowise/aerowise-go/internal/telemetry"
)

// fixedConfidence is reported for every response regardless of intent or
// match strength, including unknown. Kept constant for compatibility with
// the envelope contract.
const fixedConfidence = 0.85

// Placeholder labels substituted when an optional foreign key fails to
// resolve. A missing reference never fails a query.
const (
	unknownSpeciesLabel = "unidentified species"
	unknownZoneLabel    = "unknown zone"
)

type handlerFunc func(question string) (string, map[string]any)

// Agent answers natural-language questions against an immutable record
// store. It holds no mutable state besides the injected clock, so a single
// instance may serve concurrent callers.
type Agent struct {
	store    *datastore.Store
	log      *slog.Logger
	metrics  *telemetry.Metrics
	now      func() time.Time
	handlers map[Intent]handlerFunc
}

// Option configures an Agent.
type Option func(*Agent)

// WithClock overrides the time source used for the rolling alert window.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) { a.now = now }
}

// WithMetrics attaches query metrics to the agent.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(a *Agent) { a.metrics = m }
}

// New creates an agent over the given record store. The store is owned by
// the caller and must not be mutated afterwards.
func New(store *datastore.Store, opts ...Option) *Agent {
	a := &Agent{
		store: store,
		log:   logging.ForService("agent"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.handlers = map[Intent]handlerFunc{
		IntentSpatial:     a.handleSpatial,
		IntentDescriptive: a.handleDescriptive,
		IntentAnalytical:  a.handleAnalytical,
		IntentSimilarity:  a.handleSimilarity,
		IntentAlert:       a.handleAlert,
		IntentUnknown:     a.handleUnknown,
	}
	return a
}

// Ask classifies the question, dispatches to the matching handler and wraps
// the result in a response envelope with timing metadata.
func (a *Agent) Ask(question string) model.ChatResponse {
	start := time.Now()

	intent := Classify(question)
	handler, ok := a.handlers[intent]
	if !ok {
		// Unreachable as long as the dispatch table covers every intent.
		handler = a.handleUnknown
		intent = IntentUnknown
	}
	answer, payload := handler(question)

	elapsed := time.Since(start)
	if a.metrics != nil {
		a.metrics.ObserveQuery(string(intent), elapsed)
	}
	a.log.Debug("question answered",
		"intent", intent,
		"duration_ms", elapsed.Milliseconds(),
	)

	return model.ChatResponse{
		ID:              uuid.NewString(),
		Answer:          answer,
		Data:            payload,
		QueryType:       string(intent),
		Confidence:      fixedConfidence,
		ExecutionTimeMs: float64(elapsed.Microseconds()) / 1000.0,
	}
}

// handleUnknown is the fallback for questions matching no keyword set.
func (a *Agent) handleUnknown(string) (string, map[string]any) {
	return "I did not quite understand your question. Could you rephrase it?", nil
}

// speciesName resolves a species id to its common name, tolerating misses.
func (a *Agent) speciesName(id string) string {
	if sp, ok := a.store.SpeciesByID(id); ok {
		return sp.CommonName
	}
	return unknownSpeciesLabel
}

// zoneName resolves a zone id to its display name, tolerating misses.
func (a *Agent) zoneName(id string) string {
	if z, ok := a.store.ZoneByID(id); ok {
		return z.Name
	}
	return unknownZoneLabel
}
