package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// ErrProviderUnavailable is returned while the circuit around the provider is open.
var ErrProviderUnavailable = errors.New("embedding provider unavailable")

// Outcome labels passed to the call observer.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// Embedder adapts an EmbeddingProvider to TextEmbedder and guards it with a circuit breaker,
// so an unreachable model fails requests fast instead of stalling each one on a timeout.
type Embedder struct {
	provider EmbeddingProvider
	taskType string
	cb       *gobreaker.CircuitBreaker[[]float64]

	observeCall  func(outcome string, elapsed time.Duration)
	observeState func(name, from, to string)
}

type EmbedderOption func(*embedderSettings)

type embedderSettings struct {
	taskType     string
	maxFailures  uint32
	openTimeout  time.Duration
	observeCall  func(outcome string, elapsed time.Duration)
	observeState func(name, from, to string)
}

// WithTaskType sets the task hint forwarded to the provider.
func WithTaskType(taskType string) EmbedderOption {
	return func(s *embedderSettings) { s.taskType = taskType }
}

// WithBreaker sets how many consecutive failures open the circuit and how long it stays open.
func WithBreaker(maxFailures uint32, openTimeout time.Duration) EmbedderOption {
	return func(s *embedderSettings) {
		s.maxFailures = maxFailures
		s.openTimeout = openTimeout
	}
}

// WithCallObserver receives the outcome and latency of every Embed call.
func WithCallObserver(fn func(outcome string, elapsed time.Duration)) EmbedderOption {
	return func(s *embedderSettings) { s.observeCall = fn }
}

// WithStateObserver receives circuit state transitions.
func WithStateObserver(fn func(name, from, to string)) EmbedderOption {
	return func(s *embedderSettings) { s.observeState = fn }
}

func NewEmbedder(provider EmbeddingProvider, name string, opts ...EmbedderOption) *Embedder {
	settings := embedderSettings{
		taskType:    TaskSemanticSimilarity,
		maxFailures: 5,
		openTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(&settings)
	}

	e := &Embedder{
		provider:     provider,
		taskType:     settings.taskType,
		observeCall:  settings.observeCall,
		observeState: settings.observeState,
	}

	maxFailures := settings.maxFailures
	e.cb = gobreaker.NewCircuitBreaker[[]float64](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     settings.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// a caller giving up is not a provider fault
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if e.observeState != nil {
				e.observeState(name, from.String(), to.String())
			}
		},
	})

	return e
}

// Embed returns the provider vector for text as float64 values.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	start := time.Now()
	vector, err := e.cb.Execute(func() ([]float64, error) {
		res, err := e.provider.Generate(ctx, text, e.taskType)
		if err != nil {
			return nil, err
		}
		if len(res.Embedding.Values) == 0 {
			return nil, fmt.Errorf("provider returned an empty embedding")
		}
		return res.Float64(), nil
	})

	switch {
	case err == nil:
		e.observe(OutcomeSuccess, start)
		return vector, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		e.observe(OutcomeRejected, start)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	default:
		e.observe(OutcomeFailure, start)
		return nil, fmt.Errorf("embed text: %w", err)
	}
}

// State reports the circuit state ("closed", "half-open", "open").
func (e *Embedder) State() string {
	return e.cb.State().String()
}

func (e *Embedder) observe(outcome string, start time.Time) {
	if e.observeCall != nil {
		e.observeCall(outcome, time.Since(start))
	}
}
