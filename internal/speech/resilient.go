package speech

import (
	"errors"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Factory builds a fresh engine instance. Resilient calls it again when an
// engine instance fails and needs to be replaced.
type Factory func() (Speaker, error)

// Resilient wraps an engine with reinitialize-and-retry recovery and a
// circuit breaker. A failed Speak rebuilds the engine from the factory and
// retries once; repeated consecutive failures open the breaker, after which
// Speak becomes a logged no-op until the breaker's timeout elapses.
type Resilient struct {
	mu      sync.Mutex
	engine  Speaker
	factory Factory
	breaker *gobreaker.CircuitBreaker
	rate    int
	logger  *zap.SugaredLogger
}

// NewResilient builds the initial engine from factory and wraps it.
func NewResilient(factory Factory, logger *zap.SugaredLogger) (*Resilient, error) {
	engine, err := factory()
	if err != nil {
		return nil, err
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "speech",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnw("speech circuit breaker state change",
				"from", from.String(), "to", to.String())
		},
	})

	return &Resilient{
		engine:  engine,
		factory: factory,
		breaker: breaker,
		logger:  logger,
	}, nil
}

// Speak delegates to the current engine. On failure it rebuilds the engine
// and retries exactly once; the retry's outcome is what the breaker counts.
func (r *Resilient) Speak(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.breaker.Execute(func() (interface{}, error) {
		if err := r.engine.Speak(text); err == nil {
			return nil, nil
		} else if rerr := r.reinitialize(err); rerr != nil {
			return nil, rerr
		}
		return nil, r.engine.Speak(text)
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		r.logger.Warnw("speech suppressed, circuit breaker open")
		return &Failure{Engine: "resilient", Err: err}
	}
	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}
	return &Failure{Engine: "resilient", Err: err}
}

// reinitialize swaps in a fresh engine instance after cause. The caller
// holds the mutex.
func (r *Resilient) reinitialize(cause error) error {
	r.logger.Warnw("speech engine failed, reinitializing", "error", cause)

	engine, err := r.factory()
	if err != nil {
		return cause
	}
	r.engine.Stop()
	r.engine = engine
	if r.rate > 0 {
		r.engine.SetRate(r.rate)
	}
	return nil
}

// IsBusy reports whether the current engine is speaking.
func (r *Resilient) IsBusy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.IsBusy()
}

// SetRate stores the rate so it survives reinitialization.
func (r *Resilient) SetRate(wpm int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rate = wpm
	r.engine.SetRate(wpm)
}

// Stop stops the current engine.
func (r *Resilient) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engine.Stop()
}

// HasNativeVoice reports the current engine's Devanagari capability.
func (r *Resilient) HasNativeVoice() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.HasNativeVoice()
}
