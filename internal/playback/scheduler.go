package playback

import (
	"sync"
	"time"

	"codeberg.org/snonux/varnamala/internal/alphabet"
	"codeberg.org/snonux/varnamala/internal/speech"
	"go.uber.org/zap"
)

// State describes what the scheduler is doing.
type State int

const (
	// Idle means no playback is scheduled.
	Idle State = iota
	// Busy means a single letter's repeat cycle is in flight.
	Busy
	// ContinuousActive means the scheduler walks the whole sequence,
	// advancing after each letter's cycle completes.
	ContinuousActive
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Busy:
		return "busy"
	case ContinuousActive:
		return "continuous"
	default:
		return "unknown"
	}
}

// Sequence is the scheduler's view of the alphabet: the current letter,
// and the next one once a cycle completes in continuous mode.
type Sequence interface {
	Current() alphabet.Entry
	AdvanceWrapped() alphabet.Entry
}

// Config holds the timing knobs of a playback cycle.
type Config struct {
	Repeats          int           // utterances per letter
	PollInterval     time.Duration // how often to re-check engine busyness
	RepeatDelay      time.Duration // pause between repeats of the same letter
	TrailingDelay    time.Duration // settle time after the last repeat
	InterLetterDelay time.Duration // pause between letters in continuous mode
}

// DefaultConfig returns the timing used by the application.
func DefaultConfig() Config {
	return Config{
		Repeats:          2,
		PollInterval:     100 * time.Millisecond,
		RepeatDelay:      2 * time.Second,
		TrailingDelay:    300 * time.Millisecond,
		InterLetterDelay: time.Second,
	}
}

// Scheduler runs repeat cycles against a speech engine without blocking the
// caller. Every new request invalidates whatever was scheduled before it: a
// monotonically increasing token is captured by each timer continuation,
// and a continuation whose token is stale returns without doing anything.
type Scheduler struct {
	mu      sync.Mutex
	token   uint64
	state   State
	speaker speech.Speaker
	seq     Sequence
	cfg     Config
	clock   Clock
	logger  *zap.SugaredLogger

	onStateChange func(State)
	onAdvance     func(alphabet.Entry)
}

// NewScheduler creates a scheduler over speaker and seq.
func NewScheduler(speaker speech.Speaker, seq Sequence, cfg Config, logger *zap.SugaredLogger) *Scheduler {
	if cfg.Repeats < 1 {
		cfg.Repeats = 1
	}
	return &Scheduler{
		speaker: speaker,
		seq:     seq,
		cfg:     cfg,
		clock:   SystemClock(),
		logger:  logger,
	}
}

// SetClock replaces the wall clock. Call before any playback starts.
func (s *Scheduler) SetClock(clock Clock) { s.clock = clock }

// SetListeners installs the state and advance callbacks. Both are invoked
// outside the scheduler's lock and may be nil.
func (s *Scheduler) SetListeners(onStateChange func(State), onAdvance func(alphabet.Entry)) {
	s.mu.Lock()
	s.onStateChange = onStateChange
	s.onAdvance = onAdvance
	s.mu.Unlock()
}

// State returns the current scheduler state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsBusy reports whether any playback is scheduled.
func (s *Scheduler) IsBusy() bool { return s.State() != Idle }

// Play starts a repeat cycle for the sequence's current letter, cancelling
// whatever was playing before. repeats <= 0 uses the configured default.
func (s *Scheduler) Play(repeats int) {
	if repeats <= 0 {
		repeats = s.cfg.Repeats
	}

	s.mu.Lock()
	s.token++
	token := s.token
	emit := s.setStateLocked(Busy)
	s.mu.Unlock()
	emit()

	s.speaker.Stop()
	s.speakCycle(token, repeats)
}

// StartContinuous begins walking the whole sequence from the current
// letter, looping until StopContinuous.
func (s *Scheduler) StartContinuous() {
	s.mu.Lock()
	s.token++
	token := s.token
	emit := s.setStateLocked(ContinuousActive)
	s.mu.Unlock()
	emit()

	s.speaker.Stop()
	s.speakCycle(token, s.cfg.Repeats)
}

// StopContinuous abandons continuous playback. Any utterance in flight is
// cut off immediately.
func (s *Scheduler) StopContinuous() {
	s.Stop()
}

// Stop cancels all scheduled playback and silences the engine.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.token++
	emit := s.setStateLocked(Idle)
	s.mu.Unlock()
	emit()

	s.speaker.Stop()
}

// speakCycle speaks the current letter once and schedules the remainder of
// its cycle: remaining-1 more repeats, then completion.
func (s *Scheduler) speakCycle(token uint64, remaining int) {
	if !s.tokenCurrent(token) {
		return
	}

	entry := s.seq.Current()
	text := s.utteranceText(entry)
	if err := s.speaker.Speak(text); err != nil {
		// A failed utterance is silent, not fatal. The cycle keeps its
		// timing so continuous mode still advances.
		s.logger.Warnw("utterance failed", "symbol", entry.Symbol, "error", err)
	}

	s.awaitIdle(token, remaining)
}

// awaitIdle polls until the engine goes quiet, then either schedules the
// next repeat or finishes the cycle.
func (s *Scheduler) awaitIdle(token uint64, remaining int) {
	s.clock.AfterFunc(s.cfg.PollInterval, func() {
		if !s.tokenCurrent(token) {
			return
		}
		if s.speaker.IsBusy() {
			s.awaitIdle(token, remaining)
			return
		}
		if remaining > 1 {
			s.clock.AfterFunc(s.cfg.RepeatDelay, func() {
				s.speakCycle(token, remaining-1)
			})
			return
		}
		s.clock.AfterFunc(s.cfg.TrailingDelay, func() {
			s.completeCycle(token)
		})
	})
}

// completeCycle ends a letter's cycle: continuous mode moves on to the next
// letter, single mode goes idle.
func (s *Scheduler) completeCycle(token uint64) {
	s.mu.Lock()
	if token != s.token {
		s.mu.Unlock()
		return
	}
	continuous := s.state == ContinuousActive
	emit := func() {}
	if !continuous {
		emit = s.setStateLocked(Idle)
	}
	onAdvance := s.onAdvance
	s.mu.Unlock()

	if !continuous {
		emit()
		return
	}

	next := s.seq.AdvanceWrapped()
	if onAdvance != nil {
		onAdvance(next)
	}
	s.clock.AfterFunc(s.cfg.InterLetterDelay, func() {
		s.speakCycle(token, s.cfg.Repeats)
	})
}

// utteranceText picks what to hand the engine: the letter itself when the
// engine can voice Devanagari, the transliteration otherwise.
func (s *Scheduler) utteranceText(entry alphabet.Entry) string {
	if speech.ContainsDevanagari(entry.Symbol) && !s.speaker.HasNativeVoice() {
		return entry.Pronunciation
	}
	return entry.Symbol
}

func (s *Scheduler) tokenCurrent(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return token == s.token
}

// setStateLocked updates state and returns the emission to run once the
// caller has dropped mu, so listeners may call back into the scheduler.
func (s *Scheduler) setStateLocked(next State) func() {
	if s.state == next {
		return func() {}
	}
	s.logger.Debugw("playback state", "from", s.state.String(), "to", next.String())
	s.state = next
	cb := s.onStateChange
	if cb == nil {
		return func() {}
	}
	return func() { cb(next) }
}
