// Package trainer ties the alphabet index and the playback scheduler into
// one stateful session: navigate, filter, play, and loop over letters.
package trainer

import (
	"sync"

	"codeberg.org/snonux/varnamala/internal/alphabet"
	"codeberg.org/snonux/varnamala/internal/playback"
	"codeberg.org/snonux/varnamala/internal/speech"
	"go.uber.org/zap"
)

// Config controls a training session.
type Config struct {
	// AutoPlay speaks a letter whenever navigation lands on it.
	AutoPlay bool
	// Repeats is how many times each letter is spoken per cycle.
	Repeats int
	// Playback overrides the scheduler timing; zero value uses defaults.
	Playback playback.Config
	// Clock overrides the scheduler's wall clock, for tests.
	Clock playback.Clock
}

// DefaultConfig returns the session defaults.
func DefaultConfig() Config {
	return Config{
		AutoPlay: true,
		Repeats:  2,
		Playback: playback.DefaultConfig(),
	}
}

// Trainer is the session facade. It owns the cursor over the alphabet and
// drives the scheduler; all methods are safe for concurrent use.
type Trainer struct {
	mu        sync.Mutex
	index     *alphabet.Index
	scheduler *playback.Scheduler
	speaker   speech.Speaker
	cfg       Config
	logger    *zap.SugaredLogger
}

// New creates a session over index speaking through speaker.
func New(index *alphabet.Index, speaker speech.Speaker, cfg Config, logger *zap.SugaredLogger) *Trainer {
	if cfg.Repeats < 1 {
		cfg.Repeats = DefaultConfig().Repeats
	}
	if cfg.Playback == (playback.Config{}) {
		cfg.Playback = playback.DefaultConfig()
	}
	cfg.Playback.Repeats = cfg.Repeats

	t := &Trainer{index: index, speaker: speaker, cfg: cfg, logger: logger}
	t.scheduler = playback.NewScheduler(speaker, t, cfg.Playback, logger)
	if cfg.Clock != nil {
		t.scheduler.SetClock(cfg.Clock)
	}
	return t
}

// SetListeners forwards state and advance callbacks to the scheduler.
func (t *Trainer) SetListeners(onStateChange func(playback.State), onAdvance func(alphabet.Entry)) {
	t.scheduler.SetListeners(onStateChange, onAdvance)
}

// Current returns the letter under the cursor. It implements
// playback.Sequence.
func (t *Trainer) Current() alphabet.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.index.Current()
}

// AdvanceWrapped moves the cursor to the next visible letter, wrapping at
// the end. It implements playback.Sequence for continuous mode.
func (t *Trainer) AdvanceWrapped() alphabet.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.index.AdvanceWrapped()
}

// Position returns the cursor's index into the full alphabet.
func (t *Trainer) Position() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.index.Position()
}

// Mode returns the active filter mode.
func (t *Trainer) Mode() alphabet.FilterMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.index.Mode()
}

// CanGoNext reports whether a later visible letter exists.
func (t *Trainer) CanGoNext() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.index.CanAdvance()
}

// CanGoPrev reports whether an earlier visible letter exists.
func (t *Trainer) CanGoPrev() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.index.CanRetreat()
}

// GoNext moves to the next visible letter and reports whether it moved.
// With AutoPlay set, the new letter starts playing.
func (t *Trainer) GoNext() bool {
	t.mu.Lock()
	moved := t.index.Advance()
	t.mu.Unlock()
	if moved && t.cfg.AutoPlay {
		t.Play()
	}
	return moved
}

// GoPrev moves to the previous visible letter and reports whether it
// moved. With AutoPlay set, the new letter starts playing.
func (t *Trainer) GoPrev() bool {
	t.mu.Lock()
	moved := t.index.Retreat()
	t.mu.Unlock()
	if moved && t.cfg.AutoPlay {
		t.Play()
	}
	return moved
}

// Seek jumps the cursor to position i if that letter is visible.
func (t *Trainer) Seek(i int) bool {
	t.mu.Lock()
	ok := t.index.Seek(i)
	t.mu.Unlock()
	if ok && t.cfg.AutoPlay {
		t.Play()
	}
	return ok
}

// Find locates a letter by symbol or transliteration and jumps to it.
func (t *Trainer) Find(query string) bool {
	t.mu.Lock()
	i, found := t.index.Find(query)
	ok := found && t.index.Seek(i)
	t.mu.Unlock()
	if ok && t.cfg.AutoPlay {
		t.Play()
	}
	return ok
}

// Play speaks the current letter's repeat cycle, cancelling any playback
// in flight.
func (t *Trainer) Play() {
	t.scheduler.Play(t.cfg.Repeats)
}

// SetFilterMode switches the visible category, relocating the cursor to
// the first visible letter, and reports whether the switch happened. A
// mode with no letters is rejected. With AutoPlay set, the relocated
// letter starts playing.
func (t *Trainer) SetFilterMode(mode alphabet.FilterMode) bool {
	t.mu.Lock()
	ok := t.index.SetMode(mode)
	t.mu.Unlock()
	if !ok {
		return false
	}
	t.scheduler.Stop()
	if t.cfg.AutoPlay {
		t.Play()
	}
	return true
}

// StartContinuous loops through all visible letters from the current one.
func (t *Trainer) StartContinuous() {
	t.scheduler.StartContinuous()
}

// StopContinuous ends continuous mode and silences playback.
func (t *Trainer) StopContinuous() {
	t.scheduler.StopContinuous()
}

// Stop cancels all playback.
func (t *Trainer) Stop() {
	t.scheduler.Stop()
}

// IsBusy reports whether any playback is scheduled.
func (t *Trainer) IsBusy() bool {
	return t.scheduler.IsBusy()
}

// SetRate sets the engine's speech rate in words per minute.
func (t *Trainer) SetRate(wpm int) {
	t.speaker.SetRate(wpm)
}

// IsContinuousActive reports whether continuous mode is running.
func (t *Trainer) IsContinuousActive() bool {
	return t.scheduler.State() == playback.ContinuousActive
}
