package testutil

import (
	"sync"
	"time"
)

// MockSpeaker mocks a speech engine for testing. Busy behavior is
// scripted: each IsBusy call consumes one entry from BusyPolls, and an
// exhausted script reports idle.
type MockSpeaker struct {
	mu          sync.Mutex
	Spoken      []string
	SpeakErrs   []error // consumed one per Speak call; nil entries succeed
	BusyPolls   []bool
	StopCalls   int
	Rate        int
	NativeVoice bool
}

// Speak records text and returns the next scripted error, if any.
func (m *MockSpeaker) Speak(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Spoken = append(m.Spoken, text)
	if len(m.SpeakErrs) > 0 {
		err := m.SpeakErrs[0]
		m.SpeakErrs = m.SpeakErrs[1:]
		return err
	}
	return nil
}

// IsBusy consumes the next scripted poll result.
func (m *MockSpeaker) IsBusy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.BusyPolls) == 0 {
		return false
	}
	busy := m.BusyPolls[0]
	m.BusyPolls = m.BusyPolls[1:]
	return busy
}

// SetRate records the requested rate.
func (m *MockSpeaker) SetRate(wpm int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rate = wpm
}

// Stop counts stop requests.
func (m *MockSpeaker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StopCalls++
}

// HasNativeVoice reports the configured capability.
func (m *MockSpeaker) HasNativeVoice() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.NativeVoice
}

// SpokenTexts returns a copy of everything spoken so far.
func (m *MockSpeaker) SpokenTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Spoken))
	copy(out, m.Spoken)
	return out
}

// ManualClock collects scheduled callbacks and fires them only when the
// test says so, making timer chains deterministic.
type ManualClock struct {
	mu      sync.Mutex
	pending []func()
}

// AfterFunc queues f; the duration is ignored.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) {
	c.mu.Lock()
	c.pending = append(c.pending, f)
	c.mu.Unlock()
}

// Fire runs the oldest pending callback and reports whether one existed.
func (c *ManualClock) Fire() bool {
	c.mu.Lock()
	if len(c.pending) == 0 {
		c.mu.Unlock()
		return false
	}
	f := c.pending[0]
	c.pending = c.pending[1:]
	c.mu.Unlock()
	f()
	return true
}

// Drain fires pending callbacks, including newly scheduled ones, until
// none remain or max firings have happened.
func (c *ManualClock) Drain(max int) int {
	fired := 0
	for fired < max && c.Fire() {
		fired++
	}
	return fired
}

// Pending reports how many callbacks are queued.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
