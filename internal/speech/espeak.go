package speech

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// ESpeakConfig holds configuration for the espeak-ng engine.
type ESpeakConfig struct {
	Voice     string // Voice variant (e.g., "hi", "hi+m1", "hi+f1")
	Rate      int    // Speech rate in words per minute (default: 150)
	Pitch     int    // Pitch adjustment, 0 to 99 (default: 50)
	Amplitude int    // Volume/amplitude, 0 to 200 (default: 100)
}

// DefaultESpeakConfig returns the default configuration for the Hindi voice.
func DefaultESpeakConfig() *ESpeakConfig {
	return &ESpeakConfig{
		Voice:     "hi",
		Rate:      150,
		Pitch:     50,
		Amplitude: 100,
	}
}

// ESpeak speaks through the espeak-ng command, one child process per
// utterance. The process plays to the sound device directly.
type ESpeak struct {
	mu       sync.Mutex
	config   *ESpeakConfig
	cmd      *exec.Cmd
	busy     atomic.Bool
	hasVoice bool
	logger   *zap.SugaredLogger
}

// NewESpeak creates an ESpeak speaker, verifying the binary is installed
// and probing for a Hindi voice.
func NewESpeak(config *ESpeakConfig, logger *zap.SugaredLogger) (*ESpeak, error) {
	if err := checkESpeakInstalled(); err != nil {
		return nil, err
	}
	if config == nil {
		config = DefaultESpeakConfig()
	}

	e := &ESpeak{config: config, logger: logger}
	e.hasVoice = probeESpeakHindiVoice()
	if !e.hasVoice {
		logger.Warnw("espeak-ng has no Hindi voice; transliterations will be spoken instead")
	}
	return e, nil
}

// Speak starts one espeak-ng process for text and returns immediately.
func (e *ESpeak) Speak(text string) error {
	if text == "" {
		return &Failure{Engine: "espeak", Err: fmt.Errorf("text cannot be empty")}
	}

	e.Stop()

	e.mu.Lock()
	args := []string{
		"-v", e.config.Voice,
		"-s", fmt.Sprintf("%d", e.config.Rate),
		"-p", fmt.Sprintf("%d", e.config.Pitch),
		"-a", fmt.Sprintf("%d", e.config.Amplitude),
		text,
	}
	e.mu.Unlock()
	cmd := exec.Command("espeak-ng", args...)
	if err := cmd.Start(); err != nil {
		return &Failure{Engine: "espeak", Err: err}
	}

	e.mu.Lock()
	e.cmd = cmd
	e.mu.Unlock()
	e.busy.Store(true)

	go func() {
		if err := cmd.Wait(); err != nil {
			e.logger.Debugw("espeak-ng exited", "error", err)
		}
		e.busy.Store(false)
	}()

	return nil
}

// IsBusy reports whether an espeak-ng process is still running.
func (e *ESpeak) IsBusy() bool { return e.busy.Load() }

// Stop kills any utterance in flight.
func (e *ESpeak) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cmd != nil && e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
		e.cmd = nil
	}
	e.busy.Store(false)
}

// SetRate updates the speech rate, clamped to espeak-ng's 80-450 wpm range.
// Safe to call while an utterance is in flight.
func (e *ESpeak) SetRate(wpm int) {
	if wpm < 80 {
		wpm = 80
	} else if wpm > 450 {
		wpm = 450
	}
	e.mu.Lock()
	e.config.Rate = wpm
	e.mu.Unlock()
}

// HasNativeVoice reports whether a Hindi voice was found at startup.
func (e *ESpeak) HasNativeVoice() bool { return e.hasVoice }

// checkESpeakInstalled verifies that espeak-ng is available on the system.
func checkESpeakInstalled() error {
	cmd := exec.Command("espeak-ng", "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// probeESpeakHindiVoice checks the voice list for a Hindi entry.
func probeESpeakHindiVoice() bool {
	out, err := exec.Command("espeak-ng", "--voices=hi").CombinedOutput()
	if err != nil {
		return false
	}
	return espeakListsHindi(string(out))
}

// espeakListsHindi parses `espeak-ng --voices` output (header line, then
// one voice per line with the language in the second column) and reports
// whether any listed voice's language is Hindi.
func espeakListsHindi(out string) bool {
	for _, line := range strings.Split(out, "\n")[1:] {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == "hi" {
			return true
		}
	}
	return false
}

// ESpeakVoices returns the Hindi voice variants espeak-ng ships.
func ESpeakVoices() []string {
	return []string{
		"hi",    // Default Hindi voice
		"hi+m1", // Hindi male voice 1
		"hi+m2", // Hindi male voice 2
		"hi+f1", // Hindi female voice 1
		"hi+f2", // Hindi female voice 2
	}
}
