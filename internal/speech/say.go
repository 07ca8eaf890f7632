package speech

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// preferredSayVoices are the macOS Hindi voices, in preference order.
var preferredSayVoices = []string{"Lekha", "Madhur"}

// Say speaks through the macOS `say` command.
type Say struct {
	mu     sync.Mutex
	voice  string
	rate   int
	cmd    *exec.Cmd
	busy   atomic.Bool
	logger *zap.SugaredLogger
}

// NewSay creates a Say speaker and selects a Hindi voice if one is
// installed.
func NewSay(rate int, logger *zap.SugaredLogger) (*Say, error) {
	if _, err := exec.LookPath("say"); err != nil {
		return nil, fmt.Errorf("say is not available: %w", err)
	}
	if rate <= 0 {
		rate = 180
	}

	s := &Say{rate: rate, logger: logger}
	s.voice = selectSayHindiVoice()
	if s.voice != "" {
		logger.Infow("selected say voice", "voice", s.voice)
	} else {
		logger.Warnw("no Hindi voice installed for say; transliterations will be spoken instead")
	}
	return s, nil
}

// Speak starts one say process for text and returns immediately.
func (s *Say) Speak(text string) error {
	if text == "" {
		return &Failure{Engine: "say", Err: fmt.Errorf("text cannot be empty")}
	}

	s.Stop()

	s.mu.Lock()
	rate := s.rate
	s.mu.Unlock()

	args := []string{"-r", fmt.Sprintf("%d", rate)}
	if s.voice != "" {
		args = append(args, "-v", s.voice)
	}
	args = append(args, text)

	cmd := exec.Command("say", args...)
	if err := cmd.Start(); err != nil {
		return &Failure{Engine: "say", Err: err}
	}

	s.mu.Lock()
	s.cmd = cmd
	s.mu.Unlock()
	s.busy.Store(true)

	go func() {
		if err := cmd.Wait(); err != nil {
			s.logger.Debugw("say exited", "error", err)
		}
		s.busy.Store(false)
	}()

	return nil
}

// IsBusy reports whether a say process is still running.
func (s *Say) IsBusy() bool { return s.busy.Load() }

// Stop kills any utterance in flight.
func (s *Say) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
		s.cmd = nil
	}
	s.busy.Store(false)
}

// SetRate updates the speech rate in words per minute. Safe to call while
// an utterance is in flight.
func (s *Say) SetRate(wpm int) {
	if wpm > 0 {
		s.mu.Lock()
		s.rate = wpm
		s.mu.Unlock()
	}
}

// HasNativeVoice reports whether a Hindi voice was selected.
func (s *Say) HasNativeVoice() bool { return s.voice != "" }

// selectSayHindiVoice picks the first installed preferred Hindi voice, then
// falls back to any voice announcing a hi_IN locale.
func selectSayHindiVoice() string {
	out, err := exec.Command("say", "-v", "?").CombinedOutput()
	if err != nil {
		return ""
	}

	lines := strings.Split(string(out), "\n")
	for _, want := range preferredSayVoices {
		for _, line := range lines {
			if strings.HasPrefix(line, want+" ") || strings.HasPrefix(line, want+"\t") {
				return want
			}
		}
	}
	for _, line := range lines {
		if strings.Contains(line, "hi_IN") {
			if fields := strings.Fields(line); len(fields) > 0 {
				return fields[0]
			}
		}
	}
	return ""
}
