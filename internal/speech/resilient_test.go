package speech

import (
	"errors"
	"fmt"
	"testing"

	"codeberg.org/snonux/varnamala/internal/testutil"
	"go.uber.org/zap"
)

func TestResilientSpeakReinitializesAndRetries(t *testing.T) {
	first := &testutil.MockSpeaker{SpeakErrs: []error{fmt.Errorf("device lost")}}
	second := &testutil.MockSpeaker{}

	built := 0
	factory := func() (Speaker, error) {
		built++
		if built == 1 {
			return first, nil
		}
		return second, nil
	}

	r, err := NewResilient(factory, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewResilient() error: %v", err)
	}
	r.SetRate(200)

	if err := r.Speak("अ"); err != nil {
		t.Fatalf("Speak() error after retry: %v", err)
	}

	if built != 2 {
		t.Errorf("factory called %d times, want 2", built)
	}
	if got := second.SpokenTexts(); len(got) != 1 || got[0] != "अ" {
		t.Errorf("replacement engine spoke %v, want [अ]", got)
	}
	if first.StopCalls != 1 {
		t.Errorf("failed engine Stop called %d times, want 1", first.StopCalls)
	}
	if second.Rate != 200 {
		t.Errorf("replacement engine rate = %d, want 200 restored", second.Rate)
	}
}

func TestResilientOpensBreakerAfterRepeatedFailures(t *testing.T) {
	factory := func() (Speaker, error) {
		return &testutil.MockSpeaker{
			SpeakErrs: []error{
				errors.New("broken"), errors.New("broken"), errors.New("broken"),
				errors.New("broken"), errors.New("broken"), errors.New("broken"),
				errors.New("broken"), errors.New("broken"),
			},
		}, nil
	}

	r, err := NewResilient(factory, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewResilient() error: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := r.Speak("क"); err == nil {
			t.Fatalf("Speak() call %d should fail", i+1)
		}
	}

	// Breaker is open now; Speak degrades to a no-op failure.
	err = r.Speak("ख")
	if err == nil {
		t.Fatal("Speak() with open breaker should fail")
	}
	var failure *Failure
	if !errors.As(err, &failure) {
		t.Fatalf("error %v should be a *Failure", err)
	}
}

func TestResilientFactoryFailureKeepsCurrentEngine(t *testing.T) {
	engine := &testutil.MockSpeaker{SpeakErrs: []error{errors.New("glitch")}}

	built := 0
	factory := func() (Speaker, error) {
		built++
		if built == 1 {
			return engine, nil
		}
		return nil, errors.New("no engine available")
	}

	r, err := NewResilient(factory, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewResilient() error: %v", err)
	}

	if err := r.Speak("ग"); err == nil {
		t.Fatal("Speak() should surface the original failure when rebuild fails")
	}
	if engine.StopCalls != 0 {
		t.Error("engine should not be stopped when no replacement was built")
	}
}

func TestResilientDelegates(t *testing.T) {
	engine := &testutil.MockSpeaker{NativeVoice: true, BusyPolls: []bool{true}}
	r, err := NewResilient(func() (Speaker, error) { return engine, nil }, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewResilient() error: %v", err)
	}

	if !r.HasNativeVoice() {
		t.Error("HasNativeVoice() should delegate")
	}
	if !r.IsBusy() {
		t.Error("IsBusy() should delegate")
	}
	r.Stop()
	if engine.StopCalls != 1 {
		t.Errorf("Stop called %d times on engine, want 1", engine.StopCalls)
	}
}
