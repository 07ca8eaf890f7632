package speech

import "fmt"

// Speaker is the capability set the rest of the application depends on.
// Engines speak asynchronously: Speak returns once the utterance has been
// handed to the engine, and IsBusy reports (best-effort) whether audio is
// still being produced.
type Speaker interface {
	// Speak starts speaking text. It returns a *Failure when the engine
	// could not produce audio.
	Speak(text string) error

	// IsBusy reports whether an utterance is still in flight.
	IsBusy() bool

	// SetRate sets the speech rate in words per minute.
	SetRate(wpm int)

	// Stop cuts off any utterance in flight, so a new one never overlaps.
	Stop()

	// HasNativeVoice reports whether the engine has a confirmed Devanagari
	// voice. Without one, callers substitute the transliteration so the
	// user never hears silence.
	HasNativeVoice() bool
}

// Failure means the engine could not produce audio for an utterance. It is
// recoverable: the schedule treats the utterance as silent and moves on.
type Failure struct {
	Engine string
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: speech failed: %v", f.Engine, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// ContainsDevanagari reports whether text has at least one code point in
// the Devanagari block.
func ContainsDevanagari(text string) bool {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}
