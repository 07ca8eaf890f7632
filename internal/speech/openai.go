package speech

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIConfig holds configuration for the OpenAI speech engine.
type OpenAIConfig struct {
	APIKey   string
	Model    string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	Voice    string  // "alloy", "nova", "shimmer", ...
	Speed    float64 // 0.25 to 4.0
	CacheDir string  // on-disk synthesis cache; empty disables caching
	Timeout  time.Duration
}

// DefaultOpenAIConfig returns default configuration for Hindi synthesis.
func DefaultOpenAIConfig() *OpenAIConfig {
	return &OpenAIConfig{
		Model:   "gpt-4o-mini-tts",
		Voice:   "alloy",
		Speed:   0.9,
		Timeout: 30 * time.Second,
	}
}

// OpenAI synthesizes utterances through the OpenAI speech API and plays
// them locally. The multilingual models pronounce Devanagari directly, so
// the engine always reports a native voice.
type OpenAI struct {
	client  *openai.Client
	config  *OpenAIConfig
	mu      sync.Mutex // guards config.Speed
	playing atomic.Bool
	logger  *zap.SugaredLogger
}

// NewOpenAI creates an OpenAI speaker.
func NewOpenAI(config *OpenAIConfig, logger *zap.SugaredLogger) (*OpenAI, error) {
	if config == nil {
		config = DefaultOpenAIConfig()
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	if config.CacheDir != "" {
		if err := os.MkdirAll(config.CacheDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	return &OpenAI{
		client: openai.NewClient(config.APIKey),
		config: config,
		logger: logger,
	}, nil
}

// Speak synthesizes text (or reuses a cached synthesis) and starts playing
// it; it returns as soon as playback has started.
func (o *OpenAI) Speak(text string) error {
	if text == "" {
		return &Failure{Engine: "openai", Err: fmt.Errorf("text cannot be empty")}
	}

	data, err := o.synthesize(text)
	if err != nil {
		return &Failure{Engine: "openai", Err: err}
	}

	streamer, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return &Failure{Engine: "openai", Err: fmt.Errorf("failed to decode audio: %w", err)}
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		return &Failure{Engine: "openai", Err: fmt.Errorf("failed to init audio device: %w", err)}
	}

	o.playing.Store(true)
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		streamer.Close()
		o.playing.Store(false)
	})))

	return nil
}

// IsBusy reports whether playback is still running.
func (o *OpenAI) IsBusy() bool { return o.playing.Load() }

// Stop drops any queued audio.
func (o *OpenAI) Stop() {
	speaker.Clear()
	o.playing.Store(false)
}

// SetRate maps words per minute onto the API speed parameter, using 150 wpm
// as the 1.0 baseline and clamping to the API's 0.25-4.0 range. Safe to
// call while playback is running.
func (o *OpenAI) SetRate(wpm int) {
	speed := float64(wpm) / 150.0
	if speed < 0.25 {
		speed = 0.25
	} else if speed > 4.0 {
		speed = 4.0
	}
	o.mu.Lock()
	o.config.Speed = speed
	o.mu.Unlock()
}

// HasNativeVoice reports Devanagari capability; the OpenAI voices are
// multilingual.
func (o *OpenAI) HasNativeVoice() bool { return true }

// synthesize returns mp3 bytes for text, consulting the cache first. The
// speed is snapshotted once so a concurrent SetRate cannot split the cache
// key from the request.
func (o *OpenAI) synthesize(text string) ([]byte, error) {
	o.mu.Lock()
	speed := o.config.Speed
	o.mu.Unlock()

	cacheFile := ""
	if o.config.CacheDir != "" {
		cacheFile = o.cacheFilePath(text, speed)
		if data, err := os.ReadFile(cacheFile); err == nil {
			return data, nil
		}
	}

	ctx := context.Background()
	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.config.Model),
		Input:          text,
		Voice:          openai.SpeechVoice(o.config.Voice),
		Speed:          speed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio response: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from OpenAI")
	}

	if cacheFile != "" {
		if err := os.MkdirAll(filepath.Dir(cacheFile), 0755); err == nil {
			if werr := os.WriteFile(cacheFile, data, 0644); werr != nil {
				o.logger.Debugw("could not cache synthesis", "error", werr)
			}
		}
	}
	return data, nil
}

// cacheFilePath keys the cache on text and the synthesis settings.
func (o *OpenAI) cacheFilePath(text string, speed float64) string {
	h := md5.New()
	h.Write([]byte(text))
	h.Write([]byte(o.config.Model))
	h.Write([]byte(o.config.Voice))
	h.Write([]byte(fmt.Sprintf("%.2f", speed)))
	hash := hex.EncodeToString(h.Sum(nil))

	// First 2 chars as subdirectory for better file system performance.
	return filepath.Join(o.config.CacheDir, hash[:2], hash[2:]+".mp3")
}
