package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeberg.org/snonux/varnamala/internal/alphabet"
	"codeberg.org/snonux/varnamala/internal/cli"
	"codeberg.org/snonux/varnamala/internal/enrich"
	"codeberg.org/snonux/varnamala/internal/grapheme"
	"codeberg.org/snonux/varnamala/internal/playback"
	"codeberg.org/snonux/varnamala/internal/prefs"
	"codeberg.org/snonux/varnamala/internal/speech"
	"codeberg.org/snonux/varnamala/internal/trainer"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	zl, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	// Handle --enrich flag
	if flags.Enrich {
		return runEnrich(flags, logger)
	}

	entries, err := loadEntries(flags)
	if err != nil {
		return err
	}
	index, err := alphabet.NewIndex(entries)
	if err != nil {
		return err
	}

	mode, err := alphabet.ParseFilterMode(flags.Mode)
	if err != nil {
		return err
	}

	// Handle --list flag
	if flags.List {
		if !index.SetMode(mode) {
			return fmt.Errorf("the dataset has no %s", mode)
		}
		return listLetters(index)
	}

	store := openPrefs(logger)
	if store != nil {
		defer store.Close()
	}

	settings := prefs.DefaultSettings()
	if store != nil {
		if settings, err = store.Load(); err != nil {
			logger.Warnw("could not load saved settings", "error", err)
			settings = prefs.DefaultSettings()
		}
	}

	// Explicit flags win over saved settings.
	if !cmd.Flags().Changed("mode") {
		mode = settings.Mode
	}
	if !cmd.Flags().Changed("rate") {
		flags.Rate = settings.Rate
	}
	if !index.SetMode(mode) {
		return fmt.Errorf("the dataset has no %s", mode)
	}
	index.Seek(settings.Cursor)

	speaker, err := speech.NewResilient(speakerFactory(flags, logger), logger)
	if err != nil {
		return fmt.Errorf("failed to start speech engine: %w", err)
	}
	speaker.SetRate(flags.Rate)

	cfg := trainer.DefaultConfig()
	cfg.AutoPlay = flags.AutoPlay
	cfg.Repeats = flags.Repeats
	session := trainer.New(index, speaker, cfg, logger)

	// Jump to the requested letter, by symbol or transliteration.
	if len(args) > 0 {
		if !session.Find(args[0]) {
			return fmt.Errorf("no letter matches %q", args[0])
		}
	}

	if flags.Continuous {
		err = runContinuous(session, logger)
	} else {
		err = runSingle(session)
	}
	if err != nil {
		return err
	}

	if store != nil {
		settings.Rate = flags.Rate
		settings.Mode = session.Mode()
		settings.Cursor = session.Position()
		if err := store.Save(settings); err != nil {
			logger.Warnw("could not save settings", "error", err)
		}
	}
	return nil
}

// runSingle plays the current letter's repeat cycle and waits for it to
// finish.
func runSingle(session *trainer.Trainer) error {
	done := make(chan struct{}, 1)
	session.SetListeners(func(st playback.State) {
		if st == playback.Idle {
			done <- struct{}{}
		}
	}, nil)

	entry := session.Current()
	fmt.Printf("%s  (%s)\n", entry.Symbol, entry.Pronunciation)

	session.Play()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	select {
	case <-done:
	case <-interrupt:
		session.Stop()
	}
	return nil
}

// runContinuous loops over the visible letters until the user interrupts.
func runContinuous(session *trainer.Trainer, logger *zap.SugaredLogger) error {
	session.SetListeners(nil, func(e alphabet.Entry) {
		fmt.Printf("%s  (%s)\n", e.Symbol, e.Pronunciation)
	})

	entry := session.Current()
	fmt.Printf("%s  (%s)\n", entry.Symbol, entry.Pronunciation)
	fmt.Fprintln(os.Stderr, "Press Ctrl-C to stop")

	session.StartContinuous()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)
	<-interrupt

	session.StopContinuous()
	logger.Infow("continuous playback stopped")
	return nil
}

// listLetters prints the visible letters, highlighting each vowel's
// dependent form inside its example word.
func listLetters(index *alphabet.Index) error {
	seg := grapheme.NewSegmenter()
	bold := func(s string) string { return "\x1b[1;33m" + s + "\x1b[0m" }
	identity := func(s string) string { return s }

	for i := 0; i < index.Len(); i++ {
		if !index.Visible(i) {
			continue
		}
		e := index.Entry(i)
		line := fmt.Sprintf("%2d  %s  %-6s", i+1, e.Symbol, e.Pronunciation)
		if e.DependentForm != "" {
			line += "  matra: " + e.DependentForm
		}
		if e.Example != "" {
			line += "  " + seg.HighlightFunc(e.Example, e.DependentForm, identity, bold)
		}
		fmt.Println(line)
	}
	return nil
}

// runEnrich fills missing example words in the given data file.
func runEnrich(flags *cli.Flags, logger *zap.SugaredLogger) error {
	if flags.DataFile == "" {
		return fmt.Errorf("--enrich requires --data pointing at a letter file")
	}

	ctx := context.Background()
	var gen enrich.Generator
	var err error
	switch flags.EnrichBackend {
	case "gemini":
		gen, err = enrich.NewGeminiGenerator(ctx, cli.GetGeminiKey(), "")
	case "openai":
		gen, err = enrich.NewOpenAIGenerator(cli.GetOpenAIKey(), "")
	default:
		return fmt.Errorf("unknown enrich backend %q", flags.EnrichBackend)
	}
	if err != nil {
		return err
	}

	filled, err := enrich.EnrichFile(ctx, flags.DataFile, gen, logger)
	if err != nil {
		return err
	}
	fmt.Printf("Filled %d example word(s) in %s\n", filled, flags.DataFile)
	return nil
}

// openPrefs opens the settings store. Persistence is best effort: trouble
// opening the store disables it rather than failing the run.
func openPrefs(logger *zap.SugaredLogger) *prefs.Store {
	path, err := prefs.DefaultPath()
	if err != nil {
		logger.Warnw("settings disabled", "error", err)
		return nil
	}
	store, err := prefs.Open(path)
	if err != nil {
		logger.Warnw("settings disabled", "error", err)
		return nil
	}
	return store
}

// loadEntries reads the letter data file, or the embedded alphabet.
func loadEntries(flags *cli.Flags) ([]alphabet.Entry, error) {
	if flags.DataFile != "" {
		return alphabet.LoadFile(flags.DataFile)
	}
	return alphabet.Default()
}

// speakerFactory builds the engine the --engine flag selects. The factory
// is invoked again whenever the engine needs to be replaced.
func speakerFactory(flags *cli.Flags, logger *zap.SugaredLogger) speech.Factory {
	switch flags.Engine {
	case "say":
		return func() (speech.Speaker, error) {
			return speech.NewSay(flags.Rate, logger)
		}
	case "openai":
		return func() (speech.Speaker, error) {
			cfg := speech.DefaultOpenAIConfig()
			cfg.APIKey = cli.GetOpenAIKey()
			cfg.Model = flags.OpenAIModel
			cfg.Voice = flags.OpenAIVoice
			cfg.Speed = flags.OpenAISpeed
			if home, err := os.UserHomeDir(); err == nil {
				cfg.CacheDir = filepath.Join(home, ".local", "state", "varnamala", "tts-cache")
			}
			return speech.NewOpenAI(cfg, logger)
		}
	default:
		return func() (speech.Speaker, error) {
			return speech.NewESpeak(nil, logger)
		}
	}
}
