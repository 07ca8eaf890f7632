package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/varnamala/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "varnamala [letter]",
		Short: "Hindi alphabet trainer",
		Long: `varnamala teaches the Hindi alphabet by speaking each letter aloud.

It walks the ordered alphabet (vowels first, then consonants), repeats
each letter, and can loop over the whole alphabet hands-free.

Examples:
  varnamala                      # Speak the first letter
  varnamala क                    # Speak a specific letter
  varnamala ka                   # Look a letter up by transliteration
  varnamala --continuous         # Loop over the whole alphabet
  varnamala --mode vowels --list # Print the vowels with their matras`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.varnamala.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Engine, "engine", "e", flags.Engine, "Speech engine: espeak, say, openai")
	cmd.Flags().IntVarP(&flags.Rate, "rate", "r", flags.Rate, "Speech rate in words per minute")
	cmd.Flags().IntVar(&flags.Repeats, "repeats", flags.Repeats, "How many times to speak each letter")
	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", flags.Mode, "Letter filter: both, vowels, consonants")
	cmd.Flags().BoolVarP(&flags.Continuous, "continuous", "c", false, "Loop over all visible letters until interrupted")
	cmd.Flags().BoolVar(&flags.AutoPlay, "auto-play", flags.AutoPlay, "Speak a letter as soon as navigation lands on it")
	cmd.Flags().BoolVarP(&flags.List, "list", "l", false, "Print the visible letters instead of speaking")
	cmd.Flags().StringVar(&flags.DataFile, "data", "", "Letter data file (default is the embedded alphabet)")

	// Enrichment flags
	cmd.Flags().BoolVar(&flags.Enrich, "enrich", false, "Fill missing example words in the data file (requires --data)")
	cmd.Flags().StringVar(&flags.EnrichBackend, "enrich-backend", flags.EnrichBackend, "Example generator: openai or gemini")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, echo, nova, shimmer, ...")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("speech.engine", cmd.Flags().Lookup("engine"))
	viper.BindPFlag("speech.rate", cmd.Flags().Lookup("rate"))
	viper.BindPFlag("speech.repeats", cmd.Flags().Lookup("repeats"))
	viper.BindPFlag("speech.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("speech.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("speech.openai_speed", cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag("alphabet.mode", cmd.Flags().Lookup("mode"))
	viper.BindPFlag("alphabet.data", cmd.Flags().Lookup("data"))
	viper.BindPFlag("enrich.backend", cmd.Flags().Lookup("enrich-backend"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".varnamala" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".varnamala")
	}

	// Environment variables
	viper.SetEnvPrefix("VARNAMALA")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("speech.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("enrich.gemini_key")
}
