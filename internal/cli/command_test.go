package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "varnamala [letter]" {
		t.Errorf("Expected Use to be 'varnamala [letter]', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "Hindi alphabet trainer") {
		t.Errorf("Expected Short description to contain 'Hindi alphabet trainer'")
	}

	// Test that flags are set up
	flagTests := []struct {
		name     string
		expected bool
	}{
		{"config", true},
		{"engine", true},
		{"rate", true},
		{"repeats", true},
		{"mode", true},
		{"continuous", true},
		{"auto-play", true},
		{"list", true},
		{"data", true},
		{"enrich", true},
		{"enrich-backend", true},
		{"openai-model", true},
		{"openai-voice", true},
		{"openai-speed", true},
	}

	for _, tt := range flagTests {
		t.Run("flag_"+tt.name, func(t *testing.T) {
			var flag *pflag.Flag
			if tt.name == "config" {
				flag = cmd.PersistentFlags().Lookup(tt.name)
			} else {
				flag = cmd.Flags().Lookup(tt.name)
			}
			if flag == nil && tt.expected {
				t.Errorf("Expected flag %s to exist", tt.name)
			}
		})
	}
}

func TestFlagDefaults(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	tests := []struct {
		name     string
		expected string
	}{
		{"engine", "espeak"},
		{"rate", "150"},
		{"repeats", "2"},
		{"mode", "both"},
		{"auto-play", "true"},
		{"openai-model", "gpt-4o-mini-tts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("%s flag not found", tt.name)
			}
			if flag.DefValue != tt.expected {
				t.Errorf("Expected default %s to be %s, got %s", tt.name, tt.expected, flag.DefValue)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		cfgFile   string
		setupFunc func(t *testing.T) string
	}{
		{
			name:    "with config file",
			cfgFile: "test-config.yaml",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				cfgPath := filepath.Join(tmpDir, "test-config.yaml")
				content := `speech:
  engine: espeak
  rate: 120
alphabet:
  mode: vowels`
				err := os.WriteFile(cfgPath, []byte(content), 0644)
				if err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
		},
		{
			name:    "without config file",
			cfgFile: "",
			setupFunc: func(t *testing.T) string {
				return ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper for each test
			viper.Reset()

			cfgPath := tt.setupFunc(t)
			if tt.cfgFile != "" && cfgPath != "" {
				tt.cfgFile = cfgPath
			}

			InitConfig(tt.cfgFile)

			// Test environment variable prefix
			os.Setenv("VARNAMALA_TEST_VAR", "test-value")
			defer os.Unsetenv("VARNAMALA_TEST_VAR")

			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}
		})
	}
}

func TestGetOpenAIKey(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{
			name:      "from environment",
			envKey:    "env-test-key",
			configKey: "config-test-key",
			expected:  "env-test-key",
		},
		{
			name:      "from config when no env",
			envKey:    "",
			configKey: "config-test-key",
			expected:  "config-test-key",
		},
		{
			name:      "empty when neither set",
			envKey:    "",
			configKey: "",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()

			if tt.envKey != "" {
				os.Setenv("OPENAI_API_KEY", tt.envKey)
				defer os.Unsetenv("OPENAI_API_KEY")
			} else {
				os.Unsetenv("OPENAI_API_KEY")
			}
			if tt.configKey != "" {
				viper.Set("speech.openai_key", tt.configKey)
			}

			if got := GetOpenAIKey(); got != tt.expected {
				t.Errorf("GetOpenAIKey() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetGeminiKey(t *testing.T) {
	viper.Reset()
	os.Unsetenv("GEMINI_API_KEY")

	if got := GetGeminiKey(); got != "" {
		t.Errorf("GetGeminiKey() = %q, want empty", got)
	}

	os.Setenv("GEMINI_API_KEY", "gem-key")
	defer os.Unsetenv("GEMINI_API_KEY")
	if got := GetGeminiKey(); got != "gem-key" {
		t.Errorf("GetGeminiKey() = %q, want gem-key", got)
	}
}
