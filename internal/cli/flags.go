package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	Engine     string
	Rate       int
	Repeats    int
	Mode       string
	Continuous bool
	AutoPlay   bool
	List       bool
	DataFile   string

	// Enrichment flags
	Enrich        bool
	EnrichBackend string

	// OpenAI flags
	OpenAIModel string
	OpenAIVoice string
	OpenAISpeed float64
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Engine:        "espeak",
		Rate:          150,
		Repeats:       2,
		Mode:          "both",
		AutoPlay:      true,
		EnrichBackend: "openai",
		OpenAIModel:   "gpt-4o-mini-tts",
		OpenAIVoice:   "alloy",
		OpenAISpeed:   0.9,
	}
}
