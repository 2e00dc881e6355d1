package deckgen

// Config holds deck generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	MaxCards    int
}

// DefaultConfig returns sensible defaults for deck generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
		MaxCards:    50,
	}
}
