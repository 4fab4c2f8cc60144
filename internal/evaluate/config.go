package evaluate

import "time"

// Config holds evaluation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds the model call. Expiry surfaces as a transport
	// failure, not as a fallback verdict.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for explanation evaluation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.3,
		Timeout:     30 * time.Second,
	}
}
