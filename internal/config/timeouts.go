package config

import (
	"fmt"
	"time"
)

// GenerationTimeouts centralizes timeout configuration for generation
// round trips.
//
// KEY INSIGHT: in Go the SHORTEST timeout in the chain wins. If the HTTP
// client allows ten minutes but the call is wrapped in a 90-second context,
// the context wins. Long-form section generation regularly takes minutes,
// so every layer here is sized for that and PerCallTimeout is the canonical
// bound the engine applies.
type GenerationTimeouts struct {
	// PerCallTimeout bounds one generation round trip, context included.
	// A failed or timed-out call is never retried transparently; the
	// caller retries, and each retry is a fresh attempt.
	PerCallTimeout time.Duration `yaml:"per_call_timeout"`

	// HTTPClientTimeout is the transport-level bound applied to the
	// generation client's http.Client; it must be at least PerCallTimeout
	// or it silently becomes the effective limit.
	HTTPClientTimeout time.Duration `yaml:"http_client_timeout"`
}

// DefaultGenerationTimeouts returns timeouts sized for long-form drafting.
func DefaultGenerationTimeouts() GenerationTimeouts {
	return GenerationTimeouts{
		PerCallTimeout:    5 * time.Minute,
		HTTPClientTimeout: 6 * time.Minute,
	}
}

// Validate checks internal consistency.
func (t *GenerationTimeouts) Validate() error {
	if t.PerCallTimeout <= 0 {
		return fmt.Errorf("timeouts.per_call_timeout must be positive")
	}
	if t.HTTPClientTimeout < t.PerCallTimeout {
		return fmt.Errorf("timeouts.http_client_timeout (%s) must be >= per_call_timeout (%s)",
			t.HTTPClientTimeout, t.PerCallTimeout)
	}
	return nil
}
