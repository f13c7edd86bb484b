package ports

import "context"

// TextGenerator abstracts the hosted generative-language API.
type TextGenerator interface {
	// Enabled reports whether the generator has a credential configured.
	Enabled() bool
	// Generate sends a single prompt and returns the plain-text completion.
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}
