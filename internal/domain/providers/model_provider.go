package providers

import "context"

// Generator produces grounded answer text from a prompt.
type Generator interface {
	// Generate runs one completion. Implementations honor ctx cancellation
	// and apply their own request timeout.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into dense vectors for similarity search.
type Embedder interface {
	// Embed returns the vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per input text, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
