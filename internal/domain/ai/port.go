package ai

import "context"

// Client port: kirim prompt ke provider, balikin hasil yang sudah
// dinormalisasi. Implementations must not retry on their own; retry
// policy belongs to the caller.
type Client interface {
	Analyze(ctx context.Context, prompt string) (*Result, error)
}
