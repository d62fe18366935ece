package repository

import "context"

// SequenceAllocator hands out gapless, strictly increasing numbers per counter name.
// A counter that does not exist yet starts at 0, so the first Next returns 1.
// Implementations must increment atomically at the storage layer.
type SequenceAllocator interface {
	Next(ctx context.Context, name string) (int64, error)
	// Peek returns the last issued value, 0 for an unknown counter.
	Peek(ctx context.Context, name string) (int64, error)
}
