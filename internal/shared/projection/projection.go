package projection

import "time"

// Metadata captures the lifecycle of an in-memory collection.
type Metadata struct {
	// HydratedAt is when the collection was seeded from durable storage.
	HydratedAt time.Time
	// UpdatedAt is the time of the last successful mutation (or hydration).
	UpdatedAt time.Time
	// Revision increases by one on every observable change.
	Revision uint64
}

// Projection pairs a view of a collection with its metadata.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}

// New builds a projection around entity.
func New[T any](entity T, meta Metadata) *Projection[T] {
	return &Projection[T]{Entity: entity, Metadata: meta}
}
