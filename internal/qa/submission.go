// Package qa holds the question/answer domain: entity objects, the per-entity
// managers that mirror an in-memory cache against the store, and the lazy
// cross-reference resolution between them.
package qa

import "time"

// Submission carries the fields shared by every user-authored entity.
// Identity is the id: two submissions of the same kind with equal ids are the
// same entity as far as the caches are concerned.
type Submission struct {
	ID        int64
	Author    string
	CreatedAt time.Time
}
