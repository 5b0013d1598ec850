package app

import "github.com/google/uuid"

// newID produces a globally unique identifier for tiers and sessions.
// Isolated here so the ID strategy can evolve independently.
func newID() string {
	return uuid.NewString()
}
