package app

import (
	"sync"

	"github.com/neomorfeo/offerforge/internal/domain"
)

// Store is the single source of truth for one editing session. It holds
// one Offering value and replaces it wholesale on every mutation; no
// method ever edits the held value in place.
//
// Writes are serialized by a mutex because the HTTP host is
// multi-threaded, unlike the original single-threaded event loop this
// model comes from. Subscribers are invoked synchronously with the new
// snapshot after each successful mutation, outside the lock.
type Store struct {
	mu    sync.Mutex
	state domain.Offering

	subMu   sync.Mutex
	subs    map[int]func(domain.Offering)
	nextSub int
}

// NewStore creates a store holding the canonical initial offering.
func NewStore() *Store {
	return &Store{
		state: domain.NewOffering(),
		subs:  make(map[int]func(domain.Offering)),
	}
}

// Value returns a deep-copied snapshot of the current offering.
func (s *Store) Value() domain.Offering {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers a callback invoked with each new snapshot. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(domain.Offering)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// mutate applies fn to a copy of the state. When fn reports a change,
// the copy replaces the held state atomically and subscribers are
// notified with a snapshot.
func (s *Store) mutate(fn func(domain.Offering) (domain.Offering, bool)) {
	s.mu.Lock()
	next, changed := fn(s.state.Clone())
	if !changed {
		s.mu.Unlock()
		return
	}
	s.state = next
	snapshot := next.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
}

func (s *Store) notify(snapshot domain.Offering) {
	s.subMu.Lock()
	subs := make([]func(domain.Offering), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// Update shallow-merges a partial offering into the current state.
func (s *Store) Update(p domain.Patch) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		return p.Apply(o), true
	})
}

// Next advances one step, clamped at the last step.
func (s *Store) Next() {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		if o.Step >= domain.TotalSteps {
			return o, false
		}
		o.Step++
		return o, true
	})
}

// Prev moves one step back, clamped at the first step.
func (s *Store) Prev() {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		if o.Step <= domain.StepType {
			return o, false
		}
		o.Step--
		return o, true
	})
}

// GoToStep jumps directly to a step. Out-of-range requests are ignored.
func (s *Store) GoToStep(step domain.Step) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		if step < domain.StepType || step > domain.TotalSteps {
			return o, false
		}
		o.Step = step
		return o, true
	})
}

// Reset replaces the state with the canonical initial offering.
func (s *Store) Reset() {
	s.mutate(func(domain.Offering) (domain.Offering, bool) {
		return domain.NewOffering(), true
	})
}

// --- Tiers ---

// AddTier appends a tier.
func (s *Store) AddTier(t domain.Tier) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		o.Tiers = append(o.Tiers, t.Clone())
		return o, true
	})
}

// UpdateTier replaces the tier at index. Stale indices are a no-op.
func (s *Store) UpdateTier(index int, t domain.Tier) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		if index < 0 || index >= len(o.Tiers) {
			return o, false
		}
		o.Tiers[index] = t.Clone()
		return o, true
	})
}

// RemoveTier drops the tier at index. Stale indices are a no-op.
func (s *Store) RemoveTier(index int) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		if index < 0 || index >= len(o.Tiers) {
			return o, false
		}
		o.Tiers = append(o.Tiers[:index], o.Tiers[index+1:]...)
		return o, true
	})
}

// ReorderTiers moves the tier at from to position to, shifting the
// rest. Out-of-range indices are a no-op.
func (s *Store) ReorderTiers(from, to int) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		n := len(o.Tiers)
		if from < 0 || from >= n || to < 0 || to >= n || from == to {
			return o, false
		}
		moved := o.Tiers[from]
		o.Tiers = append(o.Tiers[:from], o.Tiers[from+1:]...)
		o.Tiers = append(o.Tiers[:to], append([]domain.Tier{moved}, o.Tiers[to:]...)...)
		return o, true
	})
}

// SetTiers replaces the whole tier list.
func (s *Store) SetTiers(tiers []domain.Tier) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		o.Tiers = make([]domain.Tier, len(tiers))
		for i, t := range tiers {
			o.Tiers[i] = t.Clone()
		}
		return o, true
	})
}

// --- Features ---

// AddFeature appends a feature, typically an empty placeholder awaiting
// input.
func (s *Store) AddFeature(feature string) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		o.Features = append(o.Features, feature)
		return o, true
	})
}

// UpdateFeature replaces the feature at index. Stale indices are a no-op.
func (s *Store) UpdateFeature(index int, value string) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		if index < 0 || index >= len(o.Features) {
			return o, false
		}
		o.Features[index] = value
		return o, true
	})
}

// RemoveFeature drops the feature at index. Stale indices are a no-op.
func (s *Store) RemoveFeature(index int) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		if index < 0 || index >= len(o.Features) {
			return o, false
		}
		o.Features = append(o.Features[:index], o.Features[index+1:]...)
		return o, true
	})
}

// --- Tags ---

// AddTag appends a tag.
func (s *Store) AddTag(tag string) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		o.Tags = append(o.Tags, tag)
		return o, true
	})
}

// UpdateTag replaces the tag at index. Stale indices are a no-op.
func (s *Store) UpdateTag(index int, value string) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		if index < 0 || index >= len(o.Tags) {
			return o, false
		}
		o.Tags[index] = value
		return o, true
	})
}

// RemoveTag drops the tag at index. Stale indices are a no-op.
func (s *Store) RemoveTag(index int) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		if index < 0 || index >= len(o.Tags) {
			return o, false
		}
		o.Tags = append(o.Tags[:index], o.Tags[index+1:]...)
		return o, true
	})
}

// --- Media ---

// AddGalleryImage appends an image reference to the gallery.
func (s *Store) AddGalleryImage(ref string) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		o.Gallery = append(o.Gallery, ref)
		return o, true
	})
}

// RemoveGalleryImage drops the gallery entry at index. Stale indices
// are a no-op.
func (s *Store) RemoveGalleryImage(index int) {
	s.mutate(func(o domain.Offering) (domain.Offering, bool) {
		if index < 0 || index >= len(o.Gallery) {
			return o, false
		}
		o.Gallery = append(o.Gallery[:index], o.Gallery[index+1:]...)
		return o, true
	})
}
