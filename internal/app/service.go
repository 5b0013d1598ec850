package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neomorfeo/offerforge/internal/domain"
)

// WizardService orchestrates wizard sessions: it owns the session
// registry and runs every mutation through the store, gates navigation
// through the step validator, and publishes an event after each
// successful change.
type WizardService struct {
	sessions  *sessionRegistry
	publisher domain.EventPublisher
	validator domain.StepValidator
	ingestor  domain.ImageIngestor
}

// NewWizardService creates a service with the given adapters.
func NewWizardService(publisher domain.EventPublisher, validator domain.StepValidator, ingestor domain.ImageIngestor) *WizardService {
	return &WizardService{
		sessions:  newSessionRegistry(),
		publisher: publisher,
		validator: validator,
		ingestor:  ingestor,
	}
}

// CreateSession starts a new wizard run at the initial state.
func (s *WizardService) CreateSession(ctx context.Context) (*Session, error) {
	session := &Session{
		ID:        newID(),
		Store:     NewStore(),
		CreatedAt: time.Now().UTC(),
	}
	s.sessions.add(session)

	if err := s.publish(ctx, domain.EventSessionCreated, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession returns a live session by id.
func (s *WizardService) GetSession(id string) (*Session, error) {
	return s.sessions.get(id)
}

// DiscardSession drops a session and its draft.
func (s *WizardService) DiscardSession(ctx context.Context, id string) error {
	session, err := s.sessions.get(id)
	if err != nil {
		return err
	}
	if err := s.sessions.remove(id); err != nil {
		return err
	}
	return s.publish(ctx, domain.EventSessionDiscarded, session)
}

// Snapshot returns the current offering for a session.
func (s *WizardService) Snapshot(id string) (domain.Offering, error) {
	session, err := s.sessions.get(id)
	if err != nil {
		return domain.Offering{}, err
	}
	return session.Store.Value(), nil
}

// Preview returns the derived card projection for a session.
func (s *WizardService) Preview(id string) (domain.Preview, error) {
	o, err := s.Snapshot(id)
	if err != nil {
		return domain.Preview{}, err
	}
	return domain.NewPreview(o), nil
}

// Update shallow-merges a partial offering into the session state.
func (s *WizardService) Update(ctx context.Context, id string, p domain.Patch) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventStateUpdated, func(st *Store) {
		st.Update(p)
	})
}

// Navigate moves the wizard. Forward moves are blocked while the
// current step's validation fails; backward moves are always allowed.
// Boundary moves (prev at the first step, next at the last) are no-ops.
func (s *WizardService) Navigate(ctx context.Context, id string, action domain.NavAction) (domain.Offering, error) {
	session, err := s.sessions.get(id)
	if err != nil {
		return domain.Offering{}, err
	}

	current := session.Store.Value()

	if action == domain.NavNext && !domain.CanProceed(current) {
		return domain.Offering{}, &domain.StepBlockedError{
			Step:   current.Step,
			Errors: domain.StepErrors(current),
		}
	}

	next, err := s.validator.Apply(ctx, current.Step, action)
	if err != nil {
		var navErr *domain.NavigationError
		if errors.As(err, &navErr) {
			// Boundary: nothing to do, state unchanged.
			return current, nil
		}
		return domain.Offering{}, err
	}

	return s.mutate(ctx, id, domain.EventStepChanged, func(st *Store) {
		st.GoToStep(next)
	})
}

// GoToStep jumps directly to a step. Out-of-range steps are ignored
// silently and the unchanged snapshot is returned.
func (s *WizardService) GoToStep(ctx context.Context, id string, step domain.Step) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventStepChanged, func(st *Store) {
		st.GoToStep(step)
	})
}

// Reset returns the session to the canonical initial state.
func (s *WizardService) Reset(ctx context.Context, id string) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventSessionReset, func(st *Store) {
		st.Reset()
	})
}

// --- Tiers ---

// AddTier appends a new tier with a fresh id and defaults.
func (s *WizardService) AddTier(ctx context.Context, id, name string, popular bool) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventTiersChanged, func(st *Store) {
		st.AddTier(domain.NewTier(newID(), name, popular))
	})
}

// ApplyRecommendedTiers replaces the tier list with the recommended
// service structure.
func (s *WizardService) ApplyRecommendedTiers(ctx context.Context, id string) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventTiersChanged, func(st *Store) {
		st.SetTiers(domain.TiersFromTemplates(newID, domain.RecommendedServiceTiers))
	})
}

// CloneTier duplicates the tier at index under a fresh id. A stale
// index is a no-op.
func (s *WizardService) CloneTier(ctx context.Context, id string, index int) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventTiersChanged, func(st *Store) {
		o := st.Value()
		if index < 0 || index >= len(o.Tiers) {
			return
		}
		st.AddTier(o.Tiers[index].CloneWithID(newID()))
	})
}

// UpdateTier replaces the tier at index, preserving its id. A stale
// index is a no-op.
func (s *WizardService) UpdateTier(ctx context.Context, id string, index int, t domain.Tier) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventTiersChanged, func(st *Store) {
		o := st.Value()
		if index < 0 || index >= len(o.Tiers) {
			return
		}
		t.ID = o.Tiers[index].ID
		st.UpdateTier(index, t)
	})
}

// RemoveTier drops the tier at index. A stale index is a no-op.
func (s *WizardService) RemoveTier(ctx context.Context, id string, index int) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventTiersChanged, func(st *Store) {
		st.RemoveTier(index)
	})
}

// ReorderTiers moves a tier to a new position.
func (s *WizardService) ReorderTiers(ctx context.Context, id string, from, to int) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventTiersChanged, func(st *Store) {
		st.ReorderTiers(from, to)
	})
}

// --- Features ---

// AddFeature appends a feature placeholder.
func (s *WizardService) AddFeature(ctx context.Context, id, feature string) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventFeaturesChanged, func(st *Store) {
		st.AddFeature(feature)
	})
}

// UpdateFeature replaces the feature at index.
func (s *WizardService) UpdateFeature(ctx context.Context, id string, index int, value string) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventFeaturesChanged, func(st *Store) {
		st.UpdateFeature(index, value)
	})
}

// RemoveFeature drops the feature at index.
func (s *WizardService) RemoveFeature(ctx context.Context, id string, index int) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventFeaturesChanged, func(st *Store) {
		st.RemoveFeature(index)
	})
}

// --- Tags ---

// AddTag appends a tag.
func (s *WizardService) AddTag(ctx context.Context, id, tag string) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventTagsChanged, func(st *Store) {
		st.AddTag(tag)
	})
}

// UpdateTag replaces the tag at index.
func (s *WizardService) UpdateTag(ctx context.Context, id string, index int, value string) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventTagsChanged, func(st *Store) {
		st.UpdateTag(index, value)
	})
}

// RemoveTag drops the tag at index.
func (s *WizardService) RemoveTag(ctx context.Context, id string, index int) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventTagsChanged, func(st *Store) {
		st.RemoveTag(index)
	})
}

// --- Media ---

// AttachMedia runs an upload through the image ingestor and stores the
// resulting reference as the thumbnail or a gallery entry. Ingestion
// failures leave the offering untouched.
func (s *WizardService) AttachMedia(ctx context.Context, id string, kind domain.MediaKind, upload domain.ImageUpload) (domain.Offering, error) {
	session, err := s.sessions.get(id)
	if err != nil {
		return domain.Offering{}, err
	}

	if kind == domain.MediaGallery && len(session.Store.Value().Gallery) >= domain.MaxGalleryImages {
		return domain.Offering{}, &domain.MediaError{
			Message: fmt.Sprintf("Maximum %d gallery images allowed.", domain.MaxGalleryImages),
		}
	}

	ref, err := s.ingestor.Ingest(ctx, upload)
	if err != nil {
		return domain.Offering{}, err
	}

	return s.mutate(ctx, id, domain.EventMediaUpdated, func(st *Store) {
		switch kind {
		case domain.MediaThumbnail:
			thumb := ref
			st.Update(domain.Patch{Thumbnail: &thumb})
		case domain.MediaGallery:
			st.AddGalleryImage(ref)
		}
	})
}

// RemoveThumbnail clears the thumbnail.
func (s *WizardService) RemoveThumbnail(ctx context.Context, id string) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventMediaUpdated, func(st *Store) {
		empty := ""
		st.Update(domain.Patch{Thumbnail: &empty})
	})
}

// RemoveGalleryImage drops the gallery entry at index.
func (s *WizardService) RemoveGalleryImage(ctx context.Context, id string, index int) (domain.Offering, error) {
	return s.mutate(ctx, id, domain.EventMediaUpdated, func(st *Store) {
		st.RemoveGalleryImage(index)
	})
}

// mutate looks up the session, applies fn to its store, publishes the
// event with the resulting snapshot, and returns that snapshot.
func (s *WizardService) mutate(ctx context.Context, id string, event domain.Event, fn func(*Store)) (domain.Offering, error) {
	session, err := s.sessions.get(id)
	if err != nil {
		return domain.Offering{}, err
	}

	fn(session.Store)
	snapshot := session.Store.Value()

	if err := s.publish(ctx, event, session); err != nil {
		return domain.Offering{}, err
	}
	return snapshot, nil
}

func (s *WizardService) publish(ctx context.Context, event domain.Event, session *Session) error {
	if err := s.publisher.Publish(ctx, event, session.ID, session.Store.Value()); err != nil {
		return fmt.Errorf("publishing event %q: %w", event, err)
	}
	return nil
}
