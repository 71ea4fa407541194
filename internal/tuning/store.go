package tuning

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oshokin/facetrack/internal/domain/face"
	"github.com/oshokin/facetrack/internal/logger"
	repo "github.com/oshokin/facetrack/internal/repository/multipliers"
)

// Store holds the current multipliers. Current is lock-free so the frame
// consumer never waits on an operator's write.
type Store struct {
	// repo persists tuned multipliers; nil keeps them in memory only.
	repo repo.Repository
	// current is the record in effect.
	current atomic.Pointer[face.MultipliersRecord]
	// mu serializes writers.
	mu sync.Mutex
}

// Load creates a store from the persisted record, falling back to defaults
// when nothing has been tuned yet.
func Load(ctx context.Context, repository repo.Repository, defaults face.Multipliers) (*Store, error) {
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("default multipliers: %w", err)
	}

	s := &Store{repo: repository}
	s.current.Store(&face.MultipliersRecord{Multipliers: defaults})

	if repository == nil {
		return s, nil
	}

	record, err := repository.Load(ctx)

	switch {
	case err == nil:
		if record == nil {
			break
		}

		if err = record.Multipliers.Validate(); err != nil {
			return nil, fmt.Errorf("persisted multipliers: %w", err)
		}

		s.current.Store(record)
		logger.InfoKV(ctx, "Loaded tuned multipliers", "updated_at", record.UpdatedAt, "actor", record.Actor)
	case errors.Is(err, repo.ErrNotFound):
		// Keep defaults.
	default:
		return nil, fmt.Errorf("load multipliers: %w", err)
	}

	return s, nil
}

// Current returns the record in effect. It must not be modified.
func (s *Store) Current() *face.MultipliersRecord {
	return s.current.Load()
}

// Multipliers returns the multipliers in effect.
func (s *Store) Multipliers() face.Multipliers {
	return s.current.Load().Multipliers
}

// Set validates and persists m, then makes it current.
// On failure the current record is left untouched.
func (s *Store) Set(ctx context.Context, actor *face.Actor, m face.Multipliers) (*face.MultipliersRecord, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := &face.MultipliersRecord{
		Multipliers: m,
		UpdatedAt:   time.Now(),
	}

	if actor != nil {
		clone := *actor
		record.Actor = &clone
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, record); err != nil {
			logger.Errorf(ctx, "Failed to persist multipliers: %v", err)

			return nil, fmt.Errorf("persist multipliers: %w", err)
		}
	}

	s.current.Store(record)

	logger.InfoKV(ctx, "Multipliers updated",
		"openness_exponent", m.OpennessExponent,
		"wide_multiplier", m.WideMultiplier,
		"movement_multiplier", m.MovementMultiplier,
		"expression_multiplier", m.ExpressionMultiplier,
		"actor", record.Actor)

	return record, nil
}
