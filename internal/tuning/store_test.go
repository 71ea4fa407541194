package tuning

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/facetrack/internal/domain/face"
	repo "github.com/oshokin/facetrack/internal/repository/multipliers"
)

var (
	errTestLoad = errors.New("test load error")
	errTestSave = errors.New("test save error")
)

// memoryRepository is a minimal in-memory Repository implementation for tests.
type memoryRepository struct {
	// record is returned from Load.
	record *face.MultipliersRecord
	// loadErr is returned from Load.
	loadErr error
	// saveErr is returned from Save.
	saveErr error
	// saved stores the last record passed to Save.
	saved *face.MultipliersRecord
}

func (m *memoryRepository) Load(context.Context) (*face.MultipliersRecord, error) {
	return m.record, m.loadErr
}

func (m *memoryRepository) Save(_ context.Context, record *face.MultipliersRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	m.saved = record

	return nil
}

// TestLoad_PersistedOrDefaults asserts Load behavior on existing, missing, and broken records.
func TestLoad_PersistedOrDefaults(t *testing.T) {
	t.Parallel()

	tuned := &face.MultipliersRecord{
		Multipliers: face.Multipliers{OpennessExponent: 2, WideMultiplier: 1, MovementMultiplier: 0.5},
		UpdatedAt:   time.Unix(100, 0),
		Actor:       &face.Actor{Hostname: "rig", Username: "operator"},
	}

	s, err := Load(context.Background(), &memoryRepository{record: tuned}, face.DefaultMultipliers())
	require.NoError(t, err)
	require.Same(t, tuned, s.Current())

	s, err = Load(context.Background(), &memoryRepository{loadErr: repo.ErrNotFound}, face.DefaultMultipliers())
	require.NoError(t, err)
	require.Equal(t, face.DefaultMultipliers(), s.Multipliers())
	require.Nil(t, s.Current().Actor)

	s, err = Load(context.Background(), &memoryRepository{loadErr: errTestLoad}, face.DefaultMultipliers())
	require.ErrorIs(t, err, errTestLoad)
	require.Nil(t, s)

	broken := &face.MultipliersRecord{Multipliers: face.Multipliers{WideMultiplier: float32(math.Inf(1))}}

	_, err = Load(context.Background(), &memoryRepository{record: broken}, face.DefaultMultipliers())
	require.Error(t, err)
}

// TestStore_Set persists and swaps the record.
func TestStore_Set(t *testing.T) {
	t.Parallel()

	repository := new(memoryRepository)

	s, err := Load(context.Background(), repository, face.DefaultMultipliers())
	require.NoError(t, err)

	actor := &face.Actor{Hostname: "rig", Username: "operator"}
	m := face.Multipliers{OpennessExponent: 1, WideMultiplier: 2, MovementMultiplier: 0, ExpressionMultiplier: 1}

	record, err := s.Set(context.Background(), actor, m)
	require.NoError(t, err)
	require.Equal(t, m, record.Multipliers)
	require.Equal(t, actor, record.Actor)
	require.NotSame(t, actor, record.Actor)
	require.False(t, record.UpdatedAt.IsZero())
	require.Same(t, record, repository.saved)
	require.Equal(t, m, s.Multipliers())
}

// TestStore_Set_Rejected keeps the current record when validation or persistence fails.
func TestStore_Set_Rejected(t *testing.T) {
	t.Parallel()

	repository := &memoryRepository{saveErr: errTestSave}

	s, err := Load(context.Background(), repository, face.DefaultMultipliers())
	require.NoError(t, err)

	before := s.Current()

	invalid := face.DefaultMultipliers()
	invalid.MovementMultiplier = float32(math.NaN())

	_, err = s.Set(context.Background(), nil, invalid)
	require.Error(t, err)

	_, err = s.Set(context.Background(), nil, face.Multipliers{WideMultiplier: 3})
	require.ErrorIs(t, err, errTestSave)

	require.Same(t, before, s.Current())
}

// TestStore_FileRepository survives a restart through the file repository.
func TestStore_FileRepository(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "multipliers.json")

	s, err := Load(context.Background(), repo.NewFileRepository(file), face.DefaultMultipliers())
	require.NoError(t, err)

	m := face.Multipliers{OpennessExponent: 0.5, WideMultiplier: 1, MovementMultiplier: 1, ExpressionMultiplier: 0.25}

	_, err = s.Set(context.Background(), &face.Actor{Hostname: "rig", Username: "operator"}, m)
	require.NoError(t, err)

	restarted, err := Load(context.Background(), repo.NewFileRepository(file), face.DefaultMultipliers())
	require.NoError(t, err)
	require.Equal(t, m, restarted.Multipliers())
	require.Equal(t, "operator", restarted.Current().Actor.Username)
}
