package multipliers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/facetrack/internal/config"
	"github.com/oshokin/facetrack/internal/domain/face"
	pb "github.com/oshokin/facetrack/internal/pb/v1"
)

// Repository defines persistence operations for the multipliers record.
type Repository interface {
	Load(ctx context.Context) (*face.MultipliersRecord, error)
	Save(ctx context.Context, record *face.MultipliersRecord) error
}

// FileRepository persists the multipliers record to a JSON file on disk.
// JSON is produced and consumed via protobuf JSON (protojson) so the file
// has the same layout as the telemetry payloads.
type FileRepository struct {
	// path is the filesystem location of the JSON file.
	path string
	// mu protects concurrent access to the file.
	mu sync.Mutex
}

// ErrNotFound is returned when the multipliers file does not exist yet.
var ErrNotFound = errors.New("multipliers not found")

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the file location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the record from disk.
func (r *FileRepository) Load(_ context.Context) (*face.MultipliersRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read multipliers file: %w", err)
	}

	var payload structpb.Struct
	if err = protojson.Unmarshal(contents, &payload); err != nil {
		return nil, fmt.Errorf("decode multipliers file: %w", err)
	}

	record, err := pb.MultipliersRecordFromStruct(&payload)
	if err != nil {
		return nil, fmt.Errorf("decode multipliers file: %w", err)
	}

	return record, nil
}

// Save writes the record to disk using JSON representation.
func (r *FileRepository) Save(_ context.Context, record *face.MultipliersRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payload, err := pb.MultipliersRecordToStruct(record)
	if err != nil {
		return err
	}

	marshalOptions := protojson.MarshalOptions{
		Multiline: true,
	}

	data, err := marshalOptions.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode multipliers: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write multipliers file: %w", err)
	}

	return nil
}
