package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/smileatlas/dubaidental/internal/domain/entities"
	apperrors "github.com/smileatlas/dubaidental/pkg/errors"
)

// datasetSchemaJSON is the contract between the acquisition pipeline and the
// rendering layer. Every emitted dataset is validated against it before the
// committed file is replaced.
const datasetSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["clinics", "_meta"],
  "properties": {
    "clinics": {
      "type": "array",
      "items": {
        "type": "object",
        "required": [
          "name", "slug", "address", "area", "phone", "website",
          "rating", "reviewCount", "services", "hours", "description",
          "lat", "lng"
        ],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "slug": {"type": "string", "minLength": 1, "pattern": "^[a-z0-9_]+(-[a-z0-9_]+)*$"},
          "address": {"type": "string"},
          "area": {"type": "string", "minLength": 1},
          "phone": {"type": "string"},
          "website": {"type": "string"},
          "rating": {"type": "number", "minimum": 0, "maximum": 5},
          "reviewCount": {"type": "integer", "minimum": 0},
          "services": {"type": "array", "minItems": 1, "items": {"type": "string"}},
          "hours": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "lat": {"type": "number"},
          "lng": {"type": "number"}
        }
      }
    },
    "_meta": {
      "type": "object",
      "required": ["totalQueries", "totalResults", "uniqueClinics", "scrapedAt"],
      "properties": {
        "totalQueries": {"type": "integer", "minimum": 0},
        "totalResults": {"type": "integer", "minimum": 0},
        "uniqueClinics": {"type": "integer", "minimum": 0},
        "scrapedAt": {"type": "string", "minLength": 1}
      }
    }
  }
}`

var datasetSchema = jsonschema.MustCompileString("clinics.schema.json", datasetSchemaJSON)

// Store reads and writes the clinic dataset artifact
type Store struct {
	path string
}

// NewStore creates a store bound to the dataset path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the committed dataset
func (s *Store) Load() (*entities.Dataset, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("dataset file " + s.path + " does not exist")
		}
		return nil, apperrors.NewInternalError("failed to read dataset", err)
	}

	var ds entities.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, apperrors.NewValidationError("dataset is not valid JSON", err)
	}

	return &ds, nil
}

// Write validates the dataset against the schema, writes it to a temporary
// file in the destination directory, and renames it over the committed path.
// A previously good dataset is never replaced by a partial or invalid one.
func (s *Store) Write(ds *entities.Dataset) error {
	payload, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return apperrors.NewInternalError("failed to encode dataset", err)
	}

	var decoded interface{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return apperrors.NewInternalError("failed to decode dataset for validation", err)
	}
	if err := datasetSchema.Validate(decoded); err != nil {
		return apperrors.NewValidationError("dataset failed schema validation", err)
	}

	return writeAtomic(s.path, payload)
}

// WriteJSON atomically writes an arbitrary value as indented JSON. Used for
// the raw place dump emitted alongside the canonical dataset.
func WriteJSON(path string, v interface{}) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.NewInternalError("failed to encode JSON", err)
	}
	return writeAtomic(path, payload)
}

func writeAtomic(path string, payload []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewInternalError("failed to create output directory", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return apperrors.NewInternalError("failed to create temporary file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewInternalError("failed to write temporary file", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewInternalError("failed to sync temporary file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewInternalError("failed to close temporary file", err)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return apperrors.NewInternalError("failed to set file permissions", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewInternalError("failed to replace dataset", err)
	}

	return nil
}
