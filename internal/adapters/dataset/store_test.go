package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smileatlas/dubaidental/internal/domain/entities"
	apperrors "github.com/smileatlas/dubaidental/pkg/errors"
)

func validDataset() *entities.Dataset {
	return &entities.Dataset{
		Clinics: []entities.ClinicRecord{
			{
				Name:        "Pearl Dental",
				Slug:        "pearl-dental",
				Address:     "Marina Plaza, Dubai Marina",
				Area:        "Dubai Marina",
				Phone:       "+971 4 000 0000",
				Website:     "https://pearl.example",
				Rating:      4.7,
				ReviewCount: 120,
				Services:    []string{"General Dentistry"},
				Hours:       "Mon-Sat: 9:00 AM - 9:00 PM",
				Description: "Professional dental care in Dubai Marina offering comprehensive dental services.",
				Lat:         25.08,
				Lng:         55.14,
			},
		},
		Meta: entities.DatasetMeta{
			TotalQueries:  40,
			TotalResults:  60,
			UniqueClinics: 1,
			ScrapedAt:     "2026-08-01T00:00:00Z",
		},
	}
}

func TestStore_WriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinics.json")
	store := NewStore(path)

	require.NoError(t, store.Write(validDataset()))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Clinics, 1)
	assert.Equal(t, "pearl-dental", loaded.Clinics[0].Slug)
	assert.Equal(t, 40, loaded.Meta.TotalQueries)
	assert.Equal(t, "2026-08-01T00:00:00Z", loaded.Meta.ScrapedAt)
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"))

	_, err := store.Load()
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestStore_WriteRejectsInvalidDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinics.json")
	store := NewStore(path)

	bad := validDataset()
	bad.Clinics[0].Services = nil // contract requires a non-empty service list

	err := store.Write(bad)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

// A failed write must leave the previously committed dataset untouched.
func TestStore_FailedWritePreservesExistingDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinics.json")
	store := NewStore(path)

	require.NoError(t, store.Write(validDataset()))

	bad := validDataset()
	bad.Clinics[0].Slug = "NOT A SLUG"
	require.Error(t, store.Write(bad))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "pearl-dental", loaded.Clinics[0].Slug)
}

func TestStore_WriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "clinics.json"))

	require.NoError(t, store.Write(validDataset()))

	bad := validDataset()
	bad.Clinics[0].Services = nil
	require.Error(t, store.Write(bad))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "clinics.json", entries[0].Name())
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw", "places.json")

	require.NoError(t, WriteJSON(path, []string{"a", "b"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(raw))
}
