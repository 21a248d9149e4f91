package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/reconcile/pkg/errors"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	original := testSnapshot()

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(original, loaded))
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	data := []byte(`
units:
  - id: u1
    name: School of Engineering
    code: ENG
    type: school
faculties: []
humanResources: []
dataConfigGroups: []
dynamicDataStore: {}
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded.Units, 1)
	assert.Equal(t, "School of Engineering", loaded.Units[0].Name)
	assert.Equal(t, UnitTypeSchool, loaded.Units[0].Type)
	assert.NotNil(t, loaded.DynamicDataStore)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestLoadMissingTopLevelKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"units": []}`), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)

	// Absent collections stay nil so the differ can tell a missing
	// export key from a valid empty family.
	assert.NotNil(t, loaded.Units)
	assert.Nil(t, loaded.Faculties)
	assert.Nil(t, loaded.DynamicDataStore)
}
