package merger

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/reconcile/pkg/differ"
	"github.com/campushq/reconcile/pkg/seltree"
	"github.com/campushq/reconcile/pkg/snapshot"
)

func buildTreeFixture(t *testing.T, local *snapshot.Snapshot) (*seltree.Tree, *differ.Changeset) {
	t.Helper()

	external := &snapshot.Snapshot{
		Units: []snapshot.Unit{
			{ID: "u1", Name: "School of Engineering", Code: "ENG", Type: snapshot.UnitTypeSchool},
			{ID: "u2", Name: "Physics", Type: snapshot.UnitTypeDepartment},
		},
		Faculties: []snapshot.Faculty{
			{ID: "f2", Name: "Phạm Văn Giang", Email: "giang.pham@example.edu"},
		},
		HumanResources: []snapshot.Assignment{},
		DataConfigGroups: []snapshot.DataConfigGroup{
			{ID: "g2", Name: "Awards", Fields: []snapshot.FieldDef{{Key: "title", Type: snapshot.FieldTypeText}}},
		},
		DynamicDataStore: map[string][]snapshot.DynamicRecord{
			"g2": {{ID: "r1", Attributes: map[string]any{"title": "Best paper"}}},
		},
	}

	cs := differ.New().Snapshots(local, external)
	return seltree.Build(local, cs), cs
}

func TestExecuteTreeAppendsSelectedBranches(t *testing.T) {
	local := localFixture()
	pristine := local.Copy()
	tree, _ := buildTreeFixture(t, local)

	result := ExecuteTree(local, tree)

	assert.Empty(t, cmp.Diff(pristine, local))

	// u1 already exists locally and is skipped; u2 and f2 are appended
	assert.Len(t, result.Snapshot.Units, 2)
	assert.Len(t, result.Snapshot.Faculties, 2)

	// The new group schema lands together with its records
	require.NotNil(t, result.Snapshot.Group("g2"))
	require.Len(t, result.Snapshot.DynamicDataStore["g2"], 1)
	assert.Equal(t, "r1", result.Snapshot.DynamicDataStore["g2"][0].ID)
}

func TestExecuteTreeUnselectedBranchSkipped(t *testing.T) {
	local := localFixture()
	tree, _ := buildTreeFixture(t, local)

	require.True(t, tree.Toggle("records/g2", false))

	result := ExecuteTree(local, tree)
	assert.Nil(t, result.Snapshot.Group("g2"))
	assert.Empty(t, result.Snapshot.DynamicDataStore["g2"])

	// Other branches still applied
	assert.Len(t, result.Snapshot.Units, 2)
}

func TestExecuteTreeUnselectedModuleIgnoresChildSelection(t *testing.T) {
	local := localFixture()
	tree, _ := buildTreeFixture(t, local)

	require.True(t, tree.Toggle("units", false))
	require.True(t, tree.Toggle("units/u2", true))

	// The deselected module consumes the whole branch; the re-selected
	// leaf below it has no effect.
	result := ExecuteTree(local, tree)
	assert.Len(t, result.Snapshot.Units, 1)
}

func TestExecuteTreeIsIdempotentOnRerun(t *testing.T) {
	local := localFixture()
	tree, _ := buildTreeFixture(t, local)

	first := ExecuteTree(local, tree)
	second := ExecuteTree(first.Snapshot, tree)

	// Everything already present, so the rerun applies nothing
	assert.Equal(t, 0, second.Applied)
	assert.Empty(t, cmp.Diff(first.Snapshot, second.Snapshot))
}
