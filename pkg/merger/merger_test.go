package merger

import (
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/reconcile/pkg/differ"
	"github.com/campushq/reconcile/pkg/snapshot"
)

func localFixture() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Units: []snapshot.Unit{
			{ID: "u1", Name: "School of Engineering", Code: "ENG", Type: snapshot.UnitTypeSchool},
		},
		Faculties: []snapshot.Faculty{
			{ID: "f1", Name: "Trần Thị Bình", Email: "binh.tran@example.edu"},
		},
		HumanResources: []snapshot.Assignment{
			{ID: "a1", FacultyID: "f1", UnitID: "u1", Role: "lecturer"},
		},
		DataConfigGroups: []snapshot.DataConfigGroup{
			{ID: "g1", Name: "Research Output", Fields: []snapshot.FieldDef{{Key: "title", Type: snapshot.FieldTypeText}}},
		},
		DynamicDataStore: map[string][]snapshot.DynamicRecord{
			"g1": {{ID: "r1", Attributes: map[string]any{"title": "old"}}},
		},
	}
}

func TestExecuteNeverMutatesLocal(t *testing.T) {
	local := localFixture()
	pristine := local.Copy()

	cs := &differ.Changeset{
		Units: []differ.Item[snapshot.Unit]{
			{
				ID: "u1", MatchID: "u1",
				External: &snapshot.Unit{ID: "u1", Name: "Renamed School", Code: "ENG", Type: snapshot.UnitTypeSchool},
				Status:   differ.StatusModified,
				Action:   differ.ActionTakeExternal,
			},
		},
		Records: map[string][]differ.Item[snapshot.DynamicRecord]{
			"g1": {
				{
					ID: "r1", MatchID: "r1",
					External: &snapshot.DynamicRecord{ID: "r1", Attributes: map[string]any{"title": "new"}},
					Status:   differ.StatusModified,
					Action:   differ.ActionTakeExternal,
				},
			},
		},
	}

	result := Execute(local, cs)
	require.NotNil(t, result.Snapshot)
	assert.Equal(t, 2, result.Applied)

	assert.Empty(t, cmp.Diff(pristine, local))
	assert.Equal(t, "Renamed School", result.Snapshot.Units[0].Name)
	assert.Equal(t, "new", result.Snapshot.DynamicDataStore["g1"][0].Attributes["title"])
}

func TestExecutePreservesMatchedIDs(t *testing.T) {
	local := localFixture()
	cs := &differ.Changeset{
		Faculties: []differ.Item[snapshot.Faculty]{
			{
				// Conflict matched through the email natural key; the
				// external export re-issued the record as x9.
				ID: "x9", MatchID: "f1",
				External: &snapshot.Faculty{ID: "x9", Name: "Trần Thị Bình", Email: "binh.tran@example.edu", Rank: "Professor"},
				Status:   differ.StatusConflict,
				Action:   differ.ActionMerge,
			},
		},
	}

	result := Execute(local, cs)
	require.Len(t, result.Snapshot.Faculties, 1)
	assert.Equal(t, "f1", result.Snapshot.Faculties[0].ID)
	assert.Equal(t, "Professor", result.Snapshot.Faculties[0].Rank)

	// The assignment pointing at f1 is still intact
	assert.Empty(t, result.Warnings)
}

func TestExecuteUnitMergeTakesOnlyName(t *testing.T) {
	local := localFixture()
	cs := &differ.Changeset{
		Units: []differ.Item[snapshot.Unit]{
			{
				ID: "ux", MatchID: "u1",
				External: &snapshot.Unit{ID: "ux", Name: "Updated Name", Code: "ZZZ", Type: snapshot.UnitTypeDepartment},
				Status:   differ.StatusConflict,
				Action:   differ.ActionMerge,
			},
		},
	}

	result := Execute(local, cs)
	merged := result.Snapshot.Units[0]
	assert.Equal(t, "u1", merged.ID)
	assert.Equal(t, "Updated Name", merged.Name)
	assert.Equal(t, "ENG", merged.Code)
	assert.Equal(t, snapshot.UnitTypeSchool, merged.Type)
}

func TestExecuteAppendsNewItems(t *testing.T) {
	local := localFixture()
	cs := &differ.Changeset{
		Units: []differ.Item[snapshot.Unit]{
			{
				ID:       "u2",
				External: &snapshot.Unit{ID: "u2", Name: "Physics", Type: snapshot.UnitTypeDepartment},
				Status:   differ.StatusNew,
				Action:   differ.ActionTakeExternal,
			},
		},
		Faculties: []differ.Item[snapshot.Faculty]{
			{
				ID:       "f2",
				External: &snapshot.Faculty{ID: "f2", Name: "Phạm Văn Giang", Email: "giang.pham@example.edu"},
				Status:   differ.StatusNew,
				Action:   differ.ActionTakeExternal,
			},
		},
	}

	result := Execute(local, cs)
	assert.Equal(t, 2, result.Applied)
	assert.Len(t, result.Snapshot.Units, 2)
	assert.Len(t, result.Snapshot.Faculties, 2)
}

func TestExecuteKeepLocalAndSkipAreNoOps(t *testing.T) {
	local := localFixture()
	cs := &differ.Changeset{
		Units: []differ.Item[snapshot.Unit]{
			{
				ID: "u1", MatchID: "u1",
				Local:    &local.Units[0],
				External: &snapshot.Unit{ID: "u1", Name: "Ignored", Type: snapshot.UnitTypeSchool},
				Status:   differ.StatusModified,
				Action:   differ.ActionKeepLocal,
			},
			{
				ID:       "u2",
				External: &snapshot.Unit{ID: "u2", Name: "Also Ignored", Type: snapshot.UnitTypeDepartment},
				Status:   differ.StatusNew,
				Action:   differ.ActionSkip,
			},
		},
	}

	result := Execute(local, cs)
	assert.Equal(t, 0, result.Applied)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, "School of Engineering", result.Snapshot.Units[0].Name)
	assert.Len(t, result.Snapshot.Units, 1)
}

func TestExecuteStampsTakenRecords(t *testing.T) {
	stale := utc.New(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	local := localFixture()
	cs := &differ.Changeset{
		Records: map[string][]differ.Item[snapshot.DynamicRecord]{
			"g1": {
				{
					ID: "r1", MatchID: "r1",
					External: &snapshot.DynamicRecord{ID: "r1", UpdatedAt: &stale, Attributes: map[string]any{"title": "taken"}},
					Status:   differ.StatusModified,
					Action:   differ.ActionTakeExternal,
				},
			},
		},
	}

	before := time.Now().UTC().Add(-time.Second)
	result := Execute(local, cs)

	rec := result.Snapshot.DynamicDataStore["g1"][0]
	require.NotNil(t, rec.UpdatedAt)
	assert.True(t, rec.UpdatedAt.Time().After(before), "taken record must carry a fresh timestamp")
}

func TestExecuteInvalidPlanIsReported(t *testing.T) {
	local := localFixture()
	cs := &differ.Changeset{
		Units: []differ.Item[snapshot.Unit]{
			{
				// merge on a new item cannot resolve a local target
				ID:       "u2",
				External: &snapshot.Unit{ID: "u2", Name: "Physics", Type: snapshot.UnitTypeDepartment},
				Status:   differ.StatusNew,
				Action:   differ.ActionMerge,
			},
		},
	}

	result := Execute(local, cs)
	assert.Equal(t, 0, result.Applied)
	require.Len(t, result.Errors, 1)
	assert.Len(t, result.Snapshot.Units, 1)
}

func TestExecuteDanglingReferenceWarning(t *testing.T) {
	local := localFixture()
	cs := &differ.Changeset{
		Assignments: []differ.Item[snapshot.Assignment]{
			{
				ID:       "a2",
				External: &snapshot.Assignment{ID: "a2", FacultyID: "f404", UnitID: "u1", Role: "dean"},
				Status:   differ.StatusNew,
				Action:   differ.ActionTakeExternal,
			},
		},
	}

	result := Execute(local, cs)
	assert.Equal(t, 1, result.Applied)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "a2", result.Warnings[0].AssignmentID)
	assert.Equal(t, "facultyId", result.Warnings[0].Field)
	assert.Equal(t, "f404", result.Warnings[0].Ref)
}

func TestExecuteNilLocal(t *testing.T) {
	cs := &differ.Changeset{
		Units: []differ.Item[snapshot.Unit]{
			{
				ID:       "u1",
				External: &snapshot.Unit{ID: "u1", Name: "Fresh", Type: snapshot.UnitTypeSchool},
				Status:   differ.StatusNew,
				Action:   differ.ActionTakeExternal,
			},
		},
	}

	result := Execute(nil, cs)
	require.NotNil(t, result.Snapshot)
	assert.Len(t, result.Snapshot.Units, 1)
}
