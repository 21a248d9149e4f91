package snapshot

import (
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	parent := "u1"
	end := "2024-08-31"
	at := utc.New(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	return &Snapshot{
		Units: []Unit{
			{ID: "u1", Name: "School of Engineering", Code: "ENG", Type: UnitTypeSchool},
			{ID: "u2", Name: "Computer Science", Code: "CS", Type: UnitTypeDepartment, ParentID: &parent},
		},
		Faculties: []Faculty{
			{
				ID: "f1", Name: "Nguyễn Văn An", Email: "an.nguyen@example.edu",
				Education: []SubRecord{{Title: "PhD", Detail: "Computer Science", Year: "2010"}},
			},
		},
		HumanResources: []Assignment{
			{ID: "a1", FacultyID: "f1", UnitID: "u2", Role: "lecturer", StartDate: "2020-09-01", EndDate: &end},
		},
		DataConfigGroups: []DataConfigGroup{
			{
				ID: "g1", Name: "Research Output",
				Fields: []FieldDef{
					{Key: "title", Label: "Title", Type: FieldTypeText},
					{Key: "level", Label: "Level", Type: FieldTypeSelect, Options: []string{"national", "international"}},
				},
			},
		},
		DynamicDataStore: map[string][]DynamicRecord{
			"g1": {
				{
					ID: "r1", AcademicYear: "2023-2024", UpdatedAt: &at,
					Attributes: map[string]any{
						"title": "Graph algorithms survey",
						"level": "international",
						"tags":  []any{"graphs", "survey"},
						"meta":  map[string]any{"pages": float64(24)},
					},
				},
			},
		},
	}
}

func TestCopyIsDeep(t *testing.T) {
	original := testSnapshot()
	copied := original.Copy()

	require.NotSame(t, original, copied)
	assert.Empty(t, cmp.Diff(original, copied))

	// Mutating every nested structure of the copy must leave the
	// original untouched.
	*copied.Units[1].ParentID = "elsewhere"
	copied.Faculties[0].Education[0].Title = "MSc"
	*copied.HumanResources[0].EndDate = "2030-01-01"
	copied.DataConfigGroups[0].Fields[1].Options[0] = "regional"
	copied.DynamicDataStore["g1"][0].Attributes["title"] = "changed"
	copied.DynamicDataStore["g1"][0].Attributes["tags"].([]any)[0] = "changed"
	copied.DynamicDataStore["g1"][0].Attributes["meta"].(map[string]any)["pages"] = float64(1)
	*copied.DynamicDataStore["g1"][0].UpdatedAt = utc.New(time.Unix(0, 0))

	assert.Equal(t, "u1", *original.Units[1].ParentID)
	assert.Equal(t, "PhD", original.Faculties[0].Education[0].Title)
	assert.Equal(t, "2024-08-31", *original.HumanResources[0].EndDate)
	assert.Equal(t, "national", original.DataConfigGroups[0].Fields[1].Options[0])
	assert.Equal(t, "Graph algorithms survey", original.DynamicDataStore["g1"][0].Attributes["title"])
	assert.Equal(t, "graphs", original.DynamicDataStore["g1"][0].Attributes["tags"].([]any)[0])
	assert.Equal(t, float64(24), original.DynamicDataStore["g1"][0].Attributes["meta"].(map[string]any)["pages"])
	assert.Equal(t, 2024, original.DynamicDataStore["g1"][0].UpdatedAt.Time().Year())
}

func TestCopyNil(t *testing.T) {
	var s *Snapshot
	assert.Nil(t, s.Copy())
}

func TestCopyPreservesNilCollections(t *testing.T) {
	s := &Snapshot{}
	copied := s.Copy()
	require.NotNil(t, copied)
	assert.Nil(t, copied.DynamicDataStore)
	assert.NotNil(t, copied.Units)
}

func TestStats(t *testing.T) {
	stats := testSnapshot().Stats()
	assert.Equal(t, Stats{Units: 2, Faculties: 1, Resources: 1, Groups: 1, Records: 1}, stats)
}

func TestGroupLookup(t *testing.T) {
	s := testSnapshot()
	require.NotNil(t, s.Group("g1"))
	assert.Equal(t, "Research Output", s.Group("g1").Name)
	assert.Nil(t, s.Group("missing"))
}
