package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/reconcile/pkg/errors"
)

func TestValidateCleanSnapshot(t *testing.T) {
	assert.Empty(t, testSnapshot().Validate())
}

func TestValidateMissingCollections(t *testing.T) {
	s := &Snapshot{}
	errs := s.Validate()
	require.Len(t, errs, 4)
	for _, err := range errs {
		assert.True(t, errors.IsMalformedSnapshot(err))
	}
}

func TestValidateDanglingParent(t *testing.T) {
	s := testSnapshot()
	ghost := "ghost"
	s.Units = append(s.Units, Unit{ID: "u3", Name: "Orphan", Type: UnitTypeDepartment, ParentID: &ghost})

	errs := s.Validate()
	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "parent ghost does not exist")
}

func TestValidateParentCycle(t *testing.T) {
	a, b := "ua", "ub"
	s := testSnapshot()
	s.Units = append(s.Units,
		Unit{ID: "ua", Name: "A", Type: UnitTypeFaculty, ParentID: &b},
		Unit{ID: "ub", Name: "B", Type: UnitTypeFaculty, ParentID: &a},
	)

	errs := s.Validate()
	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "cycle")
}

func TestValidateBadAssignmentDate(t *testing.T) {
	s := testSnapshot()
	s.HumanResources = append(s.HumanResources, Assignment{
		ID: "a2", FacultyID: "f1", UnitID: "u1", StartDate: "September 2020",
	})

	errs := s.Validate()
	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "startDate")
}

func TestValidateOrphanRecordGroup(t *testing.T) {
	s := testSnapshot()
	s.DynamicDataStore["nowhere"] = []DynamicRecord{{ID: "r9"}}

	errs := s.Validate()
	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "non-existent group")
}
