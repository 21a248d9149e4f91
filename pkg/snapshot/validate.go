package snapshot

import (
	"fmt"
	"time"

	"github.com/campushq/reconcile/pkg/constants"
	"github.com/campushq/reconcile/pkg/errors"
)

// Validate performs structural checks on the snapshot and returns one
// error per defective family. Defects are reported, not fatal: a
// defective family is skipped during reconciliation while the others
// proceed.
func (s *Snapshot) Validate() []error {
	var errs []error

	if s.Units == nil {
		errs = append(errs, errors.NewMalformedSnapshotError("units", "", "collection is missing"))
	} else if err := validateUnits(s.Units); err != nil {
		errs = append(errs, err)
	}

	if s.Faculties == nil {
		errs = append(errs, errors.NewMalformedSnapshotError("faculties", "", "collection is missing"))
	}
	if s.HumanResources == nil {
		errs = append(errs, errors.NewMalformedSnapshotError("assignments", "", "collection is missing"))
	} else if err := validateAssignments(s.HumanResources); err != nil {
		errs = append(errs, err)
	}

	for _, g := range s.DataConfigGroups {
		if len(g.Fields) > constants.MaxGroupFields {
			errs = append(errs, errors.NewMalformedSnapshotError("records", g.ID,
				fmt.Sprintf("group declares more than %d fields", constants.MaxGroupFields)))
		}
	}

	if s.DynamicDataStore == nil {
		errs = append(errs, errors.NewMalformedSnapshotError("records", "", "collection is missing"))
		return errs
	}

	for groupID := range s.DynamicDataStore {
		if s.Group(groupID) == nil {
			errs = append(errs, errors.NewMalformedSnapshotError("records", groupID,
				"records reference a non-existent group"))
		}
	}
	return errs
}

// validateAssignments checks that assignment dates, when present, are
// calendar dates.
func validateAssignments(assignments []Assignment) error {
	for _, a := range assignments {
		if a.StartDate != "" {
			if _, err := time.Parse(constants.TimeFormatDate, a.StartDate); err != nil {
				return errors.NewMalformedSnapshotError("assignments", a.ID, "startDate is not a calendar date")
			}
		}
		if a.EndDate != nil && *a.EndDate != "" {
			if _, err := time.Parse(constants.TimeFormatDate, *a.EndDate); err != nil {
				return errors.NewMalformedSnapshotError("assignments", a.ID, "endDate is not a calendar date")
			}
		}
	}
	return nil
}

// validateUnits checks that parent references resolve and form a forest.
func validateUnits(units []Unit) error {
	byID := make(map[string]Unit, len(units))
	for _, u := range units {
		byID[u.ID] = u
	}

	for _, u := range units {
		if u.ParentID == nil {
			continue
		}
		if _, ok := byID[*u.ParentID]; !ok {
			return errors.NewMalformedSnapshotError("units", u.ID,
				fmt.Sprintf("parent %s does not exist", *u.ParentID))
		}
		// Walk upward; revisiting the starting unit means a cycle
		seen := map[string]bool{u.ID: true}
		cur := u
		for cur.ParentID != nil {
			next, ok := byID[*cur.ParentID]
			if !ok {
				break
			}
			if seen[next.ID] {
				return errors.NewMalformedSnapshotError("units", u.ID, "parent chain forms a cycle")
			}
			seen[next.ID] = true
			cur = next
		}
	}
	return nil
}
