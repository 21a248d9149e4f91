// Package differ compares a local snapshot against an external snapshot
// and classifies every external item as new, modified, conflicting, or
// suspect relative to the local state. Identical items are dropped
// silently. Detection is a pure function of its inputs: the same
// (local, external) pair always yields the same items in the same order.
package differ

import (
	"github.com/campushq/reconcile/pkg/snapshot"
)

// Differ handles change detection between snapshots.
type Differ interface {
	// Units compares two unit collections
	Units(local, external []snapshot.Unit) []Item[snapshot.Unit]

	// Faculties compares two personnel collections
	Faculties(local, external []snapshot.Faculty) []Item[snapshot.Faculty]

	// Assignments compares two human-resource collections
	Assignments(local, external []snapshot.Assignment) []Item[snapshot.Assignment]

	// Records compares the dynamic records of one data config group,
	// with equality restricted to the group's declared field keys
	Records(group snapshot.DataConfigGroup, local, external []snapshot.DynamicRecord) []Item[snapshot.DynamicRecord]

	// Snapshots compares two complete snapshots across all four families.
	// A family whose external data is malformed is skipped with a
	// reported reason rather than aborting the run.
	Snapshots(local, external *snapshot.Snapshot) *Changeset
}

// differ is the default implementation of Differ.
type differ struct {
	fuzzy   bool
	recency bool
}

// New creates a new Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		fuzzy:   true,
		recency: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Units compares two unit collections.
func (d *differ) Units(local, external []snapshot.Unit) []Item[snapshot.Unit] {
	return detect(local, external, unitMatcher{}, FamilyUnit, d.fuzzy, nil)
}

// Faculties compares two personnel collections.
func (d *differ) Faculties(local, external []snapshot.Faculty) []Item[snapshot.Faculty] {
	return detect(local, external, facultyMatcher{}, FamilyFaculty, d.fuzzy, nil)
}

// Assignments compares two human-resource collections.
func (d *differ) Assignments(local, external []snapshot.Assignment) []Item[snapshot.Assignment] {
	return detect(local, external, assignmentMatcher{}, FamilyAssignment, d.fuzzy, nil)
}

// Records compares the dynamic records of one data config group.
func (d *differ) Records(group snapshot.DataConfigGroup, local, external []snapshot.DynamicRecord) []Item[snapshot.DynamicRecord] {
	var rec recencyFunc[snapshot.DynamicRecord]
	if d.recency {
		rec = recordRecency
	}
	return detect(local, external, newRecordMatcher(group), FamilyRecord, d.fuzzy, rec)
}

// recordRecency compares record update timestamps. A missing timestamp
// is older than any present one, so an untimestamped record always
// loses to a timestamped one. Equal or doubly absent timestamps tie.
func recordRecency(local, external snapshot.DynamicRecord) recency {
	switch {
	case local.UpdatedAt == nil && external.UpdatedAt == nil:
		return recencyTie
	case local.UpdatedAt == nil:
		return recencyExternalNewer
	case external.UpdatedAt == nil:
		return recencyExternalStale
	case external.UpdatedAt.After(*local.UpdatedAt):
		return recencyExternalNewer
	case local.UpdatedAt.After(*external.UpdatedAt):
		return recencyExternalStale
	default:
		return recencyTie
	}
}

// Snapshots compares two complete snapshots.
func (d *differ) Snapshots(local, external *snapshot.Snapshot) *Changeset {
	cs := &Changeset{
		Records: map[string][]Item[snapshot.DynamicRecord]{},
		Groups:  map[string]snapshot.DataConfigGroup{},
	}
	if local == nil {
		local = snapshot.New()
	}
	if external == nil {
		cs.skip(FamilyUnit, "", "external snapshot is nil")
		cs.skip(FamilyFaculty, "", "external snapshot is nil")
		cs.skip(FamilyAssignment, "", "external snapshot is nil")
		cs.skip(FamilyRecord, "", "external snapshot is nil")
		return cs
	}

	// A nil collection means the external export lacked the top-level
	// key entirely; an empty collection is a valid empty family.
	if external.Units == nil {
		cs.skip(FamilyUnit, "", "missing units collection")
	} else {
		cs.Units = d.Units(local.Units, external.Units)
	}

	if external.Faculties == nil {
		cs.skip(FamilyFaculty, "", "missing faculties collection")
	} else {
		cs.Faculties = d.Faculties(local.Faculties, external.Faculties)
	}

	if external.HumanResources == nil {
		cs.skip(FamilyAssignment, "", "missing humanResources collection")
	} else {
		cs.Assignments = d.Assignments(local.HumanResources, external.HumanResources)
	}

	if external.DynamicDataStore == nil {
		cs.skip(FamilyRecord, "", "missing dynamicDataStore collection")
		return cs
	}

	for groupID, records := range external.DynamicDataStore {
		group := external.Group(groupID)
		if group == nil {
			// The export may carry records for a group whose schema it
			// did not re-export; fall back to the local schema.
			group = local.Group(groupID)
		}
		if group == nil {
			cs.skip(FamilyRecord, groupID, "records reference a non-existent group")
			continue
		}
		items := d.Records(*group, local.DynamicDataStore[groupID], records)
		if len(items) > 0 {
			cs.Records[groupID] = items
			cs.Groups[groupID] = snapshot.CopyGroup(*group)
		}
	}

	return cs
}
