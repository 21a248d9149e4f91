// Package merger applies an approved reconciliation plan onto a deep
// copy of the local snapshot, producing the merged snapshot. It never
// mutates its inputs. Plans arrive pre-validated from the action
// policy; the defensive re-check here catches programming errors, not
// operator mistakes.
package merger

import (
	"github.com/agentstation/utc"

	"github.com/campushq/reconcile/pkg/differ"
	"github.com/campushq/reconcile/pkg/errors"
	"github.com/campushq/reconcile/pkg/policy"
	"github.com/campushq/reconcile/pkg/snapshot"
)

// Result is the outcome of one merge run.
type Result struct {
	Snapshot *snapshot.Snapshot // The merged snapshot
	Applied  int                // Items that changed the snapshot
	Skipped  int                // Items left as no-ops
	Warnings []Warning          // Non-fatal referential integrity findings
	Errors   []error            // Plan defects caught at the boundary
}

// Warning reports an assignment that references a faculty or unit
// absent from the merged collections. Warnings never block a merge;
// the operator may re-run with corrected selections.
type Warning struct {
	AssignmentID string
	Field        string // "facultyId" or "unitId"
	Ref          string // The dangling reference value
}

// Execute applies a fine-grained changeset plan onto a deep copy of the
// local snapshot. Families apply in a fixed order (units, faculties,
// assignments, records) so assignment display code downstream can
// resolve unit names. Ids of matched records are always preserved so
// references held by other collections stay valid.
func Execute(local *snapshot.Snapshot, cs *differ.Changeset) *Result {
	merged := local.Copy()
	if merged == nil {
		merged = snapshot.New()
	}
	if merged.DynamicDataStore == nil {
		merged.DynamicDataStore = map[string][]snapshot.DynamicRecord{}
	}
	result := &Result{Snapshot: merged}

	mergeUnits(result, cs.Units)
	mergeFaculties(result, cs.Faculties)
	mergeAssignments(result, cs.Assignments)
	for _, groupID := range cs.GroupIDs() {
		mergeRecords(result, groupID, cs.Records[groupID])
	}

	result.Warnings = scanReferences(merged)
	return result
}

// mergeUnits applies unit items. take_external appends or replaces by
// id; merge carries over only the mutable name field.
func mergeUnits(result *Result, items []differ.Item[snapshot.Unit]) {
	merged := result.Snapshot
	for _, item := range items {
		if !checkItem(result, item) {
			continue
		}
		switch item.Action {
		case differ.ActionTakeExternal:
			ext := snapshot.CopyUnit(*item.External)
			if item.Matched() {
				ext.ID = item.MatchID
				replaceUnit(merged, item.MatchID, ext)
			} else if i := unitIndex(merged, ext.ID); i >= 0 {
				merged.Units[i] = ext
			} else {
				merged.Units = append(merged.Units, ext)
			}
			result.Applied++
		case differ.ActionMerge:
			if i := unitIndex(merged, item.MatchID); i >= 0 {
				merged.Units[i].Name = item.External.Name
				result.Applied++
			} else {
				result.Skipped++
			}
		default:
			result.Skipped++
		}
	}
}

// mergeFaculties applies personnel items. Matched items keep the local
// id so assignment references stay valid.
func mergeFaculties(result *Result, items []differ.Item[snapshot.Faculty]) {
	merged := result.Snapshot
	for _, item := range items {
		if !checkItem(result, item) {
			continue
		}
		switch item.Action {
		case differ.ActionTakeExternal, differ.ActionMerge:
			if item.Action == differ.ActionMerge && !item.Matched() {
				result.Skipped++
				continue
			}
			ext := snapshot.CopyFaculty(*item.External)
			if item.Matched() {
				ext.ID = item.MatchID
				if i := facultyIndex(merged, item.MatchID); i >= 0 {
					merged.Faculties[i] = ext
				} else {
					merged.Faculties = append(merged.Faculties, ext)
				}
			} else {
				merged.Faculties = append(merged.Faculties, ext)
			}
			result.Applied++
		default:
			result.Skipped++
		}
	}
}

// mergeAssignments applies human-resource items, preserving local ids
// on matched records exactly as for faculties.
func mergeAssignments(result *Result, items []differ.Item[snapshot.Assignment]) {
	merged := result.Snapshot
	for _, item := range items {
		if !checkItem(result, item) {
			continue
		}
		switch item.Action {
		case differ.ActionTakeExternal, differ.ActionMerge:
			if item.Action == differ.ActionMerge && !item.Matched() {
				result.Skipped++
				continue
			}
			ext := snapshot.CopyAssignment(*item.External)
			if item.Matched() {
				ext.ID = item.MatchID
				if i := assignmentIndex(merged, item.MatchID); i >= 0 {
					merged.HumanResources[i] = ext
				} else {
					merged.HumanResources = append(merged.HumanResources, ext)
				}
			} else {
				merged.HumanResources = append(merged.HumanResources, ext)
			}
			result.Applied++
		default:
			result.Skipped++
		}
	}
}

// mergeRecords applies dynamic record items of one group. Taken records
// are upserted by id and stamped with the merge time, making their
// content authoritative going forward.
func mergeRecords(result *Result, groupID string, items []differ.Item[snapshot.DynamicRecord]) {
	merged := result.Snapshot
	for _, item := range items {
		if !checkItem(result, item) {
			continue
		}
		if item.Action != differ.ActionTakeExternal {
			result.Skipped++
			continue
		}
		rec := snapshot.CopyRecord(*item.External)
		now := utc.Now()
		rec.UpdatedAt = &now
		records := merged.DynamicDataStore[groupID]
		replaced := false
		for i := range records {
			if records[i].ID == rec.ID {
				records[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			records = append(records, rec)
		}
		merged.DynamicDataStore[groupID] = records
		result.Applied++
	}
}

// checkItem re-validates an item's action at the executor boundary.
// Failures are programming errors; the item is reported and skipped.
func checkItem[T any](result *Result, item differ.Item[T]) bool {
	if err := policy.ValidateItem(item); err != nil {
		result.Errors = append(result.Errors, err)
		return false
	}
	if item.External == nil {
		if item.Action == differ.ActionKeepLocal || item.Action == differ.ActionSkip {
			result.Skipped++
		} else {
			result.Errors = append(result.Errors,
				errors.NewMalformedSnapshotError("plan", item.ID, "item has no external payload"))
		}
		return false
	}
	return true
}

// scanReferences checks assignment references against the merged
// faculty and unit collections.
func scanReferences(merged *snapshot.Snapshot) []Warning {
	units := merged.UnitIndex()
	faculties := merged.FacultyIndex()

	var warnings []Warning
	for _, a := range merged.HumanResources {
		if _, ok := faculties[a.FacultyID]; !ok {
			warnings = append(warnings, Warning{AssignmentID: a.ID, Field: "facultyId", Ref: a.FacultyID})
		}
		if _, ok := units[a.UnitID]; !ok {
			warnings = append(warnings, Warning{AssignmentID: a.ID, Field: "unitId", Ref: a.UnitID})
		}
	}
	return warnings
}

func unitIndex(s *snapshot.Snapshot, id string) int {
	for i := range s.Units {
		if s.Units[i].ID == id {
			return i
		}
	}
	return -1
}

func replaceUnit(s *snapshot.Snapshot, id string, u snapshot.Unit) {
	if i := unitIndex(s, id); i >= 0 {
		s.Units[i] = u
		return
	}
	s.Units = append(s.Units, u)
}

func facultyIndex(s *snapshot.Snapshot, id string) int {
	for i := range s.Faculties {
		if s.Faculties[i].ID == id {
			return i
		}
	}
	return -1
}

func assignmentIndex(s *snapshot.Snapshot, id string) int {
	for i := range s.HumanResources {
		if s.HumanResources[i].ID == id {
			return i
		}
	}
	return -1
}
