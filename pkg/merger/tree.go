package merger

import (
	"github.com/campushq/reconcile/pkg/seltree"
	"github.com/campushq/reconcile/pkg/snapshot"
)

// ExecuteTree applies a coarse-grained selection tree onto a deep copy
// of the local snapshot. A selected module or group node merges its
// whole payload collection: every item not already present locally (by
// id) is appended, and a record group's schema is ensured before its
// records land. Unselected nodes and their subtrees are skipped
// entirely, regardless of child selection state.
func ExecuteTree(local *snapshot.Snapshot, tree *seltree.Tree) *Result {
	merged := local.Copy()
	if merged == nil {
		merged = snapshot.New()
	}
	if merged.DynamicDataStore == nil {
		merged.DynamicDataStore = map[string][]snapshot.DynamicRecord{}
	}
	result := &Result{Snapshot: merged}

	for _, root := range tree.Roots {
		applyNode(result, root)
	}

	result.Warnings = scanReferences(merged)
	return result
}

// applyNode merges one branch. A node carrying a collection payload
// consumes its whole branch; nodes without payloads only fan out.
func applyNode(result *Result, node *seltree.Node) {
	if !node.Selected {
		return
	}

	switch payload := node.Payload.(type) {
	case []snapshot.Unit:
		for _, u := range payload {
			if unitIndex(result.Snapshot, u.ID) < 0 {
				result.Snapshot.Units = append(result.Snapshot.Units, snapshot.CopyUnit(u))
				result.Applied++
			} else {
				result.Skipped++
			}
		}
	case []snapshot.Faculty:
		for _, f := range payload {
			if facultyIndex(result.Snapshot, f.ID) < 0 {
				result.Snapshot.Faculties = append(result.Snapshot.Faculties, snapshot.CopyFaculty(f))
				result.Applied++
			} else {
				result.Skipped++
			}
		}
	case []snapshot.Assignment:
		for _, a := range payload {
			if assignmentIndex(result.Snapshot, a.ID) < 0 {
				result.Snapshot.HumanResources = append(result.Snapshot.HumanResources, snapshot.CopyAssignment(a))
				result.Applied++
			} else {
				result.Skipped++
			}
		}
	case seltree.GroupPayload:
		applyGroup(result, payload)
	default:
		// Fan-out node (e.g. the records root); descend into children
		for _, child := range node.Children {
			applyNode(result, child)
		}
	}
}

// applyGroup ensures the group schema exists locally, then appends the
// branch's records that are not already present by id.
func applyGroup(result *Result, payload seltree.GroupPayload) {
	merged := result.Snapshot
	groupID := payload.Group.ID
	if groupID != "" && merged.Group(groupID) == nil {
		merged.DataConfigGroups = append(merged.DataConfigGroups, snapshot.CopyGroup(payload.Group))
	}

	records := merged.DynamicDataStore[groupID]
	present := make(map[string]bool, len(records))
	for _, r := range records {
		present[r.ID] = true
	}
	for _, r := range payload.Records {
		if present[r.ID] {
			result.Skipped++
			continue
		}
		records = append(records, snapshot.CopyRecord(r))
		present[r.ID] = true
		result.Applied++
	}
	merged.DynamicDataStore[groupID] = records
}
