package differ

import (
	"github.com/campushq/reconcile/pkg/errors"
)

// Family identifies one of the four entity families under comparison.
type Family string

const (
	// FamilyUnit is the organizational unit family.
	FamilyUnit Family = "units"
	// FamilyFaculty is the personnel profile family.
	FamilyFaculty Family = "faculties"
	// FamilyAssignment is the personnel-to-unit assignment family.
	FamilyAssignment Family = "assignments"
	// FamilyRecord is the per-schema dynamic record family.
	FamilyRecord Family = "records"
)

// String returns the string representation of a family.
func (f Family) String() string {
	return string(f)
}

// Status classifies one external item against the local collection.
// It is a computed fact, immutable for the comparison run.
type Status string

const (
	// StatusNew means the external item has no local match.
	StatusNew Status = "new"
	// StatusModified means an identity match was found and fields differ.
	StatusModified Status = "modified"
	// StatusConflict means the match came through a fallback natural key,
	// or two records were updated with indistinguishable recency.
	StatusConflict Status = "conflict"
	// StatusSuspect means only a weak fuzzy match was found; it requires
	// explicit operator confirmation.
	StatusSuspect Status = "suspect"
	// StatusIdentical means the match has no field differences. Identical
	// items are never emitted.
	StatusIdentical Status = "identical"
)

// String returns the string representation of a status.
func (s Status) String() string {
	return string(s)
}

// Action is the operator-controlled disposition of a diff item. The
// merge executor obeys it literally, regardless of status.
type Action string

const (
	// ActionKeepLocal leaves the local record untouched.
	ActionKeepLocal Action = "keep_local"
	// ActionTakeExternal adopts the external record.
	ActionTakeExternal Action = "take_external"
	// ActionMerge overwrites the matched local record's content while
	// preserving the local record's id. Only meaningful for matched items.
	ActionMerge Action = "merge"
	// ActionSkip ignores the item entirely.
	ActionSkip Action = "skip"
)

// String returns the string representation of an action.
func (a Action) String() string {
	return string(a)
}

// ParseAction parses an action string, as found in overlay files and
// CLI arguments.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionKeepLocal, ActionTakeExternal, ActionMerge, ActionSkip:
		return Action(s), nil
	default:
		return "", &errors.ValidationError{
			Field:   "action",
			Value:   s,
			Message: "must be one of keep_local, take_external, merge, skip",
		}
	}
}

// Item is one unit of comparison output: an external record paired (or
// not) with its matched local counterpart, a status, and an action.
// At least one of Local/External is always present. Items are transient,
// created fresh per comparison run and discarded after a commit.
type Item[T any] struct {
	ID      string // Identity key of the external item
	MatchID string // Identity key of the matched local item, "" when new
	Local   *T
	External *T
	Status  Status
	Action  Action
	Message string // Human-readable classification reason
	Label   string // Display label for diff tables and trees
}

// Matched reports whether the item was paired with a local record.
func (it *Item[T]) Matched() bool {
	return it.MatchID != ""
}

// DefaultAction returns the policy default for a status within a family,
// exactly as assigned during detection:
//
//   - new items are taken for units, assignments, and records; personnel
//     additions stay conservative and default to skip
//   - modified items keep the local version, except records, whose
//     modified status is only emitted when the external copy is newer
//   - conflicts merge into the matched local record, except record
//     timestamp ties, which keep local until the operator intervenes
//   - suspects always keep local; weak matches are never auto-merged
func DefaultAction(status Status, family Family) Action {
	switch status {
	case StatusNew:
		if family == FamilyFaculty {
			return ActionSkip
		}
		return ActionTakeExternal
	case StatusModified:
		if family == FamilyRecord {
			return ActionTakeExternal
		}
		return ActionKeepLocal
	case StatusConflict:
		if family == FamilyRecord {
			return ActionKeepLocal
		}
		return ActionMerge
	case StatusSuspect:
		return ActionKeepLocal
	default:
		return ActionSkip
	}
}
