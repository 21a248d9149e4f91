package policy

import (
	"github.com/campushq/reconcile/pkg/differ"
	"github.com/campushq/reconcile/pkg/errors"
	"github.com/campushq/reconcile/pkg/snapshot"
)

// Overlay maps diff item IDs to operator-chosen actions. Items absent
// from the overlay keep their policy defaults.
type Overlay map[string]differ.Action

// Apply returns a copy of items with the overlay's actions applied.
// Every override is validated against the item's status; an invalid
// override aborts with an InvalidActionError before anything merges.
func Apply[T any](items []differ.Item[T], overlay Overlay) ([]differ.Item[T], error) {
	if len(overlay) == 0 {
		return append([]differ.Item[T](nil), items...), nil
	}

	out := make([]differ.Item[T], len(items))
	for i, item := range items {
		if action, ok := overlay[item.ID]; ok {
			if err := Validate(item.Status, action); err != nil {
				return nil, errors.NewInvalidActionError(item.ID, item.Status.String(), action.String())
			}
			item.Action = action
		}
		out[i] = item
	}
	return out, nil
}

// ApplyChangeset returns a copy of the changeset with the overlay
// applied to every family. The input changeset is not modified.
func ApplyChangeset(cs *differ.Changeset, overlay Overlay) (*differ.Changeset, error) {
	out := &differ.Changeset{
		Skipped: append([]differ.SkippedFamily(nil), cs.Skipped...),
	}
	if cs.Groups != nil {
		out.Groups = make(map[string]snapshot.DataConfigGroup, len(cs.Groups))
		for id, g := range cs.Groups {
			out.Groups[id] = snapshot.CopyGroup(g)
		}
	}

	var err error
	if out.Units, err = Apply(cs.Units, overlay); err != nil {
		return nil, err
	}
	if out.Faculties, err = Apply(cs.Faculties, overlay); err != nil {
		return nil, err
	}
	if out.Assignments, err = Apply(cs.Assignments, overlay); err != nil {
		return nil, err
	}

	if cs.Records != nil {
		out.Records = make(map[string][]differ.Item[snapshot.DynamicRecord], len(cs.Records))
	}
	for groupID, items := range cs.Records {
		applied, err := Apply(items, overlay)
		if err != nil {
			return nil, err
		}
		out.Records[groupID] = applied
	}
	return out, nil
}
