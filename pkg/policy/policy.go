// Package policy computes default actions for diff items and validates
// operator overrides before they reach the merge executor. Operator
// edits are represented as an explicit overlay map applied over the
// detector's output, never as mutation of the detector's items.
package policy

import (
	"github.com/campushq/reconcile/pkg/differ"
	"github.com/campushq/reconcile/pkg/errors"
)

// Default returns the default action for a status within a family.
func Default(status differ.Status, family differ.Family) differ.Action {
	return differ.DefaultAction(status, family)
}

// Validate checks whether an action is permitted for a status. New
// items have no resolvable local target, so merge and keep_local are
// rejected for them; only take_external and skip apply.
func Validate(status differ.Status, action differ.Action) error {
	switch action {
	case differ.ActionKeepLocal, differ.ActionTakeExternal, differ.ActionMerge, differ.ActionSkip:
	default:
		return errors.NewInvalidActionError("", status.String(), action.String())
	}

	if status == differ.StatusNew && action != differ.ActionTakeExternal && action != differ.ActionSkip {
		return errors.NewInvalidActionError("", status.String(), action.String())
	}
	return nil
}

// ValidateItem checks one diff item's action against its status.
func ValidateItem[T any](item differ.Item[T]) error {
	if err := Validate(item.Status, item.Action); err != nil {
		return errors.NewInvalidActionError(item.ID, item.Status.String(), item.Action.String())
	}
	return nil
}
