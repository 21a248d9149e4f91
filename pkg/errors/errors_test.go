package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/campushq/reconcile/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestInvalidActionError(t *testing.T) {
	t.Run("with item", func(t *testing.T) {
		err := &pkgerrors.InvalidActionError{
			ItemID: "f-12",
			Status: "new",
			Action: "merge",
		}
		assert.Equal(t, `invalid action "merge" for status "new" on item f-12`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidAction))
	})

	t.Run("without item", func(t *testing.T) {
		err := &pkgerrors.InvalidActionError{Status: "new", Action: "keep_local"}
		assert.Equal(t, `invalid action "keep_local" for status "new"`, err.Error())
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewInvalidActionError("u-1", "new", "merge")
		assert.True(t, pkgerrors.IsInvalidAction(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewInvalidActionError("u-1", "new", "merge")
		wrapped := fmt.Errorf("rejecting plan: %w", base)
		assert.True(t, pkgerrors.IsInvalidAction(wrapped))
	})
}

func TestMalformedSnapshotError(t *testing.T) {
	t.Run("with subject", func(t *testing.T) {
		err := &pkgerrors.MalformedSnapshotError{
			Family:  "records",
			Subject: "group-3",
			Message: "references a non-existent group",
		}
		assert.Equal(t, "malformed records data (group-3): references a non-existent group", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrMalformedSnapshot))
	})

	t.Run("without subject", func(t *testing.T) {
		err := pkgerrors.NewMalformedSnapshotError("units", "", "collection is nil")
		assert.Equal(t, "malformed units data: collection is nil", err.Error())
		assert.True(t, pkgerrors.IsMalformedSnapshot(err))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "differ",
			Message: "cannot be nil",
		}
		assert.Equal(t, "validation failed for field differ: cannot be nil", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestParseError(t *testing.T) {
	inner := errors.New("unexpected token")

	t.Run("with file", func(t *testing.T) {
		err := pkgerrors.WrapParse("json", "backup.json", inner)
		assert.Equal(t, "parse error in json file backup.json: unexpected token", err.Error())
		assert.True(t, errors.Is(err, inner))
	})

	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapParse("json", "backup.json", nil))
	})
}

func TestIOError(t *testing.T) {
	inner := errors.New("permission denied")
	err := pkgerrors.WrapIO("write", "/tmp/merged.json", inner)
	assert.Equal(t, "IO error during write of /tmp/merged.json: permission denied", err.Error())
	assert.True(t, errors.Is(err, inner))
	assert.NoError(t, pkgerrors.WrapIO("write", "x", nil))
}
