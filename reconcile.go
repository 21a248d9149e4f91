// Package reconcile compares a local dataset snapshot against an
// external one (a cloud backup, a shared folder, or a peer export),
// classifies every external item, and commits an approved subset into a
// new merged snapshot without corrupting referential integrity between
// the four entity families. The engine is I/O-free and side-effect-free:
// it consumes in-memory snapshots and produces a new one.
package reconcile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campushq/reconcile/pkg/differ"
	"github.com/campushq/reconcile/pkg/logging"
	"github.com/campushq/reconcile/pkg/merger"
	"github.com/campushq/reconcile/pkg/policy"
	"github.com/campushq/reconcile/pkg/seltree"
	"github.com/campushq/reconcile/pkg/snapshot"
)

// Engine runs snapshot reconciliation: detection, operator overlay, and
// merge execution. Every call is a pure function of its inputs; the
// local snapshot is never aliased or mutated, so a caller may reuse one
// local snapshot across concurrent independent comparisons.
type Engine interface {
	// Diff compares two snapshots and returns the classified changeset,
	// with the engine's operator overlay already applied
	Diff(ctx context.Context, local, external *snapshot.Snapshot) (*differ.Changeset, error)

	// Apply executes a fine-grained changeset plan against the local
	// snapshot and returns the merged result
	Apply(ctx context.Context, local *snapshot.Snapshot, cs *differ.Changeset) (*merger.Result, error)

	// ApplyTree executes a coarse-grained selection tree against the
	// local snapshot and returns the merged result
	ApplyTree(ctx context.Context, local *snapshot.Snapshot, tree *seltree.Tree) (*merger.Result, error)

	// Tree builds the bulk-approval selection tree for a changeset
	Tree(local *snapshot.Snapshot, cs *differ.Changeset) *seltree.Tree
}

// engine is the default implementation of Engine.
type engine struct {
	differ  differ.Differ
	overlay policy.Overlay
	logger  *zerolog.Logger
}

// New creates a new Engine with options.
func New(opts ...Option) (Engine, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &engine{
		differ:  options.differ,
		overlay: options.overlay,
		logger:  options.logger,
	}, nil
}

// Diff compares two snapshots.
func (e *engine) Diff(ctx context.Context, local, external *snapshot.Snapshot) (*differ.Changeset, error) {
	logger := e.log(ctx)

	cs := e.differ.Snapshots(local, external)
	for _, sk := range cs.Skipped {
		logger.Warn().
			Str("family", sk.Family.String()).
			Str("group", sk.Group).
			Str("reason", sk.Reason).
			Msg("Skipped family with malformed external data")
	}

	if len(e.overlay) > 0 {
		applied, err := policy.ApplyChangeset(cs, e.overlay)
		if err != nil {
			return nil, err
		}
		cs = applied
	}

	s := cs.Summary()
	logger.Info().
		Int("units", s.Units).
		Int("faculties", s.Faculties).
		Int("assignments", s.Assignments).
		Int("records", s.Records).
		Int("conflicts", s.Conflicts).
		Int("suspects", s.Suspects).
		Msg("Detected changes")

	return cs, nil
}

// Apply executes a fine-grained plan.
func (e *engine) Apply(ctx context.Context, local *snapshot.Snapshot, cs *differ.Changeset) (*merger.Result, error) {
	result := merger.Execute(local, cs)
	e.logResult(ctx, result)
	if len(result.Errors) > 0 {
		return result, result.Errors[0]
	}
	return result, nil
}

// ApplyTree executes a coarse-grained selection tree.
func (e *engine) ApplyTree(ctx context.Context, local *snapshot.Snapshot, tree *seltree.Tree) (*merger.Result, error) {
	result := merger.ExecuteTree(local, tree)
	e.logResult(ctx, result)
	return result, nil
}

// Tree builds the bulk-approval selection tree for a changeset.
func (e *engine) Tree(local *snapshot.Snapshot, cs *differ.Changeset) *seltree.Tree {
	return seltree.Build(local, cs)
}

// log returns the engine logger, falling back to the context logger.
func (e *engine) log(ctx context.Context) *zerolog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return logging.FromContext(ctx)
}

// logResult logs the outcome of a merge run.
func (e *engine) logResult(ctx context.Context, result *merger.Result) {
	logger := e.log(ctx)
	for _, w := range result.Warnings {
		logger.Warn().
			Str("assignment", w.AssignmentID).
			Str("field", w.Field).
			Str("ref", w.Ref).
			Msg("Merged assignment has a dangling reference")
	}
	for _, err := range result.Errors {
		logger.Error().Err(err).Msg("Plan item rejected at merge boundary")
	}
	logger.Info().
		Int("applied", result.Applied).
		Int("skipped", result.Skipped).
		Int("warnings", len(result.Warnings)).
		Msg("Merge complete")
}
