package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/campushq/reconcile/pkg/constants"
	"github.com/campushq/reconcile/pkg/differ"
	"github.com/campushq/reconcile/pkg/errors"
	"github.com/campushq/reconcile/pkg/policy"
	"github.com/campushq/reconcile/pkg/snapshot"
)

// NewDiffCommand creates the diff command.
func (a *App) NewDiffCommand() *cobra.Command {
	var overlayFile string
	var noFuzzy, noRecency bool

	cmd := &cobra.Command{
		Use:   "diff <local-snapshot> <external-snapshot>",
		Short: "Compare two snapshots and report classified differences",
		Long: `Diff loads the local and external snapshots, classifies every external
item as new, modified, conflict, or suspect, and prints the result.

Identical items are omitted. An overlay file (JSON or YAML map of item
id to action) may override the default action per item.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.config.NoFuzzy = a.config.NoFuzzy || noFuzzy
			a.config.NoRecency = a.config.NoRecency || noRecency

			cs, err := a.runDiff(cmd, args[0], args[1], overlayFile)
			if err != nil {
				return err
			}
			return a.renderChangeset(cmd, cs)
		},
	}

	cmd.Flags().StringVar(&overlayFile, "overlay", "", "overlay file mapping item ids to actions")
	cmd.Flags().BoolVar(&noFuzzy, "no-fuzzy", false, "disable weak folded-name matching")
	cmd.Flags().BoolVar(&noRecency, "no-recency", false, "ignore record timestamps during classification")

	return cmd
}

// NewMergeCommand creates the merge command.
func (a *App) NewMergeCommand() *cobra.Command {
	var overlayFile string
	var outFile string
	var noFuzzy, noRecency bool

	cmd := &cobra.Command{
		Use:   "merge <local-snapshot> <external-snapshot>",
		Short: "Merge classified external changes into the local snapshot",
		Long: `Merge runs a diff and then applies each item according to its action,
writing the merged snapshot to the output file. The local input file is
never modified.

Matched items keep the local record's id regardless of action. Dangling
assignment references in the merged snapshot are reported as warnings.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.config.NoFuzzy = a.config.NoFuzzy || noFuzzy
			a.config.NoRecency = a.config.NoRecency || noRecency

			if outFile == "" {
				outFile = fmt.Sprintf("merged-%s.json", time.Now().Format(constants.TimeFormatFilename))
			}

			cs, err := a.runDiff(cmd, args[0], args[1], overlayFile)
			if err != nil {
				return err
			}

			local, err := snapshot.Load(args[0])
			if err != nil {
				return err
			}

			eng, err := a.Engine(nil)
			if err != nil {
				return err
			}

			result, err := eng.Apply(cmd.Context(), local, cs)
			if err != nil {
				return err
			}

			if err := result.Snapshot.Save(outFile); err != nil {
				return err
			}

			cmd.Printf("Merged snapshot written to %s\n", outFile)
			cmd.Printf("  applied: %d, skipped: %d\n", result.Applied, result.Skipped)
			for _, w := range result.Warnings {
				cmd.Printf("  warning: assignment %s has dangling %s reference %q\n", w.AssignmentID, w.Field, w.Ref)
			}
			for _, e := range result.Errors {
				cmd.Printf("  error: %v\n", e)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&overlayFile, "overlay", "", "overlay file mapping item ids to actions")
	cmd.Flags().StringVarP(&outFile, "out", "O", "", "output file for the merged snapshot (default merged-<timestamp>.json)")
	cmd.Flags().BoolVar(&noFuzzy, "no-fuzzy", false, "disable weak folded-name matching")
	cmd.Flags().BoolVar(&noRecency, "no-recency", false, "ignore record timestamps during classification")

	return cmd
}

// NewValidateCommand creates the validate command.
func (a *App) NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <snapshot>",
		Short: "Validate a snapshot file",
		Long: `Validate loads a snapshot and checks structural integrity: required
identifiers, unit parent references, and record attribute shapes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.Load(args[0])
			if err != nil {
				return err
			}

			errs := snap.Validate()
			if len(errs) == 0 {
				stats := snap.Stats()
				cmd.Printf("%s is valid: %d units, %d faculties, %d assignments, %d record groups\n",
					args[0], stats.Units, stats.Faculties, stats.Resources, stats.Groups)
				return nil
			}

			for _, e := range errs {
				cmd.Printf("invalid: %v\n", e)
			}
			return fmt.Errorf("%s: %d validation errors", args[0], len(errs))
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("reconcile %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit: %s\n", a.commit)
				cmd.Printf("  built:  %s\n", a.date)
			}
		},
	}
}

// runDiff loads both snapshots, the optional overlay, and computes the
// changeset through the engine.
func (a *App) runDiff(cmd *cobra.Command, localPath, externalPath, overlayFile string) (*differ.Changeset, error) {
	local, err := snapshot.Load(localPath)
	if err != nil {
		return nil, err
	}
	external, err := snapshot.Load(externalPath)
	if err != nil {
		return nil, err
	}

	overlay, err := loadOverlay(overlayFile)
	if err != nil {
		return nil, err
	}

	eng, err := a.Engine(overlay)
	if err != nil {
		return nil, err
	}

	return eng.Diff(cmd.Context(), local, external)
}

// renderChangeset prints a changeset in the configured output format.
func (a *App) renderChangeset(cmd *cobra.Command, cs *differ.Changeset) error {
	switch a.config.Format {
	case "json":
		data, err := json.MarshalIndent(cs, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(cs)
		if err != nil {
			return err
		}
		cmd.Print(string(data))
	default:
		printItems(cmd, "Units", cs.Units)
		printItems(cmd, "Faculties", cs.Faculties)
		printItems(cmd, "Assignments", cs.Assignments)
		for _, groupID := range cs.GroupIDs() {
			printItems(cmd, "Records/"+groupID, cs.Records[groupID])
		}
		for _, sk := range cs.Skipped {
			name := sk.Family.String()
			if sk.Group != "" {
				name += "/" + sk.Group
			}
			cmd.Printf("skipped %s: %s\n", name, sk.Reason)
		}
		cmd.Println(cs.String())
	}
	return nil
}

// printItems prints one family's diff items as text lines.
func printItems[T any](cmd *cobra.Command, family string, items []differ.Item[T]) {
	if len(items) == 0 {
		return
	}
	cmd.Printf("%s:\n", family)
	for _, it := range items {
		label := it.Label
		if label == "" {
			label = it.ID
		}
		cmd.Printf("  [%s -> %s] %s", it.Status, it.Action, label)
		if it.Message != "" {
			cmd.Printf(" (%s)", it.Message)
		}
		cmd.Println()
	}
}

// loadOverlay reads an overlay file mapping item ids to actions.
// JSON and YAML are both accepted; an empty path yields a nil overlay.
func loadOverlay(path string) (policy.Overlay, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapParse("overlay", path, err)
	}

	overlay := make(policy.Overlay, len(raw))
	for id, s := range raw {
		action, err := differ.ParseAction(s)
		if err != nil {
			return nil, err
		}
		overlay[id] = action
	}
	return overlay, nil
}
