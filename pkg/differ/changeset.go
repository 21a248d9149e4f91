package differ

import (
	"fmt"
	"sort"
	"strings"

	"github.com/campushq/reconcile/pkg/snapshot"
)

// SkippedFamily reports an entity family (or one record group) whose
// external data was malformed and therefore excluded from detection.
type SkippedFamily struct {
	Family Family
	Group  string // Group ID when only one record group was skipped
	Reason string
}

// Changeset holds all diff items of one comparison run, grouped by
// entity family. Record items are further keyed by data config group.
type Changeset struct {
	Units       []Item[snapshot.Unit]
	Faculties   []Item[snapshot.Faculty]
	Assignments []Item[snapshot.Assignment]
	Records     map[string][]Item[snapshot.DynamicRecord]
	Groups      map[string]snapshot.DataConfigGroup // Schemas used per record group
	Skipped     []SkippedFamily
}

// Summary provides per-family and per-status counts for a changeset.
type Summary struct {
	Units       int
	Faculties   int
	Assignments int
	Records     int
	New         int
	Modified    int
	Conflicts   int
	Suspects    int
	Total       int
}

// skip records a skipped family with a reason.
func (c *Changeset) skip(family Family, group, reason string) {
	c.Skipped = append(c.Skipped, SkippedFamily{Family: family, Group: group, Reason: reason})
}

// Summary computes the summary statistics of the changeset.
func (c *Changeset) Summary() Summary {
	s := Summary{
		Units:       len(c.Units),
		Faculties:   len(c.Faculties),
		Assignments: len(c.Assignments),
	}
	for _, items := range c.Records {
		s.Records += len(items)
	}
	s.Total = s.Units + s.Faculties + s.Assignments + s.Records

	tally := func(status Status) {
		switch status {
		case StatusNew:
			s.New++
		case StatusModified:
			s.Modified++
		case StatusConflict:
			s.Conflicts++
		case StatusSuspect:
			s.Suspects++
		}
	}
	for _, it := range c.Units {
		tally(it.Status)
	}
	for _, it := range c.Faculties {
		tally(it.Status)
	}
	for _, it := range c.Assignments {
		tally(it.Status)
	}
	for _, items := range c.Records {
		for _, it := range items {
			tally(it.Status)
		}
	}
	return s
}

// HasChanges returns true if the changeset contains any diff items.
func (c *Changeset) HasChanges() bool {
	return c.Summary().Total > 0
}

// GroupIDs returns the record group ids with diff items, sorted.
func (c *Changeset) GroupIDs() []string {
	ids := make([]string, 0, len(c.Records))
	for id := range c.Records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	s := c.Summary()
	if s.Total == 0 && len(c.Skipped) == 0 {
		return "No changes detected"
	}

	var parts []string
	if s.Units > 0 {
		parts = append(parts, fmt.Sprintf("Units: %d", s.Units))
	}
	if s.Faculties > 0 {
		parts = append(parts, fmt.Sprintf("Faculties: %d", s.Faculties))
	}
	if s.Assignments > 0 {
		parts = append(parts, fmt.Sprintf("Assignments: %d", s.Assignments))
	}
	if s.Records > 0 {
		parts = append(parts, fmt.Sprintf("Records: %d", s.Records))
	}

	out := fmt.Sprintf("Changeset: %s (new %d, modified %d, conflict %d, suspect %d)",
		strings.Join(parts, "; "), s.New, s.Modified, s.Conflicts, s.Suspects)

	if len(c.Skipped) > 0 {
		reasons := make([]string, len(c.Skipped))
		for i, sk := range c.Skipped {
			name := sk.Family.String()
			if sk.Group != "" {
				name += "/" + sk.Group
			}
			reasons[i] = fmt.Sprintf("%s: %s", name, sk.Reason)
		}
		out += fmt.Sprintf(" [skipped %s]", strings.Join(reasons, "; "))
	}
	return out
}
