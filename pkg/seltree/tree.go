// Package seltree builds a hierarchical tree of selectable nodes over a
// changeset, used when the operator approves or rejects whole branches
// rather than individual records. Selection cascades down from a toggled
// node to its descendants, never up to its ancestors.
package seltree

import (
	"fmt"

	"github.com/campushq/reconcile/pkg/differ"
	"github.com/campushq/reconcile/pkg/snapshot"
)

// Kind is the granularity of a selection node.
type Kind string

const (
	// KindModule is an entity-family root wrapping a whole collection.
	KindModule Kind = "module"
	// KindGroup is one data config group under the records module.
	KindGroup Kind = "group"
	// KindItem is a single diff item leaf.
	KindItem Kind = "item"
)

// Node is one selectable node of the tree.
type Node struct {
	ID            string
	Label         string
	Kind          Kind
	Children      []*Node
	IncomingCount int  // Items arriving from the external snapshot
	CurrentCount  int  // Items already in the local snapshot
	IsNew         bool // True when the branch has no local counterpart
	Selected      bool
	Payload       any
}

// GroupPayload carries a data config group schema together with the
// incoming records of its branch, so a merge can ensure the schema
// exists locally before the records land.
type GroupPayload struct {
	Group   snapshot.DataConfigGroup
	Records []snapshot.DynamicRecord
}

// Tree is a selection tree with an id index for toggling.
type Tree struct {
	Roots []*Node
	index map[string]*Node
}

// Find returns the node with the given id, or nil.
func (t *Tree) Find(id string) *Node {
	return t.index[id]
}

// Toggle sets the node's selection state and cascades it to every
// descendant. Ancestors are never touched: deselecting a child leaves
// its parent selected, and re-selecting a leaf does not re-select the
// branch above it. Returns false when no node has the given id.
func (t *Tree) Toggle(id string, checked bool) bool {
	node := t.index[id]
	if node == nil {
		return false
	}
	setRecursive(node, checked)
	return true
}

// Walk visits every node depth-first until fn returns false.
func (t *Tree) Walk(fn func(*Node) bool) {
	var visit func(*Node) bool
	visit = func(n *Node) bool {
		if !fn(n) {
			return false
		}
		for _, child := range n.Children {
			if !visit(child) {
				return false
			}
		}
		return true
	}
	for _, root := range t.Roots {
		if !visit(root) {
			return
		}
	}
}

func setRecursive(n *Node, checked bool) {
	n.Selected = checked
	for _, child := range n.Children {
		setRecursive(child, checked)
	}
}

// Build constructs the selection tree for a changeset: one module root
// per entity family with incoming items, and one group node per data
// config group under the records module. Every node starts selected.
func Build(local *snapshot.Snapshot, cs *differ.Changeset) *Tree {
	if local == nil {
		local = snapshot.New()
	}
	t := &Tree{index: map[string]*Node{}}

	if len(cs.Units) > 0 {
		t.addRoot(buildModule("units", "Organizational Units", cs.Units, len(local.Units), externals(cs.Units)))
	}
	if len(cs.Faculties) > 0 {
		t.addRoot(buildModule("faculties", "Faculty Profiles", cs.Faculties, len(local.Faculties), externals(cs.Faculties)))
	}
	if len(cs.Assignments) > 0 {
		t.addRoot(buildModule("assignments", "Unit Assignments", cs.Assignments, len(local.HumanResources), externals(cs.Assignments)))
	}

	if len(cs.Records) > 0 {
		root := &Node{
			ID:       "records",
			Label:    "Dynamic Records",
			Kind:     KindModule,
			Selected: true,
		}
		for _, groupID := range cs.GroupIDs() {
			items := cs.Records[groupID]
			isNew := local.Group(groupID) == nil
			label := groupID
			schema, ok := cs.Groups[groupID]
			if !ok && !isNew {
				schema = snapshot.CopyGroup(*local.Group(groupID))
			}
			if schema.Name != "" {
				label = schema.Name
			}
			groupNode := &Node{
				ID:            "records/" + groupID,
				Label:         label,
				Kind:          KindGroup,
				IncomingCount: len(items),
				CurrentCount:  len(local.DynamicDataStore[groupID]),
				IsNew:         isNew,
				Selected:      true,
				Payload: GroupPayload{
					Group:   schema,
					Records: externals(items),
				},
			}
			for i := range items {
				leaf := buildLeaf(groupNode.ID, items[i])
				groupNode.Children = append(groupNode.Children, leaf)
				t.index[leaf.ID] = leaf
			}
			root.Children = append(root.Children, groupNode)
			root.IncomingCount += len(items)
			t.index[groupNode.ID] = groupNode
		}
		t.addRoot(root)
	}

	return t
}

func (t *Tree) addRoot(n *Node) {
	t.Roots = append(t.Roots, n)
	t.index[n.ID] = n
	for _, child := range n.Children {
		if _, ok := t.index[child.ID]; !ok {
			t.index[child.ID] = child
		}
	}
}

// buildModule creates a family root with one leaf per diff item and the
// raw external collection as payload for coarse-grained merging.
func buildModule[T any](id, label string, items []differ.Item[T], current int, payload []T) *Node {
	node := &Node{
		ID:            id,
		Label:         label,
		Kind:          KindModule,
		IncomingCount: len(items),
		CurrentCount:  current,
		IsNew:         current == 0,
		Selected:      true,
		Payload:       payload,
	}
	for i := range items {
		node.Children = append(node.Children, buildLeaf(id, items[i]))
	}
	return node
}

func buildLeaf[T any](parentID string, item differ.Item[T]) *Node {
	return &Node{
		ID:            fmt.Sprintf("%s/%s", parentID, item.ID),
		Label:         item.Label,
		Kind:          KindItem,
		IncomingCount: 1,
		IsNew:         item.Status == differ.StatusNew,
		Selected:      true,
		Payload:       item,
	}
}

// externals collects the external records of a family's diff items.
func externals[T any](items []differ.Item[T]) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.External != nil {
			out = append(out, *it.External)
		}
	}
	return out
}
