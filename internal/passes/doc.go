package passes

import (
	"context"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"goreduce/internal/rust"
)

// Doc implements spec.md §4.4.3: removing doc comments and `#[doc(...)]`
// attributes one container at a time, leaving any other attributes in the
// same run untouched. The search is a single counter (targetIndex) walked
// across the *whole* tree — every node that can carry a leading attribute
// run, not just the item/field/variant containers Prune descends into — so
// a single traversal both skips prior candidates and stops at the next one
// (the "cur_index vs. target_index" scheme the original's macro-generated
// VisitMut impl uses, which touches every item, impl-item, trait-item,
// foreign-item, statement, and a wide set of expression/pattern nodes, not
// only the structural containers Prune cares about).
func Doc(ctx context.Context, f *rust.File, try Try) error {
	targetIndex := 0
	for {
		nodes, found := findDocSlot(f.Root(), f.Bytes(), targetIndex)
		if !found {
			return nil
		}

		edits, err := deleteDocNodes(ctx, f, nodes)
		if err != nil {
			return err
		}
		if try(ctx, f) {
			continue
		}
		for i := len(edits) - 1; i >= 0; i-- {
			if err := f.Revert(ctx, edits[i]); err != nil {
				return err
			}
		}
		targetIndex++
	}
}

// findDocSlot walks every named node in the tree via rust.Walk — which
// already recurses into mod/impl/trait/foreign-mod bodies, struct fields,
// enum variants, block statements, match arms, closures, and every other
// expression/pattern position, since it has no notion of "prunable" — and,
// at each node, checks two places a doc run can live: the attribute/comment
// siblings immediately preceding it within its parent (outer doc comments
// and `#[doc]`), and its own leading inner-attribute run if it is itself a
// container (`//!`/`#![doc]` at the top of a file, block, or item body).
// Runs with no doc trivia in them are skipped without being counted; cur
// counts only runs that have doc trivia, and the target'th such run is
// returned.
func findDocSlot(root *sitter.Node, source []byte, targetIndex int) ([]*sitter.Node, bool) {
	cur := 0
	var found []*sitter.Node
	var ok bool

	checkLeading := func(n *sitter.Node) bool {
		leadEnd := rust.LeadingInnerAttrRunEnd(n, source)
		if leadEnd == 0 {
			return false
		}
		nodes := docNodesAmong(n, 0, leadEnd, source)
		if len(nodes) == 0 {
			return false
		}
		if cur == targetIndex {
			found, ok = nodes, true
			return true
		}
		cur++
		return false
	}

	if checkLeading(root) {
		return found, true
	}

	rust.Walk(root, func(n, parent *sitter.Node, idx int) bool {
		if parent != nil {
			if runStart := rust.OuterAttrRunStart(parent, idx, source); runStart < idx {
				if nodes := docNodesAmong(parent, runStart, idx, source); len(nodes) > 0 {
					if cur == targetIndex {
						found, ok = nodes, true
						return true
					}
					cur++
				}
			}
		}
		return checkLeading(n)
	})
	return found, ok
}

// docNodesAmong returns the named children of listNode in [lo, hi) that are
// doc trivia (doc comments or #[doc]/#![doc] attributes), preserving any
// sibling non-doc attributes in that same range untouched.
func docNodesAmong(listNode *sitter.Node, lo, hi int, source []byte) []*sitter.Node {
	var out []*sitter.Node
	for i := lo; i < hi; i++ {
		c := listNode.NamedChild(i)
		path := rust.AttributePath(c, source)
		if rust.IsDocTrivia(c.Type(), c.Content(source), path) {
			out = append(out, c)
		}
	}
	return out
}

// deleteDocNodes removes every node in nodes as a single logical edit,
// processed rightmost-first so each node's precomputed byte offsets stay
// valid for the deletes still to come; it returns the individual Edits in
// application order so the caller can revert them in exact LIFO order.
func deleteDocNodes(ctx context.Context, f *rust.File, nodes []*sitter.Node) ([]rust.Edit, error) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].StartByte() > nodes[j].StartByte() })
	edits := make([]rust.Edit, 0, len(nodes))
	for _, n := range nodes {
		e, err := f.Delete(ctx, n.StartByte(), n.EndByte())
		if err != nil {
			return edits, err
		}
		edits = append(edits, e)
	}
	return edits, nil
}
