package passes

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"goreduce/internal/rust"
)

// Derive implements spec.md §4.4.2: reducing every `#[derive(...)]` list to
// its smallest still-interesting subset, one trait identifier at a time.
// Unlike Prune, the candidate set here is a single flat sequence spanning
// the whole file, and it is recomputed from scratch on every iteration —
// removing one identifier can turn a two-trait derive into a bare `derive`
// attribute whose own span then becomes the next candidate, so there is no
// stable (level, index) coordinate to reuse across accepted changes.
func Derive(ctx context.Context, f *rust.File, try Try) error {
	index := 0
	for {
		cand, ok := deriveCandidate(f.Root(), f.Bytes(), index)
		if !ok {
			return nil
		}

		edit, err := f.Delete(ctx, cand.start, cand.end)
		if err != nil {
			return err
		}
		if try(ctx, f) {
			continue
		}
		if err := f.Revert(ctx, edit); err != nil {
			return err
		}
		index++
	}
}

type deriveSlot struct {
	start, end uint32
}

// deriveCandidate walks the whole tree for `derive` attribute_item and
// inner_attribute_item nodes in source order, flattens their identifier
// lists, and returns the span to delete for the index'th identifier overall:
// the identifier plus one adjacent comma, or — if it is the attribute's only
// identifier — the entire attribute's own span, so a derive list never
// reduces to a dangling `#[derive()]`.
func deriveCandidate(root *sitter.Node, source []byte, index int) (deriveSlot, bool) {
	n := 0
	var found deriveSlot
	var ok bool
	visit := func(node *sitter.Node) bool {
		if node.Type() != rust.KindAttributeItem && node.Type() != rust.KindInnerAttributeItem {
			return false
		}
		if rust.AttributePath(node, source) != "derive" {
			return false
		}
		idents := rust.DeriveIdentifiers(node)
		for _, id := range idents {
			if n == index {
				if len(idents) == 1 {
					found = deriveSlot{start: node.StartByte(), end: node.EndByte()}
				} else if cs, ce, adj := rust.AdjacentComma(tokenTreeOf(node), id.StartByte(), id.EndByte()); adj {
					if cs >= id.EndByte() {
						found = deriveSlot{start: id.StartByte(), end: ce}
					} else {
						found = deriveSlot{start: cs, end: id.EndByte()}
					}
				} else {
					found = deriveSlot{start: id.StartByte(), end: id.EndByte()}
				}
				ok = true
				return true
			}
			n++
		}
		return false
	}
	// rust.Walk skips attribute trivia, so every named node is visited here
	// directly to reach the attribute_item nodes themselves.
	var rec func(node *sitter.Node) bool
	rec = func(node *sitter.Node) bool {
		for _, c := range rust.NamedChildren(node) {
			if visit(c) || rec(c) {
				return true
			}
		}
		return false
	}
	rec(root)
	return found, ok
}

func tokenTreeOf(attr *sitter.Node) *sitter.Node {
	for _, c := range rust.NamedChildren(attr) {
		if c.Type() != rust.KindAttribute {
			continue
		}
		for _, cc := range rust.NamedChildren(c) {
			if cc.Type() == rust.KindTokenTree {
				return cc
			}
		}
	}
	return nil
}
