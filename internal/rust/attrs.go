package rust

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// NamedChildren returns every named child of n, in source order.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	count := n.NamedChildCount()
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// OuterAttrRunStart walks backward from the named child at idx within parent
// and returns the index of the first contiguous outer-attribute/doc-comment
// sibling immediately preceding it — the node's "attribute list" in spec
// terms. Inner attributes stop the scan: they belong to the enclosing
// container, not to idx's node.
func OuterAttrRunStart(parent *sitter.Node, idx int, source []byte) int {
	start := idx
	for start > 0 {
		prev := parent.NamedChild(start - 1)
		content := prev.Content(source)
		if !IsOuterAttrTrivia(prev.Type(), content) {
			break
		}
		start--
	}
	return start
}

// LeadingInnerAttrRunEnd returns the index one past the last contiguous
// inner-attribute/doc-comment child at the very start of listNode — the
// file's (or enclosing container's) own attribute list, as opposed to an
// attribute list that belongs to the first real item.
func LeadingInnerAttrRunEnd(listNode *sitter.Node, source []byte) int {
	end := 0
	count := listNode.NamedChildCount()
	for end < count {
		c := listNode.NamedChild(end)
		if !IsInnerAttrTrivia(c.Type(), c.Content(source)) {
			break
		}
		end++
	}
	return end
}

// AttributePath returns the dotted path text of an attribute_item or
// inner_attribute_item node, e.g. "derive" or "doc".
func AttributePath(n *sitter.Node, source []byte) string {
	for _, c := range NamedChildren(n) {
		if c.Type() != KindAttribute {
			continue
		}
		if c.NamedChildCount() == 0 {
			return ""
		}
		return c.NamedChild(0).Content(source)
	}
	return ""
}

// DeriveIdentifiers returns the identifier (or scoped identifier) nodes
// inside a `derive` attribute_item's argument token_tree, one per derived
// trait, in source order.
func DeriveIdentifiers(n *sitter.Node) []*sitter.Node {
	var tree *sitter.Node
	for _, c := range NamedChildren(n) {
		if c.Type() != KindAttribute {
			continue
		}
		for _, cc := range NamedChildren(c) {
			if cc.Type() == KindTokenTree {
				tree = cc
			}
		}
	}
	if tree == nil {
		return nil
	}
	var idents []*sitter.Node
	for _, c := range NamedChildren(tree) {
		if c.Type() == KindIdentifier || c.Type() == KindScopedIdentifier {
			idents = append(idents, c)
		}
	}
	return idents
}

// AdjacentComma looks for a "," token immediately following end, or failing
// that immediately preceding start, among listNode's raw (including
// anonymous) children. It returns the comma's byte range, extending the
// deletion of a punctuated-list element so the list stays syntactically
// valid after the element is removed. ok is false if no comma was found in
// either direction (e.g. the list has exactly one element).
func AdjacentComma(listNode *sitter.Node, start, end uint32) (commaStart, commaEnd uint32, ok bool) {
	count := listNode.ChildCount()
	for i := 0; i < count; i++ {
		c := listNode.Child(i)
		if c.StartByte() == end && c.Type() == "," {
			return c.StartByte(), c.EndByte(), true
		}
	}
	for i := 0; i < count; i++ {
		c := listNode.Child(i)
		if c.EndByte() == start && c.Type() == "," {
			return c.StartByte(), c.EndByte(), true
		}
	}
	return 0, 0, false
}
