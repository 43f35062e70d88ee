package passes

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"goreduce/internal/rust"
)

// Prune implements spec.md §4.4.1: a two-dimensional (level, index)
// enumeration over every prunable slot in the tree. level 0 is the file's
// own top-level items; level+1 descends into a mod's or impl's body, or
// treats a struct's named fields / an enum's variants as leaf slots one
// level below the struct/enum's own item slot (the scheme this
// implementation commits to for spec.md's Open Question (a); see
// DESIGN.md).
func Prune(ctx context.Context, f *rust.File, try Try) error {
	level := 0
	index := 0
	for {
		start, end, found := findPruneCandidate(f.Root(), level, index, f.Bytes())
		if !found {
			if index == 0 {
				return nil
			}
			level++
			index = 0
			continue
		}

		edit, err := f.Delete(ctx, start, end)
		if err != nil {
			return err
		}
		if try(ctx, f) {
			// Keep it; the successor slides into the same index.
			continue
		}
		if err := f.Revert(ctx, edit); err != nil {
			return err
		}
		index++
	}
}

// findPruneCandidate searches the item-list rooted at listNode for the
// index'th remaining prunable slot at the given level, skipping already-
// visited candidates at this level by counting down through every
// container encountered in left-to-right, depth-first order — exactly the
// "single index threaded through all sibling containers at this level"
// behavior of the original's `&mut { index }` temporary.
func findPruneCandidate(listNode *sitter.Node, level, index int, source []byte) (start, end uint32, found bool) {
	idx := index
	return pruneList(listNode, level, &idx, source)
}

func pruneList(listNode *sitter.Node, level int, index *int, source []byte) (start, end uint32, found bool) {
	members := prunableMembers(listNode)

	if level == 0 {
		if *index < len(members) {
			pos, member := members[*index].pos, members[*index].node
			start, end = deletionRange(listNode, member, pos, source)
			return start, end, true
		}
		*index -= len(members)
		return 0, 0, false
	}

	for _, m := range members {
		sub, ok := subList(m.node)
		if !ok {
			continue
		}
		if s, e, ok := pruneList(sub, level-1, index, source); ok {
			return s, e, true
		}
	}
	return 0, 0, false
}

type member struct {
	node *sitter.Node
	pos  int // index among listNode's named children, for attribute-run lookup
}

// prunableMembers returns the non-trivia named children of listNode: its
// items (for source_file/declaration_list), its named fields (for
// field_declaration_list), or its variants (for enum_variant_list).
func prunableMembers(listNode *sitter.Node) []member {
	count := listNode.NamedChildCount()
	out := make([]member, 0, count)
	for i := 0; i < count; i++ {
		c := listNode.NamedChild(i)
		if rust.IsAttrTrivia(c.Type()) {
			continue
		}
		out = append(out, member{node: c, pos: i})
	}
	return out
}

// subList returns the nested prunable list owned by item (a mod's or
// impl's declaration_list, a named struct's field_declaration_list, or an
// enum's enum_variant_list), if item has one. "other" items (functions,
// use-declarations, type aliases, tuple/unit structs, external `mod x;`
// declarations without a body, …) are opaque beyond their own position and
// return ok=false.
func subList(item *sitter.Node) (list *sitter.Node, ok bool) {
	switch item.Type() {
	case rust.KindModItem, rust.KindImplItem:
		for _, c := range rust.NamedChildren(item) {
			if c.Type() == rust.KindDeclarationList {
				return c, true
			}
		}
		return nil, false
	case rust.KindStructItem:
		for _, c := range rust.NamedChildren(item) {
			if c.Type() == rust.KindFieldDeclarationList {
				return c, true
			}
		}
		return nil, false
	case rust.KindEnumItem:
		for _, c := range rust.NamedChildren(item) {
			if c.Type() == rust.KindEnumVariantList {
				return c, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}

// deletionRange computes the byte span to delete for removing member (found
// at position pos among listNode's named children): its own span, extended
// backward to cover any outer attribute/doc-comment run, and — for
// comma-punctuated lists (struct fields, enum variants) — extended further
// to consume one adjacent comma so the list stays syntactically valid.
func deletionRange(listNode, member *sitter.Node, pos int, source []byte) (start, end uint32) {
	runStart := rust.OuterAttrRunStart(listNode, pos, source)
	if runStart == pos {
		start = member.StartByte()
	} else {
		start = listNode.NamedChild(runStart).StartByte()
	}
	end = member.EndByte()

	switch listNode.Type() {
	case rust.KindFieldDeclarationList, rust.KindEnumVariantList:
		if cs, ce, ok := rust.AdjacentComma(listNode, start, end); ok {
			if cs >= end {
				end = ce
			} else {
				start = cs
			}
		}
	}
	return start, end
}
