package rust

import sitter "github.com/smacker/go-tree-sitter"

// ModuleName returns the declared name of a mod_item node, e.g. "foo" for
// `mod foo;` or `mod foo { ... }`.
func ModuleName(n *sitter.Node, source []byte) (string, bool) {
	for _, c := range NamedChildren(n) {
		if c.Type() == KindIdentifier {
			return c.Content(source), true
		}
	}
	return "", false
}

// HasBody reports whether a mod_item already has an inline declaration_list
// body, as opposed to being an external `mod foo;` declaration.
func HasBody(n *sitter.Node) bool {
	for _, c := range NamedChildren(n) {
		if c.Type() == KindDeclarationList {
			return true
		}
	}
	return false
}

// SemicolonRange returns the byte range of the trailing ";" token of an
// external mod_item declaration (`mod foo;`), the span the module inliner
// replaces with `{ <child file items> }`.
func SemicolonRange(n *sitter.Node) (start, end uint32, ok bool) {
	count := n.ChildCount()
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if c.Type() == ";" {
			return c.StartByte(), c.EndByte(), true
		}
	}
	return 0, 0, false
}

// LineAt returns the 1-based line number of byte offset pos within source.
func LineAt(source []byte, pos uint32) int {
	line := 1
	for i := uint32(0); i < pos && int(i) < len(source); i++ {
		if source[i] == '\n' {
			line++
		}
	}
	return line
}
