package rust

import sitter "github.com/smacker/go-tree-sitter"

// Visitor is called once for every named node encountered by Walk, in
// depth-first pre-order, together with its parent (nil for the root) and
// its index among the parent's named children. Returning true stops the
// walk immediately — no further nodes are visited, mirroring the early
// `return` in the original's hand-written VisitMut impls, which stops
// recursing once a pass has committed to a single mutation for this pass.
type Visitor func(n, parent *sitter.Node, indexInParent int) (stop bool)

// Walk visits root's named descendants in depth-first pre-order. Nodes that
// are themselves attribute/doc-comment trivia are not visited as candidates
// (they're inspected by looking backward from the nodes they attach to),
// but the walk still does not need to recurse into them since attributes
// and comments have no further structure the passes care about.
func Walk(root *sitter.Node, visit Visitor) bool {
	var rec func(n, parent *sitter.Node) bool
	rec = func(n, parent *sitter.Node) bool {
		count := n.NamedChildCount()
		for i := 0; i < count; i++ {
			c := n.NamedChild(i)
			if IsAttrTrivia(c.Type()) {
				continue
			}
			if visit(c, n, i) {
				return true
			}
			if rec(c, n) {
				return true
			}
		}
		return false
	}
	return rec(root, nil)
}
