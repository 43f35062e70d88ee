package passes

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"goreduce/internal/rust"
)

// Blocks implements spec.md §4.4.4: replacing a function/loop/match-arm
// body with `{ unimplemented!() }` one block at a time, using the same
// cur_index/target_index cascading scheme as Doc — already-cleared blocks
// are recognized by their placeholder text and skipped without consuming a
// target_index slot, so accepted changes keep the same target_index and the
// walk naturally advances onto the next real block.
func Blocks(ctx context.Context, f *rust.File, try Try) error {
	targetIndex := 0
	for {
		block, found := findBlockCandidate(f.Root(), f.Bytes(), targetIndex)
		if !found {
			return nil
		}

		edit, err := f.Splice(ctx, block.StartByte(), block.EndByte(), []byte(rust.PlaceholderBlock))
		if err != nil {
			return err
		}
		if try(ctx, f) {
			continue
		}
		if err := f.Revert(ctx, edit); err != nil {
			return err
		}
		targetIndex++
	}
}

func findBlockCandidate(root *sitter.Node, source []byte, targetIndex int) (*sitter.Node, bool) {
	cur := 0
	var found *sitter.Node
	rust.Walk(root, func(n, _ *sitter.Node, _ int) bool {
		if n.Type() != rust.KindBlock {
			return false
		}
		if rust.IsPlaceholderBlock(n.Content(source)) {
			return false
		}
		if cur == targetIndex {
			found = n
			return true
		}
		cur++
		return false
	})
	return found, found != nil
}
