// Package passes implements the four structural transformation passes:
// item pruning, derive-list reduction, doc-attribute removal, and block
// body clearing. Each pass follows the enumerate/mutate/query/keep-or-revert
// protocol described in spec.md §4.4, adapted to the tree-sitter Rust CST.
package passes

import (
	"context"

	"goreduce/internal/rust"
)

// Try queries whether the current state of f is still interesting. It
// composes an oracle query with handing the accepted tree to the output
// pipeline — the driver builds one Try per run and passes it to every pass
// unchanged, matching the original's single `try_compile` closure threaded
// through all four transforms in main.rs.
type Try func(ctx context.Context, f *rust.File) bool
