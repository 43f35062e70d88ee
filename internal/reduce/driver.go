// Package reduce orchestrates the four transformation passes against one
// oracle and one output sink, in the fixed order spec.md requires.
package reduce

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"goreduce/internal/output"
	"goreduce/internal/passes"
	"goreduce/internal/rust"
)

// Oracle is the subset of oracle.Oracle the driver depends on. Tests satisfy
// it with an in-process fake instead of spawning a real command, the same
// way the pack's own test style favors fixtures over shelling out.
type Oracle interface {
	Query(ctx context.Context, f *rust.File) bool
}

// stage names one pass for logging and for the fixed execution order.
type stage struct {
	name string
	run  func(ctx context.Context, f *rust.File, try passes.Try) error
}

var stages = []stage{
	{"pruning items", passes.Prune},
	{"reducing derive lists", passes.Derive},
	{"removing doc attributes", passes.Doc},
	{"clearing blocks", passes.Blocks},
}

// Run drives f through every stage in sequence, each to its own fixed
// point — spec.md's Open Question (b): there is no repeated cross-pass
// iteration here, matching the original tool exactly.
func Run(ctx context.Context, f *rust.File, o Oracle, sink output.Sink, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	try := func(ctx context.Context, f *rust.File) bool {
		if !o.Query(ctx, f) {
			return false
		}
		sink.Output(f.Bytes())
		return true
	}

	for _, s := range stages {
		log.Info(s.name)
		if err := s.run(ctx, f, try); err != nil {
			return fmt.Errorf("reduce: %s: %w", s.name, err)
		}
	}
	return nil
}
