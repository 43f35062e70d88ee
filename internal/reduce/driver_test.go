package reduce

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"goreduce/internal/rust"
)

// fakeOracle treats a snapshot as interesting exactly when it contains every
// string in want, mirroring the table-driven fixture style this pack's own
// tests use in place of shelling out to a real compiler.
type fakeOracle struct {
	want []string
}

func (o fakeOracle) Query(_ context.Context, f *rust.File) bool {
	s := string(f.Bytes())
	for _, w := range o.want {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}

type fakeSink struct {
	snapshots [][]byte
	closed    bool
}

func (s *fakeSink) Output(src []byte) {
	s.snapshots = append(s.snapshots, append([]byte(nil), src...))
}

func (s *fakeSink) Close() error {
	s.closed = true
	return nil
}

func TestRunReducesThroughAllStages(t *testing.T) {
	ctx := context.Background()
	src := []byte(`/// a doc comment
#[derive(Debug, Clone)]
struct Keep {
    needed: u32,
    extra: u32,
}

fn noise() {
    println!("discard me");
}
`)
	f, err := rust.Parse(ctx, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	o := fakeOracle{want: []string{"struct Keep", "needed", "Clone"}}
	sink := &fakeSink{}

	if err := Run(ctx, f, o, sink, zap.NewNop()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := string(f.Bytes())
	if strings.Contains(got, "noise") {
		t.Errorf("expected unneeded function pruned, got: %s", got)
	}
	if strings.Contains(got, "extra") {
		t.Errorf("expected unneeded field pruned, got: %s", got)
	}
	if strings.Contains(got, "Debug") {
		t.Errorf("expected unneeded derive trait removed, got: %s", got)
	}
	if strings.Contains(got, "///") {
		t.Errorf("expected doc comment removed, got: %s", got)
	}
	if !strings.Contains(got, "Clone") || !strings.Contains(got, "needed") {
		t.Errorf("expected required pieces to survive, got: %s", got)
	}
	if len(sink.snapshots) == 0 {
		t.Error("expected at least one accepted snapshot to reach the sink")
	}
}

func TestRunNoReductionPossible(t *testing.T) {
	ctx := context.Background()
	src := []byte("fn only() {}\n")
	f, err := rust.Parse(ctx, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	o := fakeOracle{want: []string{"fn only"}}
	sink := &fakeSink{}

	if err := Run(ctx, f, o, sink, zap.NewNop()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(f.Bytes()) != string(src) {
		t.Fatalf("expected source unchanged, got: %s", f.Bytes())
	}
}
