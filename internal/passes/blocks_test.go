package passes

import (
	"context"
	"strings"
	"testing"

	"goreduce/internal/rust"
)

func TestBlocksClearsAllBodies(t *testing.T) {
	ctx := context.Background()
	src := []byte("fn a() { let x = 1; println!(\"{}\", x); }\nfn b() { loop { break; } }\n")
	f, err := rust.Parse(ctx, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	try := interestingIf(func(s string) bool { return true })

	if err := Blocks(ctx, f, try); err != nil {
		t.Fatalf("Blocks: %v", err)
	}

	got := string(f.Bytes())
	if strings.Contains(got, "println") || strings.Contains(got, "loop") {
		t.Errorf("expected block bodies cleared, got: %s", got)
	}
	if strings.Count(got, "unimplemented!()") < 2 {
		t.Errorf("expected at least two placeholder blocks, got: %s", got)
	}
}

func TestBlocksSkipsAlreadyCleared(t *testing.T) {
	ctx := context.Background()
	src := []byte("fn a() { unimplemented!() }\n")
	f, err := rust.Parse(ctx, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	calls := 0
	try := func(_ context.Context, f *rust.File) bool {
		calls++
		return true
	}

	if err := Blocks(ctx, f, try); err != nil {
		t.Fatalf("Blocks: %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no oracle queries for an already-placeholder block, got %d", calls)
	}
}
