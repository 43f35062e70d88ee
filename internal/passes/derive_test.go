package passes

import (
	"context"
	"strings"
	"testing"

	"goreduce/internal/rust"
)

func TestDeriveReducesToMinimalSet(t *testing.T) {
	ctx := context.Background()
	src := []byte("#[derive(Debug, Clone, PartialEq)]\nstruct A;\n")
	f, err := rust.Parse(ctx, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	try := interestingIf(func(s string) bool {
		return strings.Contains(s, "Clone")
	})

	if err := Derive(ctx, f, try); err != nil {
		t.Fatalf("Derive: %v", err)
	}

	got := string(f.Bytes())
	if strings.Contains(got, "Debug") || strings.Contains(got, "PartialEq") {
		t.Errorf("expected Debug and PartialEq removed, got: %s", got)
	}
	if !strings.Contains(got, "Clone") {
		t.Errorf("expected Clone to survive, got: %s", got)
	}
}

func TestDeriveRemovesEmptyAttribute(t *testing.T) {
	ctx := context.Background()
	src := []byte("#[derive(Debug)]\nstruct A;\n")
	f, err := rust.Parse(ctx, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	try := interestingIf(func(s string) bool {
		return !strings.Contains(s, "Debug")
	})

	if err := Derive(ctx, f, try); err != nil {
		t.Fatalf("Derive: %v", err)
	}

	got := string(f.Bytes())
	if strings.Contains(got, "derive") {
		t.Errorf("expected whole derive attribute removed, got: %s", got)
	}
	if !strings.Contains(got, "struct A;") {
		t.Errorf("expected struct to survive, got: %s", got)
	}
}
