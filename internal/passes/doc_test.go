package passes

import (
	"context"
	"strings"
	"testing"

	"goreduce/internal/rust"
)

func TestDocRemovesDocCommentsKeepsOtherAttrs(t *testing.T) {
	ctx := context.Background()
	src := []byte("/// keep me out\n#[derive(Debug)]\nstruct A;\n\n/// also drop\nstruct B;\n")
	f, err := rust.Parse(ctx, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	try := interestingIf(func(s string) bool { return true })

	if err := Doc(ctx, f, try); err != nil {
		t.Fatalf("Doc: %v", err)
	}

	got := string(f.Bytes())
	if strings.Contains(got, "///") {
		t.Errorf("expected all doc comments removed, got: %s", got)
	}
	if !strings.Contains(got, "#[derive(Debug)]") {
		t.Errorf("expected derive attribute to survive doc removal, got: %s", got)
	}
}

func TestDocRemovesDocCommentOnTraitMethod(t *testing.T) {
	ctx := context.Background()
	src := []byte("trait T {\n    /// m docs\n    fn m();\n}\n")
	f, err := rust.Parse(ctx, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	try := interestingIf(func(s string) bool { return true })

	if err := Doc(ctx, f, try); err != nil {
		t.Fatalf("Doc: %v", err)
	}

	got := string(f.Bytes())
	if strings.Contains(got, "///") {
		t.Errorf("expected doc comment on trait method removed, got: %s", got)
	}
	if !strings.Contains(got, "fn m();") {
		t.Errorf("expected trait method signature to survive, got: %s", got)
	}
}

func TestDocRemovesDocCommentInExternBlock(t *testing.T) {
	ctx := context.Background()
	src := []byte("extern \"C\" {\n    /// f docs\n    fn f();\n}\n")
	f, err := rust.Parse(ctx, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	try := interestingIf(func(s string) bool { return true })

	if err := Doc(ctx, f, try); err != nil {
		t.Fatalf("Doc: %v", err)
	}

	got := string(f.Bytes())
	if strings.Contains(got, "///") {
		t.Errorf("expected doc comment on foreign item removed, got: %s", got)
	}
	if !strings.Contains(got, "fn f();") {
		t.Errorf("expected foreign item signature to survive, got: %s", got)
	}
}

func TestDocRemovesDocCommentOnLocalStatement(t *testing.T) {
	ctx := context.Background()
	src := []byte("fn f() {\n    /// dangling\n    let x = 1;\n    x;\n}\n")
	f, err := rust.Parse(ctx, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	try := interestingIf(func(s string) bool { return true })

	if err := Doc(ctx, f, try); err != nil {
		t.Fatalf("Doc: %v", err)
	}

	got := string(f.Bytes())
	if strings.Contains(got, "///") {
		t.Errorf("expected doc comment on a block statement removed, got: %s", got)
	}
	if !strings.Contains(got, "let x = 1;") {
		t.Errorf("expected statement to survive, got: %s", got)
	}
}

func TestDocKeepsRejectedCandidates(t *testing.T) {
	ctx := context.Background()
	src := []byte("/// must stay\nstruct A;\n")
	f, err := rust.Parse(ctx, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	try := interestingIf(func(s string) bool { return false })

	if err := Doc(ctx, f, try); err != nil {
		t.Fatalf("Doc: %v", err)
	}
	if string(f.Bytes()) != string(src) {
		t.Fatalf("expected source unchanged after rejection, got: %s", f.Bytes())
	}
}
