package oracle

import (
	"context"
	"os"
	"testing"

	"goreduce/internal/rust"
)

func TestQueryAccepted(t *testing.T) {
	o := New([]string{"sh", "-c", "exit 0"}, nil)
	f, err := rust.Parse(context.Background(), []byte("fn a() {}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	if !o.Query(context.Background(), f) {
		t.Fatal("expected Query to accept an always-succeeding command")
	}
}

func TestQueryRejected(t *testing.T) {
	o := New([]string{"sh", "-c", "exit 1"}, nil)
	f, err := rust.Parse(context.Background(), []byte("fn a() {}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	if o.Query(context.Background(), f) {
		t.Fatal("expected Query to reject an always-failing command")
	}
}

func TestQueryBadCommandIsRejectedNotErrored(t *testing.T) {
	o := New([]string{"definitely-not-a-real-binary-xyz"}, nil)
	f, err := rust.Parse(context.Background(), []byte("fn a() {}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	if o.Query(context.Background(), f) {
		t.Fatal("expected Query to reject when the command can't be spawned")
	}
}

func TestCheckPathSeesFileContents(t *testing.T) {
	tmp, err := os.CreateTemp("", "oracle-test-*.rs")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString("needle"); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp.Close()

	o := New([]string{"grep", "-q", "needle"}, nil)
	if !o.CheckPath(context.Background(), tmp.Name()) {
		t.Fatal("expected CheckPath to find the needle")
	}

	o2 := New([]string{"grep", "-q", "haystack-only"}, nil)
	if o2.CheckPath(context.Background(), tmp.Name()) {
		t.Fatal("expected CheckPath to reject a non-matching pattern")
	}
}
