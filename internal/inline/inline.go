// Package inline resolves `mod name;` declarations into inline module
// bodies, turning a multi-file crate into the single combined tree the
// rest of the tool operates on.
package inline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/multierr"

	"goreduce/internal/rust"
)

// NotFoundEntry is one unresolved `mod name;` declaration: neither
// `dir/name.rs` nor `dir/name/mod.rs` exists next to the declaring file.
type NotFoundEntry struct {
	Module     string
	DeclaredIn string
	DeclaredAt int // 1-based line
}

func (e NotFoundEntry) Error() string {
	return fmt.Sprintf("mod %s @ %s:%d", e.Module, e.DeclaredIn, e.DeclaredAt)
}

// NotFoundError aggregates every NotFoundEntry collected across an Inline
// run, via multierr, so a single invocation reports every missing module
// instead of stopping at the first one.
type NotFoundError struct {
	Err     error
	Entries []NotFoundEntry
}

func (e *NotFoundError) Error() string {
	return "inline: unresolved module(s):\n" + e.Err.Error()
}

func (e *NotFoundError) Unwrap() error { return e.Err }

func newNotFoundError(entries []NotFoundEntry) *NotFoundError {
	var combined error
	for _, ent := range entries {
		combined = multierr.Append(combined, ent)
	}
	return &NotFoundError{Err: combined, Entries: entries}
}

// Inline parses rootPath and recursively splices every resolvable `mod
// name;` declaration it (transitively) contains into an inline
// declaration_list body. It returns the combined tree even when some
// modules could not be resolved, paired with a *NotFoundError listing all
// of them — the caller decides whether a partially-inlined tree is still
// worth reporting on.
func Inline(ctx context.Context, rootPath string) (*rust.File, error) {
	source, err := os.ReadFile(rootPath)
	if err != nil {
		return nil, fmt.Errorf("inline: reading %s: %w", rootPath, err)
	}
	f, err := rust.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("inline: parsing %s: %w", rootPath, err)
	}

	var notFound []NotFoundEntry
	if err := inlineFile(ctx, f, filepath.Dir(rootPath), rootPath, &notFound); err != nil {
		f.Close()
		return nil, err
	}

	if len(notFound) > 0 {
		return f, newNotFoundError(notFound)
	}
	return f, nil
}

// inlineFile resolves every external mod declaration in f, splicing in each
// child file's own (recursively inlined) contents. It repeatedly re-scans f
// from the root since every splice reparses the whole tree and invalidates
// prior node references; already-failed module names are remembered so a
// missing module is reported exactly once instead of looping forever.
func inlineFile(ctx context.Context, f *rust.File, dir, declaredIn string, notFound *[]NotFoundEntry) error {
	failed := map[string]bool{}
	for {
		modNode, name, ok := findUnresolvedMod(f.Root(), f.Bytes(), failed)
		if !ok {
			return nil
		}

		start, end, hasSemi := rust.SemicolonRange(modNode)
		if !hasSemi {
			failed[name] = true
			continue
		}
		line := rust.LineAt(f.Bytes(), modNode.StartByte())

		childPath, resolved := resolveModPath(dir, name)
		if !resolved {
			failed[name] = true
			*notFound = append(*notFound, NotFoundEntry{Module: name, DeclaredIn: declaredIn, DeclaredAt: line})
			continue
		}

		childSource, err := os.ReadFile(childPath)
		if err != nil {
			failed[name] = true
			*notFound = append(*notFound, NotFoundEntry{Module: name, DeclaredIn: declaredIn, DeclaredAt: line})
			continue
		}
		childFile, err := rust.Parse(ctx, childSource)
		if err != nil {
			return fmt.Errorf("inline: parsing %s: %w", childPath, err)
		}

		childDir := filepath.Dir(childPath)
		if err := inlineFile(ctx, childFile, childDir, childPath, notFound); err != nil {
			childFile.Close()
			return err
		}

		body := append([]byte(" {\n"), childFile.Bytes()...)
		body = append(body, []byte("\n}")...)
		childFile.Close()

		if _, err := f.Splice(ctx, start, end, body); err != nil {
			return fmt.Errorf("inline: splicing mod %s: %w", name, err)
		}
	}
}

// findUnresolvedMod returns the first mod_item in root (depth-first,
// source order) that has no declaration_list body yet and whose name is
// not in failed.
func findUnresolvedMod(root *sitter.Node, source []byte, failed map[string]bool) (*sitter.Node, string, bool) {
	var found *sitter.Node
	var foundName string
	rust.Walk(root, func(n, _ *sitter.Node, _ int) bool {
		if n.Type() != rust.KindModItem || rust.HasBody(n) {
			return false
		}
		name, ok := rust.ModuleName(n, source)
		if !ok || failed[name] {
			return false
		}
		found, foundName = n, name
		return true
	})
	return found, foundName, found != nil
}

// resolveModPath implements Rust's two-file module resolution convention:
// dir/name.rs, falling back to dir/name/mod.rs.
func resolveModPath(dir, name string) (string, bool) {
	flat := filepath.Join(dir, name+".rs")
	if fileExists(flat) {
		return flat, true
	}
	nested := filepath.Join(dir, name, "mod.rs")
	if fileExists(nested) {
		return nested, true
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
