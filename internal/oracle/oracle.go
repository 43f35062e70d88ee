// Package oracle wraps the user-supplied "is this still interesting"
// command. It uses nothing of a rust.File but its current bytes: it
// serializes them to a temp file and runs the command against it.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"goreduce/internal/rust"
)

// ErrBaselineFail is returned by CheckPath's caller flow (cmd/goreduce) when
// the oracle rejects the original, unmodified input — there is nothing to
// reduce if the starting point isn't already interesting.
var ErrBaselineFail = errors.New("oracle: input file is not interesting")

// Oracle runs Argv[0] with Argv[1:] plus one trailing path argument.
type Oracle struct {
	Argv []string
	Log  *zap.Logger
}

// New returns an Oracle for argv, using log (or a no-op logger if nil).
func New(argv []string, log *zap.Logger) *Oracle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Oracle{Argv: argv, Log: log}
}

// CheckPath runs the command directly against path, with no serialization.
// Used once, before any reduction, to confirm the raw input is interesting.
func (o *Oracle) CheckPath(ctx context.Context, path string) bool {
	return o.run(ctx, path)
}

// Query serializes f's current bytes to a fresh temp file (prefix "test",
// matching the original's write_file) and runs the command against it. Any
// failure to create the temp file, write it, spawn the command, or wait for
// it is folded into a false return and logged at debug level — it is never
// surfaced as an error, by design (spec.md's oracle contract).
func (o *Oracle) Query(ctx context.Context, f *rust.File) bool {
	tmp, err := os.CreateTemp("", "test*.rs")
	if err != nil {
		o.Log.Debug("oracle: create temp file failed", zap.Error(err))
		return false
	}
	path := tmp.Name()
	defer os.Remove(path)

	_, werr := tmp.Write(f.Bytes())
	cerr := tmp.Close()
	if werr != nil {
		o.Log.Debug("oracle: write temp file failed", zap.Error(werr))
		return false
	}
	if cerr != nil {
		o.Log.Debug("oracle: close temp file failed", zap.Error(cerr))
		return false
	}

	return o.run(ctx, path)
}

func (o *Oracle) run(ctx context.Context, path string) bool {
	if len(o.Argv) == 0 {
		o.Log.Debug("oracle: empty argv")
		return false
	}
	args := append(append([]string{}, o.Argv[1:]...), path)
	cmd := exec.CommandContext(ctx, o.Argv[0], args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		o.Log.Debug("oracle: command failed", zap.String("path", path), zap.Error(err))
		return false
	}
	return true
}

// CommandString renders argv for log lines and error messages.
func CommandString(argv []string) string {
	return fmt.Sprint(argv)
}
