// Package output persists accepted reductions: a one-time ".orig" backup,
// an optional rustfmt pass, and two Sink strategies for how often to write.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"go.uber.org/zap"
)

// ErrBackup is returned when the one-time ".orig" backup of the destination
// fails; the original file's bytes would otherwise be unrecoverable, so this
// is always fatal.
var ErrBackup = errors.New("output: backing up original file failed")

// Sink accepts successive accepted snapshots of the file under reduction.
// Output does not wait for the snapshot to be written (StreamingSink.Output
// blocks only while 64 snapshots are already queued); Close flushes and
// joins any background writer before returning.
type Sink interface {
	Output(src []byte)
	Close() error
}

// target bundles the destination path plus the one-time backup state shared
// by both Sink implementations.
type target struct {
	path       string // "-" means stdout
	origPath   string
	backedUp   bool
	useRustfmt bool
	log        *zap.Logger
}

func newTarget(path string, log *zap.Logger) *target {
	if log == nil {
		log = zap.NewNop()
	}
	orig := path
	if orig != "-" {
		orig += ".orig"
	}
	return &target{path: path, origPath: orig, useRustfmt: true, log: log}
}

// persist writes src to t's destination, backing up the previous contents of
// a real destination path exactly once, then running the snapshot through
// rustfmt (falling back to a raw write if rustfmt can't be spawned).
func (t *target) persist(src []byte) error {
	if !t.backedUp && t.path != "-" {
		if err := t.backup(); err != nil {
			return fmt.Errorf("%w: %v", ErrBackup, err)
		}
		t.backedUp = true
	}

	if t.useRustfmt && t.runRustfmt(src) {
		return nil
	}
	return t.rawWrite(src)
}

func (t *target) backup() error {
	in, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer in.Close()

	out, err := os.Create(t.origPath)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// runRustfmt pipes src through `rustfmt` and writes its stdout to the
// destination. A spawn failure is swallowed silently (not logged) and the
// caller falls back to a raw write, matching spec.md's formatter contract.
func (t *target) runRustfmt(src []byte) bool {
	cmd := exec.Command("rustfmt")
	cmd.Stdin = bytes.NewReader(src)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		return false
	}
	return t.rawWrite(out.Bytes()) == nil
}

func (t *target) rawWrite(data []byte) error {
	if t.path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(t.path, data, 0o644)
}

// message is one unit of work handed to a StreamingSink's writer goroutine.
type message struct {
	data []byte
	quit bool
}

// StreamingSink persists every accepted snapshot, coalescing down to the
// newest pending one when the writer falls behind — ported from the
// original's TargetFileWorker, using a buffered channel plus a non-blocking
// drain loop in place of mpsc::try_recv.
type StreamingSink struct {
	t    *target
	ch   chan message
	wg   sync.WaitGroup
	once sync.Once
	err  error // first persist failure, returned by Close
}

// NewStreamingSink starts the background writer goroutine for path.
func NewStreamingSink(path string, log *zap.Logger) *StreamingSink {
	s := &StreamingSink{t: newTarget(path, log), ch: make(chan message, 64)}
	s.wg.Add(1)
	go s.run()
	return s
}

func (s *StreamingSink) run() {
	defer s.wg.Done()
	for msg := range s.ch {
		if msg.quit {
			return
		}
		latest := msg.data
		// Coalesce: drain anything else already queued, keeping only the
		// newest snapshot, before doing the (possibly slow) persist.
	drain:
		for {
			select {
			case next, ok := <-s.ch:
				if !ok || next.quit {
					if err := s.t.persist(latest); err != nil {
						s.t.log.Error("output: persist failed", zap.Error(err))
						if s.err == nil {
							s.err = err
						}
					}
					return
				}
				latest = next.data
			default:
				break drain
			}
		}
		if err := s.t.persist(latest); err != nil {
			s.t.log.Error("output: persist failed", zap.Error(err))
			if s.err == nil {
				s.err = err
			}
		}
	}
}

// Output enqueues src for the background writer. It never blocks the caller
// on the writer's own speed, only on channel capacity.
func (s *StreamingSink) Output(src []byte) {
	cp := append([]byte(nil), src...)
	s.ch <- message{data: cp}
}

// Close stops the writer, waits for it to finish its last persist, and
// returns the first persist error (such as ErrBackup) the writer hit.
func (s *StreamingSink) Close() error {
	s.once.Do(func() {
		s.ch <- message{quit: true}
		close(s.ch)
	})
	s.wg.Wait()
	return s.err
}

// LastOnlySink (the -1/--no-progress CLI mode) only persists the final
// accepted snapshot, once, on Close.
type LastOnlySink struct {
	t       *target
	mu      sync.Mutex
	latest  []byte
	hasData bool
}

// NewLastOnlySink constructs a Sink that defers all writes to Close.
func NewLastOnlySink(path string, log *zap.Logger) *LastOnlySink {
	return &LastOnlySink{t: newTarget(path, log)}
}

func (s *LastOnlySink) Output(src []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = append([]byte(nil), src...)
	s.hasData = true
}

func (s *LastOnlySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasData {
		return nil
	}
	return s.t.persist(s.latest)
}
