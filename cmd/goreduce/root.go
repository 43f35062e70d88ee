package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"goreduce/internal/config"
	"goreduce/internal/inline"
	"goreduce/internal/oracle"
	"goreduce/internal/output"
	"goreduce/internal/reduce"
	"goreduce/pkg/lib"
)

const longDescription = `goreduce reduces a Rust source file to a smaller file that still triggers
the same bug, by repeatedly deleting or simplifying pieces of it and
re-checking an "interestingness" command (the oracle) after every change.

It prunes items and struct fields, shrinks #[derive(...)] lists, strips
doc comments and #[doc] attributes, and replaces function bodies with
unimplemented!(), keeping every change that still reproduces the bug and
discarding every change that stops reproducing it.

Usage:
  goreduce [flags] -- CMD ARG... FILE

CMD ARG... is run first with FILE appended, then once per candidate with
the path of a temporary file holding that candidate appended; an exit
code of 0 means "still interesting".`

var (
	flagOutput     string
	flagNoProgress bool
	flagPreset     string
	flagConfigPath string
	flagVerbose    bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "goreduce [flags] -- CMD ARG... FILE",
		Short:         "Reduce a Rust test case to a smaller, still-interesting one",
		Long:          longDescription,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write reduced output to PATH (\"-\" = stdout); default overwrites FILE in place")
	cmd.Flags().BoolVarP(&flagNoProgress, "no-progress", "1", false, "only persist the final reduced output")
	cmd.Flags().StringVar(&flagPreset, "preset", "", "look up the oracle command from a named preset instead of the command line")
	cmd.Flags().StringVar(&flagConfigPath, "config", config.DefaultPath, "path to the preset config file")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	argv, filePath, err := resolveArgv(cmd, args)
	if err != nil {
		return err
	}

	log, err := newLogger(flagVerbose)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	ctx := cmd.Context()
	o := oracle.New(argv, log)

	log.Info("checking baseline", zap.String("file", filePath), zap.String("argv", oracle.CommandString(argv)))
	if !o.CheckPath(ctx, filePath) {
		lib.Exit(log, fmt.Errorf("%w: %s (command: %s)", oracle.ErrBaselineFail, filePath, oracle.CommandString(argv)))
	}

	f, ierr := inline.Inline(ctx, filePath)
	if ierr != nil {
		var nf *inline.NotFoundError
		if !asNotFound(ierr, &nf) {
			lib.Exit(log, ierr)
		}
		for _, entry := range nf.Entries {
			fmt.Fprintln(os.Stderr, entry.Error())
		}
		os.Exit(1)
	}
	defer f.Close()

	outPath := flagOutput
	if outPath == "" {
		outPath = filePath
	}

	var sink output.Sink
	if flagNoProgress {
		sink = output.NewLastOnlySink(outPath, log)
	} else {
		sink = output.NewStreamingSink(outPath, log)
	}

	if err := reduce.Run(ctx, f, o, sink, log); err != nil {
		_ = sink.Close()
		lib.Exit(log, err)
	}
	return sink.Close()
}

// resolveArgv splits the command line into the oracle's argv and the target
// file path. With --preset, the config file supplies argv and the lone
// remaining positional argument is the file. Without it, everything after
// "--" is CMD ARG... FILE, matching the original's clap_app! usage exactly.
func resolveArgv(cmd *cobra.Command, args []string) (argv []string, filePath string, err error) {
	if flagPreset != "" {
		c, err := config.Load(flagConfigPath, cmd.Flags().Changed("config"))
		if err != nil {
			return nil, "", err
		}
		argv, ok := c.Argv(flagPreset)
		if !ok {
			return nil, "", fmt.Errorf("goreduce: unknown preset %q", flagPreset)
		}
		if len(args) != 1 {
			return nil, "", fmt.Errorf("goreduce: --preset expects exactly one FILE argument, got %d", len(args))
		}
		return argv, args[0], nil
	}

	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return nil, "", fmt.Errorf("goreduce: expected -- CMD ARG... FILE")
	}
	tail := args[dash:]
	if len(tail) < 2 {
		return nil, "", fmt.Errorf("goreduce: expected -- CMD ARG... FILE, got %v", tail)
	}
	return tail[:len(tail)-1], tail[len(tail)-1], nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopment
	if !verbose {
		return zap.NewProduction()
	}
	return cfg()
}

func asNotFound(err error, target **inline.NotFoundError) bool {
	nf, ok := err.(*inline.NotFoundError)
	if ok {
		*target = nf
	}
	return ok
}
