// Package lib holds small helpers shared by goreduce's command-line entry
// point.
package lib

import (
	"os"

	"go.uber.org/zap"
)

// Exit logs err as fatal and exits the program with code 1. log may be nil,
// in which case a no-op logger is used and nothing is logged.
func Exit(log *zap.Logger, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Error("fatal", zap.Error(err))
	os.Exit(1)
}
