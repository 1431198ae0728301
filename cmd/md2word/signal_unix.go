//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals stop the server gracefully and cancel batch conversions.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
