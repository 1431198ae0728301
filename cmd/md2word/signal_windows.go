//go:build windows

package main

import "os"

// shutdownSignals stop the server gracefully and cancel batch conversions.
// syscall.SIGTERM is never delivered on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}
