package main

import (
	"fmt"
	"os"
)

// Exit codes.
const (
	ExitSuccess = 0 // Normal completion, status, and listings
	ExitError   = 1 // Runtime failure or unknown topic name
)

// exitWithError prints an error to stderr and exits with the given code.
func exitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(code)
}
