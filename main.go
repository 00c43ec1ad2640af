package main

import (
	"os"

	"gcop/cmd" // Import the cmd package which contains the wrapper entry point
)

// main is the program entry point.
// It delegates to cmd.Execute() which runs the bootstrap flow and returns
// the process exit status.
//
// The gcop project is a bootstrap wrapper around the pre-compiled gcop-rs
// binary (an AI-powered commit message generator and code reviewer):
//   - Resolves the host operating system and CPU architecture to the
//     matching release asset
//   - Downloads the asset on first use, or whenever the cached version
//     marker disagrees with the expected version, into the platform's
//     conventional cache directory
//   - Marks the binary executable on Unix and records the fetched version
//     in a sidecar marker file
//   - Forwards every command line argument verbatim to the cached binary
//     with stdio inherited, and exits with the code the binary produced
//
// Error handling strategy:
//   - Platform resolution and download failures are reported to stderr and
//     terminate the wrapper with status 1 before any child process starts
//   - Once the child runs, its failures are opaque here; only its exit
//     code is relayed
//   - An operator interrupt during the child run terminates the wrapper
//     with status 130
func main() {
	os.Exit(cmd.Execute())
}
