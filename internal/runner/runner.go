package runner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"

	"gcop/internal/logger"
)

// ExitInterrupt is the status the wrapper terminates with when the child
// run is interrupted by the operator, matching the 128+SIGINT shell
// convention.
const ExitInterrupt = 130

// Run executes the cached binary with the given arguments and returns the
// exit status the wrapper should terminate with. stdio is inherited
// unmodified, so interactive prompts and piped output belong entirely to
// the child. A non-nil error means the child could not be started at all.
//
// An interrupt observed while the child runs yields ExitInterrupt
// regardless of the code the child reported. The terminal delivers the
// signal to the whole foreground process group, so the child sees it too;
// the wrapper just waits for it to finish and records the outcome.
func Run(binary string, args []string) (int, error) {
	cmd := exec.Command(binary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	logger.Debug("[DEBUG] Running %s with args %v\n", binary, args)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", binary, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	interrupted := false
	for {
		select {
		case <-sigCh:
			interrupted = true
		case err := <-done:
			if interrupted {
				return ExitInterrupt, nil
			}
			return exitStatus(err)
		}
	}
}

// exitStatus maps the result of Wait onto a process exit status. The
// child's own codes pass through unchanged; a child killed by a signal the
// wrapper never observed has no portable code and is reported as a plain
// failure.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return 1, nil
	}
	return 0, err
}
