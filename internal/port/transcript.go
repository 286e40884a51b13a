package port

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
)

// ExecSource streams transcript fragments from an external transcriber
// command, one fragment per stdout line. The command is expected to run
// until killed; cancelling the context stops the capture.
type ExecSource struct {
	Command string
	Args    []string
}

// Start launches the transcriber and returns its fragment stream. The
// channel closes when the process exits or the context is cancelled.
func (s *ExecSource) Start(ctx context.Context) (<-chan string, error) {
	if s.Command == "" {
		return nil, fmt.Errorf("no transcriber command configured")
	}

	cmd := exec.CommandContext(ctx, s.Command, s.Args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("transcriber stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start transcriber: %w", err)
	}

	fragments := make(chan string)
	go func() {
		defer close(fragments)
		defer cmd.Wait()

		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			select {
			case fragments <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	return fragments, nil
}
