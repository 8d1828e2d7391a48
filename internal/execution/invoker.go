package execution

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"t262/internal/config"
	"t262/internal/domain"
)

// pipeDrainDelay bounds how long Wait keeps reading stderr after the tool has
// exited, in case a grandchild still holds the pipe open.
const pipeDrainDelay = 100 * time.Millisecond

var _ Invoker = (*ToolInvoker)(nil)

// ToolInvoker runs the external tool as a child process with a hard deadline
type ToolInvoker struct {
	toolPath string
	timeout  time.Duration
}

// NewToolInvoker creates a new ToolInvoker
func NewToolInvoker(cfg *config.Config) *ToolInvoker {
	return &ToolInvoker{
		toolPath: cfg.GetToolPath(),
		timeout:  cfg.Timeout,
	}
}

// Args returns the command-line arguments for inv
func Args(inv domain.Invocation) []string {
	args := []string{inv.Input, "--outfile=" + inv.Output}
	if inv.Minify {
		args = append(args, "--minify")
	}
	return args
}

// Invoke runs the tool on inv.Input. The process races the deadline: whichever
// finishes first decides the result, and a process that loses is killed and
// its partial output removed.
func (r *ToolInvoker) Invoke(ctx context.Context, inv domain.Invocation) (domain.InvocationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.InvocationResult{}, err
	}

	cmd := exec.Command(r.toolPath, Args(inv)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.WaitDelay = pipeDrainDelay

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return domain.InvocationResult{}, fmt.Errorf("start %s: %w", r.toolPath, err)
	}

	exited := make(chan struct{})
	go func() {
		// The exit status is read from ProcessState below
		_ = cmd.Wait()
		close(exited)
	}()

	deadline := time.NewTimer(r.timeout)
	defer deadline.Stop()

	var result domain.InvocationResult
	select {
	case <-exited:
	case <-deadline.C:
		_ = cmd.Process.Kill()
		<-exited
		result.TimedOut = true
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-exited
		removeOutput(inv.Output)
		return domain.InvocationResult{}, ctx.Err()
	}

	result.Duration = time.Since(start)
	result.Stderr = stderr.String()
	result.ExitSucceeded = !result.TimedOut && cmd.ProcessState != nil && cmd.ProcessState.Success()
	if !result.ExitSucceeded {
		removeOutput(inv.Output)
	}
	return result, nil
}

// removeOutput deletes an output file left by a failed run, including a stale
// one from an earlier run, so the file exists only after a success.
func removeOutput(path string) {
	_ = os.Remove(path)
}
