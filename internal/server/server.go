// Package server optionally launches and supervises the transcription
// backend as a child process.
package server

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Process is a running backend child process.
type Process struct {
	cmd *exec.Cmd
}

// Launch starts command with the child's stdout and stderr attached to
// ours, so backend logs land in the same terminal. The command string is
// split on whitespace; quoting is not supported.
func Launch(command string) (*Process, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("server command is empty")
	}

	cmd := exec.Command(fields[0], fields[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start server '%s': %w", fields[0], err)
	}

	fmt.Printf("[server] started '%s' (pid %d)\n", command, cmd.Process.Pid)
	return &Process{cmd: cmd}, nil
}

// Stop asks the backend to exit and kills it if it has not within a few
// seconds. Safe to call once.
func (p *Process) Stop() {
	if p == nil || p.cmd.Process == nil {
		return
	}

	_ = p.cmd.Process.Signal(os.Interrupt)

	done := make(chan struct{})
	go func() {
		_, _ = p.cmd.Process.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		fmt.Printf("[server] backend did not exit, killing pid %d\n", p.cmd.Process.Pid)
		_ = p.cmd.Process.Kill()
		<-done
	}
}
