package cniinvoke

import (
	"bytes"
	"context"
	"io"
	"os/exec"

	"github.com/containernetworking/cni/pkg/invoke"
)

// Exec runs delegate executables. It mirrors the subset of invoke.Exec the
// invoker needs, but hands back stdout even when the delegate fails.
type Exec interface {
	ExecPlugin(ctx context.Context, pluginPath string, stdinData []byte, environ []string) ([]byte, error)
	FindInPath(plugin string, paths []string) (string, error)
}

// RawExec runs delegates as child processes.
type RawExec struct {
	// Stderr receives the delegate's stderr. Discarded when nil.
	Stderr io.Writer
}

// ExecPlugin feeds stdinData to the plugin, waits for it to exit and returns
// everything it wrote to stdout. A non-zero exit is reported as *exec.ExitError.
func (e *RawExec) ExecPlugin(ctx context.Context, pluginPath string, stdinData []byte, environ []string) ([]byte, error) {
	stdout := &bytes.Buffer{}

	c := exec.CommandContext(ctx, pluginPath)
	c.Env = environ
	c.Stdin = bytes.NewReader(stdinData)
	c.Stdout = stdout
	c.Stderr = e.Stderr

	err := c.Run()
	return stdout.Bytes(), err
}

func (e *RawExec) FindInPath(plugin string, paths []string) (string, error) {
	return invoke.FindInPath(plugin, paths)
}
