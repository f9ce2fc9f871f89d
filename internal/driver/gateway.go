// Package driver runs external device tools (adb, fastboot, EDL loaders,
// dump collectors) and reports their output. It knows nothing about what the
// output means; parsing belongs to the callers.
package driver

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/ohmytoolbox/tbx/internal/errors"
	"github.com/ohmytoolbox/tbx/internal/logger"
)

// pipeWaitDelay bounds how long Wait keeps draining the output pipes after
// the context is cancelled. A killed child can leave descendants that
// inherited the pipe write ends; after this delay the pipes are abandoned
// so the call returns instead of waiting for the whole tree to exit.
const pipeWaitDelay = 2 * time.Second

// Result holds the outcome of a single tool invocation.
// Success reflects the process exit status; Stdout and Stderr are captured
// verbatim.
type Result struct {
	Success bool
	Stdout  string
	Stderr  string
}

// Runner executes one external tool invocation to completion.
// Implemented by Gateway; fakes implement it in tests.
type Runner interface {
	Run(ctx context.Context, args ...string) (Result, error)
}

// Gateway invokes one configured external tool.
type Gateway struct {
	tool string
	log  logger.Logger
}

// NewGateway creates a gateway for the given tool executable.
// The tool may be a bare name (resolved via PATH) or an absolute path.
func NewGateway(tool string) *Gateway {
	return &Gateway{
		tool: tool,
		log:  logger.NewEnvLogger("[driver]"),
	}
}

// SetLogger replaces the gateway's logger.
func (g *Gateway) SetLogger(l logger.Logger) {
	g.log = l
}

// Tool returns the configured executable.
func (g *Gateway) Tool() string {
	return g.tool
}

// Run executes the tool with the given arguments and blocks until it exits.
// A non-zero exit status is not an error: it is reported as Success=false
// with Stderr carried through unmodified. Errors are reserved for the tool
// being missing/unspawnable (TOOL) or the context deadline expiring
// (TIMEOUT), in which case the child process is killed.
func (g *Gateway) Run(ctx context.Context, args ...string) (Result, error) {
	g.log.Debug("run: %s %v", g.tool, args)

	cmd := exec.CommandContext(ctx, g.tool, args...)
	setProcessGroup(cmd)
	cmd.WaitDelay = pipeWaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if runErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return res, errors.WrapWithCode(ctx.Err(), errors.ErrTimeout,
				"Command timed out: "+g.tool,
				"The tool was killed. Check the device connection and try again.")
		}
		// The tool exited zero but a descendant (adb's forked server) kept
		// the pipes open past the delay. The exit status stands.
		if runErr == exec.ErrWaitDelay {
			res.Success = true
			return res, nil
		}
		// Tool ran but exited non-zero: surfaced via Success/Stderr, not an error.
		if _, ok := runErr.(*exec.ExitError); ok {
			g.log.Debug("run failed: %s: %s", g.tool, res.Stderr)
			return res, nil
		}
		return res, errors.WrapWithCode(runErr, errors.ErrTool,
			"Couldn't run "+g.tool,
			"Make sure the tool is installed and on your PATH, or set its path in .tbx.yaml.")
	}

	res.Success = true
	return res, nil
}
