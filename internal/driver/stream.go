package driver

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/ohmytoolbox/tbx/internal/errors"
)

// StreamResult holds the outcome of a streaming tool invocation.
// Output and Error are the newline-joined lines classified as normal vs.
// error output; Success reflects the process exit status, never the line
// classification.
type StreamResult struct {
	Success bool
	Output  string
	Error   string
}

// StreamRunner executes a long-running tool invocation, forwarding output
// line by line as it arrives.
type StreamRunner interface {
	RunStreaming(ctx context.Context, args []string, onLine func(string)) (StreamResult, error)
}

// IsErrorLine classifies a tool output line. Flashing tools report failures
// on stdout with a FAILED marker; loaders tend to print lowercase "error".
// Case-sensitive by design: "Error:" prefixed status lines from adb are
// still errors by exit status.
func IsErrorLine(line string) bool {
	return strings.Contains(line, "FAILED") || strings.Contains(line, "error")
}

// RunStreaming executes the tool and forwards every stdout/stderr line to
// onLine as it is produced, so long-running operations (flashing, logcat)
// are observable incrementally.
//
// One reader goroutine per pipe feeds a shared channel; the calling
// goroutine drains it. onLine is therefore always invoked on the caller's
// goroutine, never on a reader, so callers may mutate their own state from
// the callback without extra locking.
//
// Cancelling ctx kills the child's process group; the drain loop then
// finishes as the pipes hit EOF, or when they are abandoned after
// pipeWaitDelay if a descendant still holds them open.
func (g *Gateway) RunStreaming(ctx context.Context, args []string, onLine func(string)) (StreamResult, error) {
	g.log.Debug("stream: %s %v", g.tool, args)

	cmd := exec.CommandContext(ctx, g.tool, args...)
	setProcessGroup(cmd)
	cmd.WaitDelay = pipeWaitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return StreamResult{}, errors.WrapWithCode(err, errors.ErrTool,
			"Couldn't create stdout pipe for "+g.tool,
			"This shouldn't happen - please report this bug!")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return StreamResult{}, errors.WrapWithCode(err, errors.ErrTool,
			"Couldn't create stderr pipe for "+g.tool,
			"This shouldn't happen - please report this bug!")
	}

	if err := cmd.Start(); err != nil {
		return StreamResult{}, errors.WrapWithCode(err, errors.ErrTool,
			"Couldn't start "+g.tool,
			"Make sure the tool is installed and on your PATH, or set its path in .tbx.yaml.")
	}

	lines := make(chan string, 64)
	var wg sync.WaitGroup
	wg.Add(2)
	go scanLines(stdout, lines, &wg)
	go scanLines(stderr, lines, &wg)

	// Close the channel only once both pipes reached end-of-stream, so the
	// drain loop below sees every line before we wait on the exit status.
	go func() {
		wg.Wait()
		close(lines)
	}()

	var outLines, errLines []string
	for line := range lines {
		if onLine != nil {
			onLine(line)
		}
		if IsErrorLine(line) {
			errLines = append(errLines, line)
		} else {
			outLines = append(outLines, line)
		}
	}

	waitErr := cmd.Wait()
	res := StreamResult{
		Output: strings.Join(outLines, "\n"),
		Error:  strings.Join(errLines, "\n"),
	}

	if waitErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return res, errors.WrapWithCode(ctx.Err(), errors.ErrTimeout,
				"Command timed out: "+g.tool,
				"The tool was killed. Check the device connection and try again.")
		}
		if ctx.Err() == context.Canceled {
			// Deliberate stop; partial output is still useful to the caller.
			return res, nil
		}
		if _, ok := waitErr.(*exec.ExitError); ok {
			return res, nil
		}
		// Exit status zero; only the pipe drain was abandoned because a
		// descendant still held the write ends.
		if waitErr == exec.ErrWaitDelay {
			res.Success = true
			return res, nil
		}
		return res, errors.WrapWithCode(waitErr, errors.ErrTool,
			"Failed waiting for "+g.tool,
			"Check that the tool did not crash mid-run.")
	}

	res.Success = true
	return res, nil
}

// scanLines reads r line by line into ch until EOF.
func scanLines(r io.Reader, ch chan<- string, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	// Logcat and flash output can carry long lines; grow the scan buffer.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		ch <- scanner.Text()
	}
}
