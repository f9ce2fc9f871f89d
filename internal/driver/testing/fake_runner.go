// Package testing provides test doubles for the driver package.
package testing

import (
	"context"
	"strings"
	"sync"

	"github.com/ohmytoolbox/tbx/internal/driver"
	"github.com/ohmytoolbox/tbx/internal/errors"
)

// FakeRunner implements driver.Runner with scripted responses keyed by the
// joined argument string. It lets registry and sampler tests exercise
// parsing and policy without spawning real tools.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]driver.Result
	failWith  error

	// Calls records every argument vector passed to Run, for assertions.
	Calls [][]string
}

// NewFakeRunner creates an empty fake runner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		responses: make(map[string]driver.Result),
	}
}

// Respond scripts a successful response for the given argument vector.
func (f *FakeRunner) Respond(args []string, stdout string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[strings.Join(args, " ")] = driver.Result{Success: true, Stdout: stdout}
	return f
}

// RespondFailure scripts a ran-but-failed response for the given argument vector.
func (f *FakeRunner) RespondFailure(args []string, stderr string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[strings.Join(args, " ")] = driver.Result{Success: false, Stderr: stderr}
	return f
}

// FailWith makes every Run call return the given error.
func (f *FakeRunner) FailWith(err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = err
	return f
}

// Run returns the scripted response for args. Unscripted argument vectors
// come back as a TOOL error, mirroring a missing executable.
func (f *FakeRunner) Run(_ context.Context, args ...string) (driver.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, args)

	if f.failWith != nil {
		return driver.Result{}, f.failWith
	}

	res, ok := f.responses[strings.Join(args, " ")]
	if !ok {
		return driver.Result{}, errors.New(errors.ErrTool,
			"no scripted response for: "+strings.Join(args, " "), "")
	}
	return res, nil
}

// CallCount returns the number of Run invocations so far.
func (f *FakeRunner) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// Reset clears recorded calls, keeping scripted responses.
func (f *FakeRunner) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = nil
}
