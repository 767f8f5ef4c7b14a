// Package testing provides a scripted Runner fake for collection tests.
package testing

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Call records one invocation made against the fake.
type Call struct {
	Name string
	Args []string
}

// FakeRunner returns scripted output keyed by the full command line.
// Unscripted commands fail, which keeps tests honest about what they
// expect to run.
type FakeRunner struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
	calls   []Call

	// OnRun, when set, is invoked for every call before the scripted
	// lookup. Tests use it to observe concurrency or inject delays.
	OnRun func(name string, args []string)
}

// NewFakeRunner creates an empty fake.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		replies: make(map[string]string),
		errs:    make(map[string]error),
	}
}

// Script registers output for the exact command line.
func (f *FakeRunner) Script(output string, name string, args ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[key(name, args)] = output
}

// ScriptError registers a failure for the exact command line.
func (f *FakeRunner) ScriptError(err error, name string, args ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[key(name, args)] = err
}

// Run implements exec.Runner.
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	if f.OnRun != nil {
		f.OnRun(name, args)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Name: name, Args: append([]string(nil), args...)})

	// A command can have both output and an error scripted, matching
	// collaborators like systemctl that print state and exit non-zero.
	k := key(name, args)
	if err, ok := f.errs[k]; ok {
		return f.replies[k], err
	}
	if out, ok := f.replies[k]; ok {
		return out, nil
	}
	return "", fmt.Errorf("fake runner: unscripted command %q", k)
}

// Calls returns a copy of all recorded invocations.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns how many times the exact command line was run.
func (f *FakeRunner) CallCount(name string, args ...string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	want := key(name, args)
	for _, c := range f.calls {
		if key(c.Name, c.Args) == want {
			n++
		}
	}
	return n
}

func key(name string, args []string) string {
	return name + " " + strings.Join(args, " ")
}
