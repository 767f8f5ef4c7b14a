// Package exec runs local collaborator commands (systemctl, journalctl,
// docker) behind a small interface so collection code can be tested with
// scripted fakes.
package exec

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/babakskr/Conduit-console/internal/errors"
)

// DefaultTimeout bounds a single collaborator invocation. A slow query
// delays only the cycle it belongs to, never the foreground loop.
const DefaultTimeout = 10 * time.Second

// Runner executes a command and returns its combined output with trailing
// whitespace trimmed.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Local runs commands on the local host via os/exec.
type Local struct {
	// Timeout applies per invocation when the caller's context has no
	// earlier deadline. Zero means DefaultTimeout.
	Timeout time.Duration
}

// NewLocal creates a local runner with the default timeout.
func NewLocal() *Local {
	return &Local{Timeout: DefaultTimeout}
}

// Run executes name with args and returns trimmed combined output.
func (l *Local) Run(ctx context.Context, name string, args ...string) (string, error) {
	timeout := l.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		out := strings.TrimSpace(buf.String())
		if ctx.Err() == context.DeadlineExceeded {
			return out, errors.WrapWithCode(ctx.Err(), errors.ErrRuntime,
				name+" timed out",
				"The collaborator did not answer within the per-call timeout.")
		}
		return out, errors.Wrap(err, name+" failed")
	}

	return strings.TrimSpace(buf.String()), nil
}
