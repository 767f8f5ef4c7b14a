// Package instance models the two conduit populations and the external
// collaborators that answer questions about them: systemd for the native
// population and the docker CLI for the container population.
package instance

import "context"

// Population identifies which supervisor manages an instance.
type Population string

const (
	PopulationNative Population = "native"
	PopulationDocker Population = "docker"
)

// State is the runtime state of one instance as reported by its
// supervisor. Idle is derived later by the collector: a healthy instance
// with zero active connections.
type State int

const (
	StateUnknown State = iota
	StateOK
	StateIdle
	StateDown
)

// String returns the state label shown in the dashboard.
func (s State) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateIdle:
		return "idle"
	case StateDown:
		return "down"
	default:
		return "unknown"
	}
}

// Source answers roster and per-instance questions for one population.
// Implementations wrap a collaborator CLI; all methods honor ctx.
type Source interface {
	// Population reports which population this source serves.
	Population() Population

	// List discovers the current roster of instance identities. The
	// roster is rebuilt fresh every cycle and never persisted.
	List(ctx context.Context) ([]string, error)

	// State queries the supervisor for an instance's runtime state.
	State(ctx context.Context, identity string) (State, error)

	// Descriptor returns the configured command line for an instance,
	// used to recover capacity parameters.
	Descriptor(ctx context.Context, identity string) (string, error)

	// TailLog returns the last n log lines for an instance.
	TailLog(ctx context.Context, identity string, n int) ([]string, error)
}
