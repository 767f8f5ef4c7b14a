package instance

import (
	"context"
	"strconv"
	"strings"

	"github.com/babakskr/Conduit-console/internal/errors"
	"github.com/babakskr/Conduit-console/internal/exec"
)

// ContainerPrefix is the naming convention for containerized conduit
// instances: conduit-<identity>.
const ContainerPrefix = "conduit-"

// DockerSource serves the container population through the docker CLI.
type DockerSource struct {
	run exec.Runner
}

// NewDockerSource creates a source backed by the given runner.
func NewDockerSource(run exec.Runner) *DockerSource {
	return &DockerSource{run: run}
}

// Population implements Source.
func (d *DockerSource) Population() Population {
	return PopulationDocker
}

// List implements Source. Stopped containers are included so the
// dashboard can show them as down rather than silently dropping them.
func (d *DockerSource) List(ctx context.Context) ([]string, error) {
	out, err := d.run.Run(ctx, "docker",
		"ps", "--all", "--filter", "name="+ContainerPrefix, "--format", "{{.Names}}")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrRoster,
			"Cannot list conduit containers",
			"Check that the docker daemon is running and you have access to it.")
	}

	var identities []string
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if !strings.HasPrefix(name, ContainerPrefix) {
			continue
		}
		if id := strings.TrimPrefix(name, ContainerPrefix); id != "" {
			identities = append(identities, id)
		}
	}
	return identities, nil
}

// State implements Source.
func (d *DockerSource) State(ctx context.Context, identity string) (State, error) {
	out, err := d.run.Run(ctx, "docker",
		"inspect", "-f", "{{.State.Status}}", d.container(identity))
	if err != nil {
		return StateUnknown, errors.WrapWithCode(err, errors.ErrCollect,
			"Cannot inspect "+d.container(identity), "")
	}

	switch strings.TrimSpace(out) {
	case "running":
		return StateOK, nil
	case "exited", "dead", "removing":
		return StateDown, nil
	case "created", "restarting", "paused":
		return StateUnknown, nil
	}
	return StateUnknown, nil
}

// Descriptor implements Source using the configured container command.
func (d *DockerSource) Descriptor(ctx context.Context, identity string) (string, error) {
	out, err := d.run.Run(ctx, "docker",
		"inspect", "-f", "{{join .Config.Cmd \" \"}}", d.container(identity))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrCollect,
			"Cannot inspect command of "+d.container(identity), "")
	}
	return out, nil
}

// TailLog implements Source. docker interleaves stdout and stderr; both
// are returned.
func (d *DockerSource) TailLog(ctx context.Context, identity string, n int) ([]string, error) {
	out, err := d.run.Run(ctx, "docker",
		"logs", "--tail", strconv.Itoa(n), d.container(identity))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCollect,
			"Cannot tail log of "+d.container(identity), "")
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

func (d *DockerSource) container(identity string) string {
	return ContainerPrefix + identity
}
