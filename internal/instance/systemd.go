package instance

import (
	"context"
	"strconv"
	"strings"

	"github.com/babakskr/Conduit-console/internal/errors"
	"github.com/babakskr/Conduit-console/internal/exec"
)

// UnitPrefix is the systemd unit naming convention for native conduit
// instances: conduit-<identity>.service.
const UnitPrefix = "conduit-"

// SystemdSource serves the native population through systemctl and
// journalctl.
type SystemdSource struct {
	run exec.Runner
}

// NewSystemdSource creates a source backed by the given runner.
func NewSystemdSource(run exec.Runner) *SystemdSource {
	return &SystemdSource{run: run}
}

// Population implements Source.
func (s *SystemdSource) Population() Population {
	return PopulationNative
}

// List implements Source. Identities are unit names with the conduit
// prefix and .service suffix stripped.
func (s *SystemdSource) List(ctx context.Context) ([]string, error) {
	out, err := s.run.Run(ctx, "systemctl",
		"list-units", "--all", "--plain", "--no-legend", UnitPrefix+"*.service")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrRoster,
			"Cannot list native conduit units",
			"Check that systemd is available and the service units are installed.")
	}

	var identities []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		unit := fields[0]
		if !strings.HasPrefix(unit, UnitPrefix) || !strings.HasSuffix(unit, ".service") {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(unit, UnitPrefix), ".service")
		if id != "" {
			identities = append(identities, id)
		}
	}
	return identities, nil
}

// State implements Source. systemctl is-active exits non-zero for
// inactive units, so the output is inspected before the error.
func (s *SystemdSource) State(ctx context.Context, identity string) (State, error) {
	out, err := s.run.Run(ctx, "systemctl", "is-active", s.unit(identity))
	state := strings.TrimSpace(out)

	switch state {
	case "active":
		return StateOK, nil
	case "inactive", "failed", "deactivating":
		return StateDown, nil
	case "activating", "reloading":
		return StateUnknown, nil
	}

	if err != nil {
		return StateUnknown, errors.WrapWithCode(err, errors.ErrCollect,
			"Cannot query state of "+s.unit(identity), "")
	}
	return StateUnknown, nil
}

// Descriptor implements Source using the unit's ExecStart property.
func (s *SystemdSource) Descriptor(ctx context.Context, identity string) (string, error) {
	out, err := s.run.Run(ctx, "systemctl", "show", "-p", "ExecStart", "--value", s.unit(identity))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrCollect,
			"Cannot read ExecStart of "+s.unit(identity), "")
	}
	return out, nil
}

// TailLog implements Source via journalctl.
func (s *SystemdSource) TailLog(ctx context.Context, identity string, n int) ([]string, error) {
	out, err := s.run.Run(ctx, "journalctl",
		"-u", s.unit(identity), "-n", strconv.Itoa(n), "--no-pager", "--output", "cat")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCollect,
			"Cannot tail log of "+s.unit(identity), "")
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

func (s *SystemdSource) unit(identity string) string {
	return UnitPrefix + identity + ".service"
}
