package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/babakskr/Conduit-console/internal/config"
	"github.com/babakskr/Conduit-console/internal/errors"
)

var initForceFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the console config file",
	Long: `Write a starter configuration to ~/.config/conduit/config.yaml.

Prompts for the sampled network interface, the refresh interval, and the
maximum rendered width. All values have working defaults; the dashboard
runs fine without a config file at all.

Examples:
  conduit init
  conduit init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand()
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForceFlag, "force", false, "overwrite an existing config file")
}

// initFile is the shape written to disk. Only operator-facing settings
// are emitted; cache and data directories keep their defaults.
type initFile struct {
	Refresh   string `yaml:"refresh"`
	Interface string `yaml:"interface,omitempty"`
	MaxWidth  int    `yaml:"max_width"`
}

func initCommand() error {
	path := config.DefaultPath()
	if configFlag != "" {
		path = configFlag
	}

	if _, err := os.Stat(path); err == nil && !initForceFlag {
		return errors.New(errors.ErrConfig,
			"Config file already exists: "+path,
			"Re-run with --force to overwrite it.")
	}

	defaults := config.Default()
	iface := defaults.Interface
	interval := strconv.Itoa(int(defaults.Refresh.Seconds()))
	width := strconv.Itoa(defaults.MaxWidth)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Network interface").
				Description("NIC sampled for throughput; leave empty to aggregate all non-loopback interfaces").
				Value(&iface),
			huh.NewInput().
				Title("Refresh interval (seconds)").
				Validate(validatePositiveInt).
				Value(&interval),
			huh.NewInput().
				Title("Maximum rendered width").
				Validate(validatePositiveInt).
				Value(&width),
		),
	)

	if err := form.Run(); err != nil {
		return errors.Wrap(err, "init cancelled")
	}

	seconds, _ := strconv.Atoi(interval)
	maxWidth, _ := strconv.Atoi(width)

	out, err := yaml.Marshal(initFile{
		Refresh:   fmt.Sprintf("%ds", seconds),
		Interface: iface,
		MaxWidth:  maxWidth,
	})
	if err != nil {
		return errors.Wrap(err, "cannot encode config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create config directory",
			"Check permissions on "+filepath.Dir(path))
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot write config file",
			"Check permissions on "+path)
	}

	fmt.Println("Wrote", path)
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}
