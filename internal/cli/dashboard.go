package cli

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/babakskr/Conduit-console/internal/cache"
	"github.com/babakskr/Conduit-console/internal/collect"
	"github.com/babakskr/Conduit-console/internal/config"
	"github.com/babakskr/Conduit-console/internal/dashboard"
	"github.com/babakskr/Conduit-console/internal/exec"
	"github.com/babakskr/Conduit-console/internal/instance"
	"github.com/babakskr/Conduit-console/internal/logger"
	"github.com/babakskr/Conduit-console/internal/netrate"
)

var (
	dashIntervalFlag    int
	dashInterfaceFlag   string
	dashWidthFlag       int
	dashConcurrencyFlag int
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Live telemetry dashboard for both populations",
	Long: `Open the live telemetry dashboard.

Every refresh interval the console discovers the current roster of
native (systemd) and docker conduit instances, collects per-instance
metrics through a bounded worker pool backed by a TTL cache, and renders
the result. NIC throughput is sampled once a second independently of the
refresh interval.

Keys: q quit, p pause/resume, v cycle view filter, c compact, r refresh.

Examples:
  conduit dashboard
  conduit dashboard --interval 5 --interface eth0
  conduit dashboard --width 100`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd)
	},
}

func init() {
	dashboardCmd.Flags().IntVar(&dashIntervalFlag, "interval", 0, "refresh interval in seconds")
	dashboardCmd.Flags().StringVar(&dashInterfaceFlag, "interface", "", "NIC sampled for throughput (default: all non-loopback)")
	dashboardCmd.Flags().IntVar(&dashWidthFlag, "width", 0, "maximum rendered width")
	dashboardCmd.Flags().IntVar(&dashConcurrencyFlag, "concurrency", 0, "collector tasks in flight per population")
}

func dashboardCommand(cmd *cobra.Command) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	// Flags override file and environment values.
	if cmd.Flags().Changed("interval") {
		cfg.Refresh = time.Duration(dashIntervalFlag) * time.Second
	}
	if cmd.Flags().Changed("interface") {
		cfg.Interface = dashInterfaceFlag
	}
	if cmd.Flags().Changed("width") {
		cfg.MaxWidth = dashWidthFlag
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = dashConcurrencyFlag
	}
	cfg = cfg.Validate()

	statCache, err := cache.New(cfg.CacheDir, cfg.Refresh, cfg.CacheFloor)
	if err != nil {
		return err
	}

	run := exec.NewLocal()
	sources := []instance.Source{
		instance.NewSystemdSource(run),
		instance.NewDockerSource(run),
	}
	meta := instance.NewMetaStore(cfg.DataDir)
	orch := collect.NewOrchestrator(sources, statCache, meta, cfg.Concurrency)
	sampler := netrate.NewSampler(cfg.Interface)

	// Read the terminal size before the TUI takes over; the window-size
	// message corrects this once the program is running.
	width := cfg.MaxWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
		width = w
	}

	// The TUI owns the terminal; stray log writes would corrupt frames.
	logger.SetDefault(logger.Noop())

	model := dashboard.NewModel(cfg, orch, sampler, width)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
