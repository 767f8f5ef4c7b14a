package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// versionShort controls whether to show short or full version output
var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of conduit.`,
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Println(versionStr)
			return
		}

		fmt.Printf("conduit %s\n", formatVersion(versionStr))
		fmt.Printf("commit: %s\n", commitStr)
		fmt.Printf("built: %s\n", dateStr)
		fmt.Printf("go: %s\n", runtime.Version())
		fmt.Printf("os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}

// formatVersion ensures version has a 'v' prefix for display
func formatVersion(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}
