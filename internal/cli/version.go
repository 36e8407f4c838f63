package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/regdrive/domrobot/pkg/api"
)

// newVersionCmd creates and returns a new version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Run: func(cmd *cobra.Command, args []string) {
			if jsonOutput {
				printJSON(map[string]string{
					"version": api.Version,
					"go":      runtime.Version(),
				})
				return
			}
			fmt.Printf("domrobot %s (%s)\n", api.Version, runtime.Version())
		},
	}
}
