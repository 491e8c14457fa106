package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped by the release build; the default marks a dev build.
var Version = "0.3.0-dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the oscwatch version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "oscwatch version %s\n", Version)
		fmt.Fprintln(cmd.OutOrStdout(), "protocol: OSC 1.0 message subset (i f s b) over UDP")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
