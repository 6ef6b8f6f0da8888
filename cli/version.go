package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release the binary reports. Release builds override
// it with -ldflags "-X github.com/splicelang/splice/cli.Version=...".
var Version = "v0.3.0"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the splice version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "splice", Version)
		},
	}
}
