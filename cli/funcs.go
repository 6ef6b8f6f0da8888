package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/splicelang/splice/core/types"
)

func newFuncsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "funcs",
		Short: "List the built-in function library",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			registry := types.Global()
			for _, name := range registry.Names() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), registry.PrettySignature(name))
			}
		},
	}
}
