package cli

import (
	"fmt"

	"github.com/soyeahso/kaiwa/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd(program string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of " + program,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info(program))
		},
	}
}
