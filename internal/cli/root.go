package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "huddle" command and registers all
// subcommands.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "huddle",
		Short: "Team collaboration backend with a natural-language assistant",
	}

	root.AddCommand(
		newServeCmd(),
		newSeedCmd(),
		newTokenCmd(),
	)

	return root
}
