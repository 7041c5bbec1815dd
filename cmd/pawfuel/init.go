package pawfuel

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local pawfuel database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized pawfuel database at %s\n", rt.store.Path())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
