package pawfuel

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stoolCmd = &cobra.Command{
	Use:   "stool",
	Short: "Log and review stool checks (Pro)",
}

var stoolAddCmd = &cobra.Command{
	Use:   "add <image>",
	Short: "Analyse a stool photo and log the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			entry, err := rt.app.LogStool(rt.ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rt.tr.T("stool.result", rt.tr.T("stool."+string(entry.Result)), entry.Brightness))
			return nil
		})
	},
}

var stoolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stool checks for the active dog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tRESULT\tBRIGHTNESS\tIMAGE")
			for _, s := range rt.app.StoolLogs() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f\t%s\n", s.Date, rt.tr.T("stool."+string(s.Result)), s.Brightness, s.ImagePath)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(stoolCmd)
	stoolCmd.AddCommand(stoolAddCmd, stoolListCmd)
}
