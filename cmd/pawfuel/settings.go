package pawfuel

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/pawfuel-cli/internal/service"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			s := rt.app.Settings()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "KEY\tVALUE")
			fmt.Fprintf(out, "units\t%s\n", s.Units)
			fmt.Fprintf(out, "feeding_percent\t%g\n", s.FeedingPercent)
			fmt.Fprintf(out, "morning_time\t%s\n", s.MorningTime)
			fmt.Fprintf(out, "evening_time\t%s\n", s.EveningTime)
			fmt.Fprintf(out, "thaw_time\t%s\n", s.ThawTime)
			fmt.Fprintf(out, "language\t%s\n", s.Language)
			fmt.Fprintf(out, "branch\t%s\n", s.Branch)
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Change one preference",
	Args:      cobra.ExactArgs(2),
	ValidArgs: service.SettingKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			if err := rt.app.SetSetting(rt.ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
}
