package pawfuel

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			report, err := rt.app.RunDoctor(rt.ctx, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Unknown products in events: %s\n", listOrNone(report.UnknownEventProducts))
			fmt.Fprintf(out, "Unknown products in meals: %s\n", listOrNone(report.UnknownMealProducts))
			fmt.Fprintf(out, "Negative stock: %s\n", listOrNone(report.NegativeStock))
			fmt.Fprintf(out, "Duplicate event ids: %d\n", report.DuplicateEventIDs)
			fmt.Fprintf(out, "Duplicate meal ids: %d\n", report.DuplicateMealIDs)
			fmt.Fprintf(out, "Missing active dog: %t\n", report.MissingActiveDog)
			if report.Integrity != "" {
				fmt.Fprintf(out, "SQLite integrity: %s\n", report.Integrity)
			}
			if doctorFix {
				fmt.Fprintf(out, "Fixed rows: %d\n", report.Fixed)
				// Re-check so the exit status reflects the final state.
				if report, err = rt.app.RunDoctor(rt.ctx, false); err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Drop duplicate event and meal ids")
}
