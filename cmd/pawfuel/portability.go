package pawfuel

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	exportOut    string
	importIn     string
	importDryRun bool
	resetYes     bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all local data as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			if strings.TrimSpace(exportOut) == "" || exportOut == "-" {
				return rt.app.Export(cmd.OutOrStdout())
			}
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			if err := rt.app.Export(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace local data with a JSON export",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		f, err := os.Open(importIn)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		return withApp(cmd, func(rt *runtime) error {
			report, err := rt.app.Import(rt.ctx, f, importDryRun)
			if err != nil {
				return err
			}
			verb := "Imported"
			if report.DryRun {
				verb = "Would import"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d dog(s), %d product(s), %d event(s), %d meal(s)\n",
				verb, report.Dogs, report.Products, report.Events, report.Meals)
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the account and all data, restoring defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("reset deletes everything; pass --yes to confirm")
		}
		return withApp(cmd, func(rt *runtime) error {
			if err := rt.app.Reset(rt.ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data reset to defaults")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd, resetCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input JSON file")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate without writing")
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm the reset")
}
