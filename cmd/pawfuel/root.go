package pawfuel

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "pawfuel",
	Short: "pawfuel plans raw-fed meals for your dog from the terminal",
	Long: "pawfuel is a local-first raw-feeding companion: it tracks packs in the freezer, " +
		"plans today's meal against an 80/10/10 target, builds a seven-day rotation and composes orders.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default pawfuel.yaml)")
}
