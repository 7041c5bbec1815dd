package pawfuel

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Inspect and change freezer stock",
}

var stockListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products with stock on hand",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			lines := rt.app.StockList()
			if len(lines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), rt.tr.T("stock.empty"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tPACKS\tGRAMS")
			for _, l := range lines {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.2f\t%.0f\n", l.Product.ID, l.Product.Name, l.Packs, l.Packs*l.Product.GramsPerPack)
			}
			if days, ok, err := rt.app.DaysOfFoodLeft(); err == nil && ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Days of raw food left: %.1f\n", days)
			}
			return nil
		})
	},
}

func stockEventCmd(use, short string, typ model.EventType) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <product-id> <packs>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			packs, err := parsePositiveFloatArg("packs", args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(rt *runtime) error {
				id, err := rt.app.AddInventoryEvent(rt.ctx, args[0], typ, packs)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s of %g pack(s) of %s (%s); now %.2f\n",
					typ, packs, productName(rt.app, args[0]), id, rt.app.CurrentStock(args[0]))
				return nil
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(stockCmd)
	stockCmd.AddCommand(
		stockListCmd,
		stockEventCmd("receive", "Record packs received", model.EventReceive),
		stockEventCmd("consume", "Record packs used outside a planned meal", model.EventConsume),
	)
}
