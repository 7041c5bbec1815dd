package pawfuel

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/pawfuel-cli/internal/order"
	"github.com/saadjs/pawfuel-cli/internal/service"
)

var (
	orderItems   []string
	orderBranch  string
	orderName    string
	orderPhone   string
	orderEmail   string
	orderAddress string
	orderNotes   string
	orderSend    bool

	recurringDay  string
	recurringTime string
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Compose orders for the shop (Pro)",
}

func orderContact() order.Contact {
	return order.Contact{Name: orderName, Phone: orderPhone, Email: orderEmail, Address: orderAddress, Notes: orderNotes}
}

func orderLabels(rt *runtime) order.Labels {
	return order.Labels{
		Summary:  rt.tr.T("orders.summary"),
		Greeting: rt.tr.T("orders.greeting"),
		Intro:    rt.tr.T("orders.intro"),
		Total:    rt.tr.T("orders.total"),
	}
}

var orderComposeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Preview an order and its WhatsApp link; --send records it",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := parseItems(orderItems)
		if err != nil {
			return err
		}
		return withApp(cmd, func(rt *runtime) error {
			in := service.OrderInput{Branch: orderBranch, Items: items, Contact: orderContact(), Labels: orderLabels(rt)}
			if !orderSend {
				composed, err := rt.app.ComposeOrder(in)
				if err != nil {
					return err
				}
				printComposed(cmd, composed)
				return nil
			}
			composed, rec, err := rt.app.SendOrder(rt.ctx, in)
			if err != nil {
				return err
			}
			printComposed(cmd, composed)
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded order %s\n", rec.ID)
			return nil
		})
	},
}

func printComposed(cmd *cobra.Command, c order.Composed) {
	fmt.Fprintln(cmd.OutOrStdout(), c.Preview)
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), c.URL)
}

var orderHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List sent orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tAT\tBRANCH\tRECURRING\tITEMS")
			for _, o := range rt.app.OrderHistory() {
				parts := make([]string, 0, len(o.Items))
				for _, it := range o.Items {
					parts = append(parts, fmt.Sprintf("%d×%s", it.Qty, it.Name))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%t\t%s\n", o.ID, o.At.Format(time.RFC3339), o.Branch, o.Recurring, strings.Join(parts, ", "))
			}
			return nil
		})
	},
}

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Manage recurring order schedules",
}

var recurringAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a weekly order schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := parseItems(orderItems)
		if err != nil {
			return err
		}
		return withApp(cmd, func(rt *runtime) error {
			rec, err := rt.app.AddRecurring(rt.ctx, service.RecurringInput{
				Weekday: recurringDay,
				Time:    recurringTime,
				Items:   items,
				Address: orderAddress,
				Notes:   orderNotes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added recurring order %s every %s at %s\n", rec.ID, rec.Weekday, rec.Time)
			return nil
		})
	},
}

var recurringListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring schedules with their next run",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tWEEKDAY\tTIME\tNEXT\tITEMS")
			for _, s := range rt.app.RecurringSchedules() {
				parts := make([]string, 0, len(s.Order.Items))
				for _, it := range s.Order.Items {
					parts = append(parts, fmt.Sprintf("%s=%d", it.ProductID, it.Qty))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", s.Order.ID, s.Order.Weekday, s.Order.Time, s.NextRun.Format("2006-01-02 15:04"), strings.Join(parts, ","))
			}
			return nil
		})
	},
}

var recurringRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a recurring schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			if err := rt.app.RemoveRecurring(rt.ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed recurring order %s\n", args[0])
			return nil
		})
	},
}

var recurringSendCmd = &cobra.Command{
	Use:   "send <id>",
	Short: "Compose and record a recurring order now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			composed, rec, err := rt.app.SendRecurring(rt.ctx, args[0], orderContact(), orderLabels(rt))
			if err != nil {
				return err
			}
			printComposed(cmd, composed)
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded order %s\n", rec.ID)
			return nil
		})
	},
}

func addContactFlags(c *cobra.Command) {
	c.Flags().StringVar(&orderName, "name", "", "Your name")
	c.Flags().StringVar(&orderPhone, "phone", "", "Your phone")
	c.Flags().StringVar(&orderEmail, "email", "", "Your email")
	c.Flags().StringVar(&orderAddress, "address", "", "Delivery address")
	c.Flags().StringVar(&orderNotes, "notes", "", "Notes for the shop")
}

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.AddCommand(orderComposeCmd, orderHistoryCmd, recurringCmd)
	recurringCmd.AddCommand(recurringAddCmd, recurringListCmd, recurringRemoveCmd, recurringSendCmd)

	orderComposeCmd.Flags().StringArrayVar(&orderItems, "item", nil, "Product and quantity as id=qty (repeatable)")
	orderComposeCmd.Flags().StringVar(&orderBranch, "branch", "", "Branch: lebanon or cyprus (default from settings)")
	orderComposeCmd.Flags().BoolVar(&orderSend, "send", false, "Record the order in history")
	addContactFlags(orderComposeCmd)
	addContactFlags(recurringSendCmd)

	recurringAddCmd.Flags().StringArrayVar(&orderItems, "item", nil, "Product and quantity as id=qty (repeatable)")
	recurringAddCmd.Flags().StringVar(&recurringDay, "day", "", "Weekday, e.g. monday")
	recurringAddCmd.Flags().StringVar(&recurringTime, "time", "", "Time of day as HH:MM")
	recurringAddCmd.Flags().StringVar(&orderAddress, "address", "", "Delivery address")
	recurringAddCmd.Flags().StringVar(&orderNotes, "notes", "", "Notes for the shop")
	_ = recurringAddCmd.MarkFlagRequired("day")
	_ = recurringAddCmd.MarkFlagRequired("time")
}
