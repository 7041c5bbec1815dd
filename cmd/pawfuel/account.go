package pawfuel

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	accountEmail    string
	accountPassword string
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Local account and Pro status",
}

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the local account and start the 30-day trial",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			acc, err := rt.app.CreateAccount(rt.ctx, accountEmail, accountPassword)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created account %s\n", acc.Email)
			return nil
		})
	},
}

var accountLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the local account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			if err := rt.app.Login(rt.ctx, accountEmail, accountPassword); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
			return nil
		})
	},
}

var accountLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of the local account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			if err := rt.app.Logout(rt.ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

var accountSubscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Mark the logged-in account as subscribed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			if err := rt.app.Subscribe(rt.ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Subscription active")
			return nil
		})
	},
}

var accountStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show account and Pro status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			out := cmd.OutOrStdout()
			st := rt.app.ProStatus()
			if st.Active {
				fmt.Fprintf(out, "%s (%s)\n", rt.tr.T("pro.active"), st.Reason)
			} else {
				fmt.Fprintln(out, rt.tr.T("pro.inactive"))
			}
			fmt.Fprintf(out, "Founder year ends: %s\n", st.Expiry.Format(time.DateOnly))
			if st.TrialEnds != nil {
				fmt.Fprintf(out, "Trial ends: %s\n", st.TrialEnds.Format(time.DateOnly))
			}
			if acc := rt.app.State().Account; acc != nil {
				fmt.Fprintf(out, "Account: %s (logged in: %t)\n", acc.Email, acc.LoggedIn)
			} else {
				fmt.Fprintln(out, "Account: none")
			}
			return nil
		})
	},
}

var accountManualProCmd = &cobra.Command{
	Use:   "manual-pro <on|off>",
	Short: "Toggle the legacy Pro flag (only used without an account)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var on bool
		switch strings.ToLower(args[0]) {
		case "on", "true", "1":
			on = true
		case "off", "false", "0":
		default:
			return fmt.Errorf("expected on or off, got %q", args[0])
		}
		return withApp(cmd, func(rt *runtime) error {
			rt.app.SetLegacyPro(rt.ctx, on)
			fmt.Fprintf(cmd.OutOrStdout(), "Manual Pro flag: %t\n", on)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountCreateCmd, accountLoginCmd, accountLogoutCmd, accountSubscribeCmd, accountStatusCmd, accountManualProCmd)
	for _, c := range []*cobra.Command{accountCreateCmd, accountLoginCmd} {
		c.Flags().StringVar(&accountEmail, "email", "", "Account email")
		c.Flags().StringVar(&accountPassword, "password", "", "Account password")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")
	}
}
