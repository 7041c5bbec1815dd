package pawfuel

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/i18n"
	"github.com/saadjs/pawfuel-cli/internal/service"
)

var (
	planConfirm bool
	planJSON    bool
	rotationNew bool
	mealsLast   int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Suggest today's meal from stock",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			plan, err := rt.app.PlanMeal()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if planJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(plan); err != nil {
					return fmt.Errorf("encode plan: %w", err)
				}
			} else {
				printPlan(out, rt, plan)
			}
			if !planConfirm {
				return nil
			}
			if len(plan.Items) == 0 {
				return fmt.Errorf("nothing to confirm")
			}
			if _, err := rt.app.ConfirmMeal(rt.ctx, plan); err != nil {
				return err
			}
			fmt.Fprintln(out, rt.tr.T("plan.confirmed"))
			return nil
		})
	},
}

func printPlan(w io.Writer, rt *runtime, plan *engine.Plan) {
	dog, _ := rt.app.ActiveDog()
	targets := engine.DailyTargets(&dog, rt.app.Settings().FeedingPercent)
	fmt.Fprintln(w, rt.tr.T("plan.title", dog.Name))
	fmt.Fprintln(w, rt.tr.T("plan.target", plan.GramsTarget, pct(targets.FeedingPercent)))
	if len(plan.Items) == 0 {
		fmt.Fprintln(w, rt.tr.T("plan.empty"))
		return
	}
	for _, line := range formatItems(rt.app, plan.Items) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, rt.tr.T("plan.total", plan.TotalGrams, plan.Remaining))
	fmt.Fprintln(w, rt.tr.T("plan.macros", pct(plan.Macros.Muscle), pct(plan.Macros.Organ), pct(plan.Macros.Bone)))
	msgs, err := rt.app.CoachMessages(plan)
	if err != nil {
		return
	}
	for _, m := range msgs {
		fmt.Fprintln(w, "- "+coachText(rt.tr, rt.app, m))
	}
}

func coachText(tr i18n.Translator, a *service.App, m engine.CoachMessage) string {
	switch m.Key {
	case engine.MsgVarietyGood:
		return tr.T(m.Key, m.Count)
	case engine.MsgOrganLow, engine.MsgOrganHigh, engine.MsgBoneLow, engine.MsgBoneHigh:
		return tr.T(m.Key, pct(m.Value))
	case engine.MsgLowStock:
		return tr.T(m.Key, m.Value)
	case engine.MsgTreat:
		return tr.T(m.Key, m.Count, productName(a, m.ProductID))
	}
	return tr.T(m.Key)
}

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Show coaching tips for today's plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			msgs, err := rt.app.CoachMessages(nil)
			if err != nil {
				return err
			}
			for _, m := range msgs {
				fmt.Fprintln(cmd.OutOrStdout(), coachText(rt.tr, rt.app, m))
			}
			return nil
		})
	},
}

var rotationCmd = &cobra.Command{
	Use:   "rotation",
	Short: "Show the seven-day rotation, generated when missing (Pro)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			days, err := rt.app.Rotation()
			if err != nil {
				return err
			}
			if rotationNew || len(days) == 0 {
				if days, err = rt.app.GenerateRotation(rt.ctx); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			for _, d := range days {
				fmt.Fprintf(out, "%s\tmuscle %.0f%% organ %.0f%% bone %.0f%%\n",
					rt.tr.T("rotation.day", d.Day), pct(d.Macros.Muscle), pct(d.Macros.Organ), pct(d.Macros.Bone))
				for _, line := range formatItems(rt.app, d.Items) {
					fmt.Fprintln(out, "  "+line)
				}
				for _, s := range d.Snacks {
					fmt.Fprintf(out, "  + %s\t%d pc\n", productName(rt.app, s.ProductID), s.Pieces)
				}
			}
			return nil
		})
	},
}

var mealsCmd = &cobra.Command{
	Use:   "meals",
	Short: "Show the active dog's recent meals (Pro)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			history, err := rt.app.MealHistory(mealsLast)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "DATE\tPROTEINS\tMUSCLE\tORGAN\tBONE")
			for _, h := range history {
				m := h.Meal.Macros
				fmt.Fprintf(out, "%s\t%s\t%.1f%%\t%.1f%%\t%.1f%%\n",
					h.Meal.Date, strings.Join(h.Proteins, ", "), pct(m.Muscle), pct(m.Organ), pct(m.Bone))
			}
			return nil
		})
	},
}

var treatsCmd = &cobra.Command{
	Use:   "treats",
	Short: "Suggest today's treats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			treats, err := rt.app.DailyTreats()
			if err != nil {
				return err
			}
			if len(treats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), rt.tr.T("treats.none"))
				return nil
			}
			for _, tr := range treats {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d pc\n", productName(rt.app, tr.ProductID), tr.Pieces)
			}
			return nil
		})
	},
}

var plateCmd = &cobra.Command{
	Use:       "plate <allergy-season|high-activity>",
	Short:     "Suggest a themed plate from stock (Pro)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(engine.PlateAllergySeason), string(engine.PlateHighActivity)},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			items, err := rt.app.Plate(engine.PlateKind(args[0]))
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), rt.tr.T("plan.empty"))
				return nil
			}
			for _, line := range formatItems(rt.app, items) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd, coachCmd, rotationCmd, mealsCmd, treatsCmd, plateCmd)
	planCmd.Flags().BoolVar(&planConfirm, "confirm", false, "Log the meal and deduct it from stock")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Print the plan as JSON")
	rotationCmd.Flags().BoolVar(&rotationNew, "regenerate", false, "Build a fresh rotation")
	mealsCmd.Flags().IntVar(&mealsLast, "last", 7, "Number of recent meals to show")
}
