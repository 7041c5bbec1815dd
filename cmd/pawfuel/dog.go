package pawfuel

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/pawfuel-cli/internal/model"
	"github.com/saadjs/pawfuel-cli/internal/service"
)

var (
	dogName      string
	dogBreed     string
	dogSex       string
	dogWeight    float64
	dogAge       float64
	dogEnergy    string
	dogCondition string
	dogAllergies string

	onboardConsent bool
)

var dogCmd = &cobra.Command{
	Use:   "dog",
	Short: "Manage dog profiles",
}

var dogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dog profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			active := rt.app.State().ActiveDogID
			fmt.Fprintln(cmd.OutOrStdout(), "ACTIVE\tID\tNAME\tWEIGHT_KG\tAGE\tENERGY\tCONDITION\tALLERGIES")
			for _, d := range rt.app.Dogs() {
				mark := ""
				if d.ID == active {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.1f\t%.1f\t%s\t%s\t%s\n",
					mark, d.ID, d.Name, d.WeightKg, d.AgeYears, d.Energy, d.BodyCondition, strings.Join(d.Allergies, ","))
			}
			return nil
		})
	},
}

func dogInput() service.DogInput {
	return service.DogInput{
		Name:          dogName,
		Breed:         dogBreed,
		Sex:           dogSex,
		WeightKg:      dogWeight,
		AgeYears:      dogAge,
		Energy:        model.Energy(dogEnergy),
		BodyCondition: model.BodyCondition(dogCondition),
		Allergies:     service.ParseList(dogAllergies),
	}
}

var dogAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a dog profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			d, err := rt.app.AddDog(rt.ctx, dogInput())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added dog %s (%s)\n", d.Name, d.ID)
			return nil
		})
	},
}

var dogUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a dog profile; unset flags keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			cur := rt.app.State().Dog(args[0])
			if cur == nil {
				return fmt.Errorf("dog %q does not exist", args[0])
			}
			in := service.DogInput{
				Name:          cur.Name,
				Breed:         cur.Breed,
				Sex:           cur.Sex,
				WeightKg:      cur.WeightKg,
				AgeYears:      cur.AgeYears,
				Energy:        cur.Energy,
				BodyCondition: cur.BodyCondition,
				Allergies:     cur.Allergies,
			}
			f := cmd.Flags()
			if f.Changed("name") {
				in.Name = dogName
			}
			if f.Changed("breed") {
				in.Breed = dogBreed
			}
			if f.Changed("sex") {
				in.Sex = dogSex
			}
			if f.Changed("weight") {
				in.WeightKg = dogWeight
			}
			if f.Changed("age") {
				in.AgeYears = dogAge
			}
			if f.Changed("energy") {
				in.Energy = model.Energy(dogEnergy)
			}
			if f.Changed("condition") {
				in.BodyCondition = model.BodyCondition(dogCondition)
			}
			if f.Changed("allergies") {
				in.Allergies = service.ParseList(dogAllergies)
			}
			d, err := rt.app.UpdateDog(rt.ctx, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated dog %s\n", d.Name)
			return nil
		})
	},
}

var dogUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Select the active dog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			if err := rt.app.SetActiveDog(rt.ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active dog: %s\n", args[0])
			return nil
		})
	},
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Finish first-run setup for the active dog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			d, err := rt.app.Onboard(rt.ctx, service.OnboardInput{
				WeightKg:  dogWeight,
				AgeYears:  dogAge,
				Energy:    model.Energy(dogEnergy),
				Allergies: service.ParseList(dogAllergies),
				Consent:   onboardConsent,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Onboarding complete for %s\n", d.Name)
			if len(rt.app.State().Rotation) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Generated a %d-day rotation\n", len(rt.app.State().Rotation))
			}
			return nil
		})
	},
}

func addDogFlags(c *cobra.Command) {
	c.Flags().StringVar(&dogName, "name", "", "Dog name")
	c.Flags().StringVar(&dogBreed, "breed", "", "Breed")
	c.Flags().StringVar(&dogSex, "sex", "", "Sex")
	c.Flags().Float64Var(&dogWeight, "weight", 0, "Weight in kg")
	c.Flags().Float64Var(&dogAge, "age", 0, "Age in years (fractions allowed)")
	c.Flags().StringVar(&dogEnergy, "energy", "normal", "Energy level: low, normal or high")
	c.Flags().StringVar(&dogCondition, "condition", "ideal", "Body condition: lean, ideal or overweight")
	c.Flags().StringVar(&dogAllergies, "allergies", "", "Comma-separated protein allergies")
}

func init() {
	rootCmd.AddCommand(dogCmd, onboardCmd)
	dogCmd.AddCommand(dogListCmd, dogAddCmd, dogUpdateCmd, dogUseCmd)

	addDogFlags(dogAddCmd)
	addDogFlags(dogUpdateCmd)

	onboardCmd.Flags().Float64Var(&dogWeight, "weight", 0, "Weight in kg")
	onboardCmd.Flags().Float64Var(&dogAge, "age", 0, "Age in years")
	onboardCmd.Flags().StringVar(&dogEnergy, "energy", "normal", "Energy level: low, normal or high")
	onboardCmd.Flags().StringVar(&dogAllergies, "allergies", "", "Comma-separated protein allergies")
	onboardCmd.Flags().BoolVar(&onboardConsent, "consent", false, "Accept the privacy policy and terms")
	_ = dogAddCmd.MarkFlagRequired("name")
	_ = onboardCmd.MarkFlagRequired("weight")
}
