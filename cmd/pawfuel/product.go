package pawfuel

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/pawfuel-cli/internal/catalog"
	"github.com/saadjs/pawfuel-cli/internal/model"
	"github.com/saadjs/pawfuel-cli/internal/service"
)

var (
	productListCategory string
	productCategory     string
	productID           string
	productTitle        string
	productBrand        string
	productGrams        float64
	productProtein      string
	productIngredients  string
	productMuscle       float64
	productOrgan        float64
	productBone         float64
	productSource       string
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Browse and extend the product catalog",
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tGRAMS\tCATEGORY\tPROTEIN\tMUSCLE\tORGAN\tBONE\tPRICE")
			for _, p := range rt.app.Products(model.Category(productListCategory)) {
				price := ""
				if p.Price != nil {
					price = p.Price.StringFixed(2) + " " + p.Currency
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f\t%s\t%s\t%.2f\t%.2f\t%.2f\t%s\n",
					p.ID, p.Name, p.GramsPerPack, p.Category, p.Protein, p.Macros.Muscle, p.Macros.Organ, p.Macros.Bone, price)
			}
			return nil
		})
	},
}

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom product",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.ProductInput{
			ID:           productID,
			Name:         productTitle,
			Brand:        productBrand,
			GramsPerPack: productGrams,
			Category:     model.Category(productCategory),
			Protein:      productProtein,
			Ingredients:  productIngredients,
		}
		f := cmd.Flags()
		if f.Changed("muscle") || f.Changed("organ") || f.Changed("bone") {
			in.Macros = &model.Macros{Muscle: productMuscle, Organ: productOrgan, Bone: productBone}
		}
		return withApp(cmd, func(rt *runtime) error {
			p, err := rt.app.AddCustomProduct(rt.ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added product %s (%s) muscle %.2f organ %.2f bone %.2f\n",
				p.Name, p.ID, p.Macros.Muscle, p.Macros.Organ, p.Macros.Bone)
			return nil
		})
	},
}

var productSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Merge a catalog or price list from a file or URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(rt *runtime) error {
			source := productSource
			if source == "" {
				source = rt.cfg.Catalog.Source
			}
			before := len(rt.app.State().Products)
			if err := rt.app.RefreshCatalog(rt.ctx, catalog.Resolve(source, rt.cfg.Catalog.Timeout)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog synced from %s: %d product(s), %d new\n",
				source, len(rt.app.State().Products), len(rt.app.State().Products)-before)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(productCmd)
	productCmd.AddCommand(productListCmd, productAddCmd, productSyncCmd)

	productListCmd.Flags().StringVar(&productListCategory, "category", "", "Filter by category (raw, treat, supplement, pantry)")

	productAddCmd.Flags().StringVar(&productID, "id", "", "Product id (generated when empty)")
	productAddCmd.Flags().StringVar(&productTitle, "name", "", "Display name")
	productAddCmd.Flags().StringVar(&productBrand, "brand", "", "Brand (default Custom)")
	productAddCmd.Flags().Float64Var(&productGrams, "grams", 0, "Grams per pack")
	productAddCmd.Flags().StringVar(&productCategory, "category", "raw", "Category: raw, treat, supplement or pantry")
	productAddCmd.Flags().StringVar(&productProtein, "protein", "", "Protein tag used for allergies and rotation")
	productAddCmd.Flags().StringVar(&productIngredients, "ingredients", "", "Ingredient list")
	productAddCmd.Flags().Float64Var(&productMuscle, "muscle", 0, "Muscle fraction (0-1)")
	productAddCmd.Flags().Float64Var(&productOrgan, "organ", 0, "Organ fraction (0-1)")
	productAddCmd.Flags().Float64Var(&productBone, "bone", 0, "Bone fraction (0-1)")
	_ = productAddCmd.MarkFlagRequired("name")
	_ = productAddCmd.MarkFlagRequired("grams")

	productSyncCmd.Flags().StringVar(&productSource, "source", "", "Catalog file path or URL (default: configured source)")
}
