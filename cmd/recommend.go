package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"giftwise/internal/models"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	recommendUser         string
	recommendBudget       float64
	recommendInterests    []string
	recommendAge          int
	recommendOccasion     string
	recommendRelationship string
	recommendCount        int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank the catalog for a user's preferences",
	Long: `Scores every affordable catalog item against the given budget,
interests and recipient context, and prints the top results with the
score breakdown and justification for each.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		req := &models.RecommendationRequest{
			UserID:    recommendUser,
			Budget:    recommendBudget,
			Interests: recommendInterests,
		}
		if len(req.Interests) == 0 {
			return fmt.Errorf("at least one --interest is required")
		}
		if cmd.Flags().Changed("age") {
			age := recommendAge
			req.RecipientAge = &age
		}
		if recommendOccasion != "" {
			occasion := recommendOccasion
			req.Occasion = &occasion
		}
		if recommendRelationship != "" {
			rel := models.Relationship(strings.ToLower(recommendRelationship))
			if !rel.Valid() {
				return fmt.Errorf("unknown relationship %q", recommendRelationship)
			}
			req.Relationship = &rel
		}

		results, err := appInstance.RecommendationService.Recommend(cmd.Context(), req, recommendCount)
		if err != nil {
			return fmt.Errorf("recommendation failed: %w", err)
		}
		if len(results) == 0 {
			fmt.Println("No items within budget.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"#", "Score", "Title", "Price", "Category", "Why"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetColWidth(60)

		for i, r := range results {
			table.Append([]string{
				strconv.Itoa(i + 1),
				color.GreenString("%d", r.TotalScore),
				r.Item.Title,
				fmt.Sprintf("$%.2f", r.Item.Price),
				r.Item.Category,
				r.Justification,
			})
		}
		table.Render()

		for _, r := range results {
			if r.Enrichment != nil {
				fmt.Printf("\n%s %s\n  %s\n", color.CyanString("✦"), r.Item.Title, *r.Enrichment)
			}
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().StringVarP(&recommendUser, "user", "u", "", "User identifier")
	recommendCmd.Flags().Float64VarP(&recommendBudget, "budget", "b", 0, "Gift budget")
	recommendCmd.Flags().StringSliceVarP(&recommendInterests, "interest", "i", nil, "Recipient interest (repeatable)")
	recommendCmd.Flags().IntVar(&recommendAge, "age", 0, "Recipient age")
	recommendCmd.Flags().StringVar(&recommendOccasion, "occasion", "", "Occasion label (birthday, wedding, ...)")
	recommendCmd.Flags().StringVar(&recommendRelationship, "relationship", "", "Recipient relationship (friend, partner, ...)")
	recommendCmd.Flags().IntVarP(&recommendCount, "count", "n", 10, "Number of results")
	recommendCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(recommendCmd)
}
