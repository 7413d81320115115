package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights [user-id]",
	Short: "Summarize a user's interaction history",
	Long: `Shows the categories and tags a user interacts with most, and how
that history currently biases their recommendation ranking.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		summary, err := appInstance.InsightsService.Summarize(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to summarize interactions: %w", err)
		}

		fmt.Printf("User:   %s\nEvents: %d\n\n%s\n", summary.UserID, summary.TotalEvents, summary.Explanation)
		if summary.TotalEvents == 0 {
			return nil
		}

		fmt.Println("\nTop categories:")
		catTable := tablewriter.NewWriter(os.Stdout)
		catTable.SetHeader([]string{"Category", "Interactions"})
		catTable.SetBorder(false)
		catTable.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		catTable.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, cc := range summary.TopCategories {
			catTable.Append([]string{cc.Category, strconv.Itoa(cc.Count)})
		}
		catTable.Render()

		fmt.Println("\nTop tags:")
		tagTable := tablewriter.NewWriter(os.Stdout)
		tagTable.SetHeader([]string{"Tag", "Interactions"})
		tagTable.SetBorder(false)
		tagTable.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		tagTable.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, tc := range summary.TopTags {
			tagTable.Append([]string{tc.Tag, strconv.Itoa(tc.Count)})
		}
		tagTable.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}
