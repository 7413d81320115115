package cmd

import (
	"fmt"
	"os"
	"strings"

	"giftwise/internal/clix"
	"giftwise/internal/feedimport"
	"giftwise/internal/services"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage catalog items",
}

var (
	itemTitle       string
	itemDescription string
	itemPrice       float64
	itemCategory    string
	itemTags        string
	itemRetailer    string
	itemBrand       string
)

var itemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		item, err := appInstance.CatalogService.AddItem(cmd.Context(), services.AddItemParams{
			Title:       itemTitle,
			Description: itemDescription,
			Price:       itemPrice,
			Category:    itemCategory,
			Tags:        clix.ParseCommaList(cmd.Flags(), "tags"),
			Retailer:    itemRetailer,
			Brand:       itemBrand,
		})
		if err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}

		fmt.Printf("%s %s (%s)\n", color.GreenString("Added"), item.Title, item.ID)
		return nil
	},
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog items",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		page := clix.ParsePagination(cmd.Flags(), 50)
		items, err := appInstance.CatalogService.ListItems(cmd.Context(), page.Limit, page.Offset)
		if err != nil {
			return fmt.Errorf("failed to list items: %w", err)
		}
		if len(items) == 0 {
			fmt.Println("No items in catalog.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Title", "Price", "Category", "Tags"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, item := range items {
			table.Append([]string{
				item.ID.String(),
				item.Title,
				fmt.Sprintf("$%.2f", item.Price),
				item.Category,
				strings.Join(item.Tags, ", "),
			})
		}
		table.Render()
		return nil
	},
}

var itemGetCmd = &cobra.Command{
	Use:   "get [item-id]",
	Short: "Show one catalog item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}

		item, err := appInstance.CatalogService.GetItem(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get item: %w", err)
		}

		fmt.Printf("ID:          %s\nTitle:       %s\nPrice:       $%.2f\nCategory:    %s\nTags:        %s\n",
			item.ID, item.Title, item.Price, item.Category, strings.Join(item.Tags, ", "))
		if item.Retailer != "" {
			fmt.Printf("Retailer:    %s\n", item.Retailer)
		}
		if item.Brand != "" {
			fmt.Printf("Brand:       %s\n", item.Brand)
		}
		if item.Description != "" {
			fmt.Printf("Description: %s\n", item.Description)
		}
		return nil
	},
}

var itemImportCmd = &cobra.Command{
	Use:   "import [file, directory or URL]",
	Short: "Bulk-import catalog items from a retailer feed",
	Long: `Imports items from a JSON feed: a file, a directory of .json files, or
an http(s) URL. Entries without a category are categorized automatically
when the catalog categorizer is enabled.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		importer := feedimport.NewImporter(appInstance.CatalogService, appInstance.Categorizer)
		report, err := importer.ImportSource(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to import feed: %w", err)
		}

		fmt.Printf("%s %d items (%d duplicates, %d failed)\n",
			color.GreenString("Imported"), report.Imported, report.Duplicates, report.Failed)
		return nil
	},
}

func init() {
	itemAddCmd.Flags().StringVarP(&itemTitle, "title", "t", "", "Item title")
	itemAddCmd.Flags().StringVarP(&itemDescription, "description", "d", "", "Item description (HTML is stripped)")
	itemAddCmd.Flags().Float64VarP(&itemPrice, "price", "p", 0, "Item price")
	itemAddCmd.Flags().StringVarP(&itemCategory, "category", "c", "", "Item category")
	itemAddCmd.Flags().StringVar(&itemTags, "tags", "", "Comma-separated item tags")
	itemAddCmd.Flags().StringVar(&itemRetailer, "retailer", "", "Retailer name")
	itemAddCmd.Flags().StringVar(&itemBrand, "brand", "", "Brand name")
	itemAddCmd.MarkFlagRequired("title")
	itemAddCmd.MarkFlagRequired("category")

	itemListCmd.Flags().IntP("limit", "n", 50, "Maximum items to list")
	itemListCmd.Flags().Int("offset", 0, "Listing offset")

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemListCmd)
	itemCmd.AddCommand(itemGetCmd)
	itemCmd.AddCommand(itemImportCmd)
	rootCmd.AddCommand(itemCmd)
}
