package cmd

import (
	"fmt"
	"os"
	"strings"

	"giftwise/internal/clix"
	"giftwise/internal/models"
	"giftwise/internal/services"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Record and inspect interaction events",
}

var (
	eventUser  string
	eventItem  string
	eventKind  string
	eventAsync bool
)

var eventRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Append one interaction event",
	Long: `Records that a user viewed, clicked or saved a catalog item. With
--async the event is queued and persisted by the worker process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		itemID, err := uuid.Parse(eventItem)
		if err != nil {
			return fmt.Errorf("invalid item id %q", eventItem)
		}

		event, err := appInstance.InteractionService.Record(cmd.Context(), services.RecordParams{
			UserID: eventUser,
			ItemID: itemID,
			Kind:   models.InteractionKind(strings.ToLower(eventKind)),
			Async:  eventAsync,
		})
		if err != nil {
			return fmt.Errorf("failed to record event: %w", err)
		}

		verb := color.GreenString("Recorded")
		if eventAsync {
			verb = color.YellowString("Queued")
		}
		fmt.Printf("%s %s event %s (user %s, item %s)\n", verb, event.Kind, event.ID, event.UserID, event.ItemID)
		return nil
	},
}

var eventListCmd = &cobra.Command{
	Use:   "list [user-id]",
	Short: "List a user's recent interaction events",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		page := clix.ParsePagination(cmd.Flags(), 20)
		events, err := appInstance.InteractionService.ListUserEvents(cmd.Context(), args[0], page.Limit)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No interaction events recorded.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"When", "Kind", "Item"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, event := range events {
			table.Append([]string{
				event.OccurredAt.Format("2006-01-02 15:04:05"),
				string(event.Kind),
				event.ItemID.String(),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	eventRecordCmd.Flags().StringVarP(&eventUser, "user", "u", "", "User identifier")
	eventRecordCmd.Flags().StringVarP(&eventItem, "item", "i", "", "Item identifier")
	eventRecordCmd.Flags().StringVarP(&eventKind, "kind", "k", "viewed", "Interaction kind: viewed, clicked, saved")
	eventRecordCmd.Flags().BoolVar(&eventAsync, "async", false, "Queue the event instead of writing synchronously")
	eventRecordCmd.MarkFlagRequired("user")
	eventRecordCmd.MarkFlagRequired("item")

	eventListCmd.Flags().IntP("limit", "n", 20, "Maximum events to list")

	eventCmd.AddCommand(eventRecordCmd)
	eventCmd.AddCommand(eventListCmd)
	rootCmd.AddCommand(eventCmd)
}
