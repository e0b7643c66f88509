package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brightpath-care/shiftmatch/pkg/core/services"
)

// ImportFeedsCmd creates the importFeeds command
func ImportFeedsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "importFeeds",
		Short: "Import agency shift, caregiver and client feeds",
		Long:  "Load JSON shift, caregiver and client feeds into the database. Invalid records are reported and skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftsPath, _ := cmd.Flags().GetString("shifts")
			caregiversPath, _ := cmd.Flags().GetString("caregivers")
			clientsPath, _ := cmd.Flags().GetString("clients")

			result, err := services.ImportFeeds(app.Ctx, app.Database, app.Logger, shiftsPath, caregiversPath, clientsPath)
			if err != nil {
				return err
			}

			fmt.Printf("\nFeed import completed\n\n")
			if caregiversPath != "" {
				fmt.Printf("Caregivers imported: %d\n", result.CaregiversImported)
			}
			if clientsPath != "" {
				fmt.Printf("Clients imported:    %d\n", result.ClientsImported)
			}
			if shiftsPath != "" {
				fmt.Printf("Shifts imported:     %d (%d new)\n", result.ShiftsImported, result.ShiftsInserted)
			}

			if len(result.BadRecords) > 0 {
				fmt.Printf("\nRejected records (%d):\n", len(result.BadRecords))
				for _, bad := range result.BadRecords {
					fmt.Printf("  %s\n", bad.Error())
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("shifts", "", "Path to a JSON shift feed")
	cmd.Flags().String("caregivers", "", "Path to a JSON caregiver feed")
	cmd.Flags().String("clients", "", "Path to a JSON client feed")

	return cmd
}
