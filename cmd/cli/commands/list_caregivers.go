package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ListCaregiversCmd creates the listCaregivers command
func ListCaregiversCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listCaregivers",
		Short: "List active caregivers and their weekly limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caregivers, err := app.Database.GetCaregivers(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch caregivers: %w", err)
			}

			fmt.Printf("\nActive caregivers (%d):\n\n", len(caregivers))
			for _, caregiver := range caregivers {
				transport := "bus only"
				if caregiver.DrivesCar {
					transport = "drives"
				}

				limits := make([]string, 0, 2)
				if caregiver.MaxHoursPerWeek > 0 {
					limits = append(limits, fmt.Sprintf("max %.0fh/wk", caregiver.MaxHoursPerWeek))
				}
				if caregiver.MaxDaysPerWeek > 0 {
					limits = append(limits, fmt.Sprintf("max %dd/wk", caregiver.MaxDaysPerWeek))
				}
				if len(limits) == 0 {
					limits = append(limits, "no limits")
				}

				fmt.Printf("  %-12s %-20s %-9s %s", caregiver.ID, caregiver.Name, transport, strings.Join(limits, ", "))
				if len(caregiver.Skills) > 0 {
					fmt.Printf("  [%s]", strings.Join(caregiver.Skills, ", "))
				}
				fmt.Println()
			}
			fmt.Println()

			return nil
		},
	}
}
