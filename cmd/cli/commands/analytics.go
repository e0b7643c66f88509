package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brightpath-care/shiftmatch/pkg/core/services"
)

// AnalyticsCmd creates the analytics command
func AnalyticsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics <from> <to>",
		Short: "Summarize utilization and travel efficiency over a period",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := services.SummarizeAnalytics(app.Ctx, app.Database, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\nScheduling Analytics\n\n")
			fmt.Printf("Period:            %s to %s\n", report.From, report.To)
			fmt.Printf("Assignments:       %d\n", report.TotalAssignments)
			fmt.Printf("Worked hours:      %.1f\n", float64(report.WorkedMinutes)/60)
			fmt.Printf("Available hours:   %.1f\n", float64(report.AvailableMinutes)/60)
			fmt.Printf("Utilization:       %.1f%%\n", report.UtilizationRate*100)
			fmt.Printf("Travel efficiency: %.1f%%\n", report.TravelEfficiency*100)
			fmt.Printf("Conflict rate:     %.1f%% (%d of %d caregiver-days)\n\n",
				report.ConflictRate*100, report.ConflictedDays, report.CaregiverDays)

			return nil
		},
	}
}
