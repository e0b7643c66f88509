package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brightpath-care/shiftmatch/pkg/core/services"
)

// OptimizeCmd creates the optimize command
func OptimizeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Match caregivers to open shifts",
		Long:  "Run the matching algorithm over open shifts in the planning horizon and record pending assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			forceCommit, _ := cmd.Flags().GetBool("force-commit")

			app.Logger.Debug("optimize command",
				zap.Bool("dry_run", dryRun),
				zap.Bool("force_commit", forceCommit))

			result, err := services.RunOptimization(app.Ctx, app.Database, app.Cfg, app.Logger, dryRun, forceCommit)
			if err != nil {
				return fmt.Errorf("optimization failed: %w", err)
			}

			fmt.Printf("\nShift Matching Results\n\n")
			fmt.Printf("Window:       %s to %s\n", result.From, result.To)
			fmt.Printf("Open shifts:  %d\n", result.Summary.TotalShifts)
			fmt.Printf("Filled:       %d\n", result.Summary.FilledShifts)
			fmt.Printf("Unmet:        %d\n", result.Summary.UnmetShifts)
			if dryRun {
				fmt.Printf("Mode:         DRY RUN (not saved)\n")
			} else if result.Claimed > 0 || result.Skipped > 0 {
				fmt.Printf("Saved:        %d assignments (%d skipped as already claimed)\n", result.Claimed, result.Skipped)
			} else if result.Summary.UnmetShifts > 0 && len(result.Assignments) > 0 {
				fmt.Printf("Mode:         NOT SAVED (some shifts unmet, use --force-commit to save anyway)\n")
			}
			fmt.Println()

			if len(result.Assignments) > 0 {
				fmt.Printf("Assignments:\n")
				for _, assignment := range result.Assignments {
					fmt.Printf("  %s  %s-%s  shift %s -> caregiver %s (score %d)\n",
						assignment.Date, assignment.StartTime, assignment.EndTime,
						assignment.ShiftID, assignment.CaregiverID, assignment.Score)
				}
				fmt.Println()
			}

			if len(result.UnmetShifts) > 0 {
				fmt.Printf("Unmet shifts (need manual handling):\n")
				for _, shift := range result.UnmetShifts {
					fmt.Printf("  %s  %s-%s  shift %s (client %s)\n",
						shift.Date, shift.StartTime, shift.EndTime, shift.ID, shift.ClientID)
				}
				fmt.Println()
			}

			if len(result.Summary.Workloads) > 0 {
				fmt.Printf("Caregiver workloads this run:\n")
				for _, workload := range result.Summary.Workloads {
					line := fmt.Sprintf("  %-20s %5.1fh over %d day(s), %d shift(s)  [%s]",
						workload.Name, workload.Hours, workload.Days, workload.Shifts, workload.PositionType)
					if workload.TargetHours > 0 {
						line += fmt.Sprintf("  target %.1fh/week", workload.TargetHours)
					}
					fmt.Println(line)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run the matching without saving assignments")
	cmd.Flags().Bool("force-commit", false, "Save assignments even when some shifts stay unmet")

	return cmd
}
