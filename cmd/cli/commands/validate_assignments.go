package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brightpath-care/shiftmatch/pkg/core/services"
)

// ValidateAssignmentsCmd creates the validateAssignments command
func ValidateAssignmentsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validateAssignments <from> <to>",
		Short: "Check existing assignments for double bookings and limit breaches",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ValidateAssignments(app.Ctx, app.Database, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\nAssignment Validation\n\n")
			fmt.Printf("Window:  %s to %s\n", result.From, result.To)
			fmt.Printf("Checked: %d assignments\n\n", result.Checked)

			if len(result.Issues) == 0 {
				fmt.Printf("No issues found.\n\n")
				return nil
			}

			fmt.Printf("Issues (%d):\n", len(result.Issues))
			for _, issue := range result.Issues {
				if issue.AssignmentID != "" {
					fmt.Printf("  caregiver %s, assignment %s (%s): %s\n",
						issue.CaregiverID, issue.AssignmentID, issue.Date, issue.Description)
				} else {
					fmt.Printf("  caregiver %s: %s\n", issue.CaregiverID, issue.Description)
				}
			}
			fmt.Println()

			return nil
		},
	}
}
