package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brightpath-care/shiftmatch/pkg/core/services"
)

// ConfirmAssignmentCmd creates the confirmAssignment command
func ConfirmAssignmentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "confirmAssignment <assignment_id>",
		Short: "Mark a pending assignment as accepted by the caregiver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.ConfirmAssignment(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\nAssignment %s confirmed.\n\n", args[0])
			return nil
		},
	}
}

// RejectAssignmentCmd creates the rejectAssignment command
func RejectAssignmentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rejectAssignment <assignment_id>",
		Short: "Mark an assignment as declined and re-queue its shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.RejectAssignment(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\nAssignment %s rejected, shift returned to the open pool.\n\n", args[0])
			return nil
		},
	}
}
