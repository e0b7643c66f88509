package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/brightpath-care/shiftmatch/pkg/core/services"
)

// GenerateShiftsCmd creates the generateShifts command
func GenerateShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generateShifts <weeks>",
		Short: "Expand recurring visit templates into shifts",
		Long:  "Generate unassigned shifts from the configured visit templates, covering the given number of weeks from today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weeks, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("weeks must be a number: %w", err)
			}

			result, err := services.GenerateShifts(app.Ctx, app.Database, app.Cfg, app.Logger, weeks)
			if err != nil {
				return err
			}

			fmt.Printf("\nShift generation completed\n\n")
			fmt.Printf("Window:    %s to %s\n", result.From, result.To)
			fmt.Printf("Generated: %d\n", result.Generated)
			fmt.Printf("Inserted:  %d (existing shifts left untouched)\n\n", result.Inserted)

			return nil
		},
	}
}
