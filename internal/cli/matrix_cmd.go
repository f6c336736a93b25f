package cli

import (
	"github.com/spf13/cobra"

	"approval-matrix-service/internal/models"
)

func newTypesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "types [type]",
		Short: "List approval types, or show the full matrix of one type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matrix := app.Service.Matrix()
			if len(args) == 1 {
				entry, err := matrix.Entry(models.ApprovalType(args[0]))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), entry)
			}

			type summary struct {
				Type        models.ApprovalType `json:"type"`
				Name        string              `json:"name"`
				Description string              `json:"description"`
			}
			summaries := make([]summary, 0, len(matrix.ApprovalTypes()))
			for _, approvalType := range matrix.ApprovalTypes() {
				entry, err := matrix.Entry(approvalType)
				if err != nil {
					return err
				}
				summaries = append(summaries, summary{approvalType, entry.Name, entry.Description})
			}
			return printJSON(cmd.OutOrStdout(), summaries)
		},
	}
}

func newRolesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "Show the role hierarchy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), app.Service.Matrix().Roles())
		},
	}
}
