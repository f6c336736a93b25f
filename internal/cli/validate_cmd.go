package cli

import (
	"github.com/spf13/cobra"

	"approval-matrix-service/internal/config"
)

func newValidateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a matrix override file against the system tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			matrix, err := config.LoadMatrixFile(path)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"valid":         true,
				"file":          path,
				"approvalTypes": len(matrix.ApprovalTypes()),
				"roles":         len(matrix.Roles()),
			})
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "Path to the YAML override file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
