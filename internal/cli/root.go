package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"approval-matrix-service/internal/services"
)

// App holds what the CLI commands resolve against.
type App struct {
	Service *services.ApprovalMatrixService
}

// NewRootCmd creates the top-level "matrixctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "matrixctl",
		Short:         "Query the construction approval matrix",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTypesCmd(app),
		newRolesCmd(app),
		newRequirementsCmd(app),
		newAuthorityCmd(app),
		newNextCmd(app),
		newProgressCmd(app),
		newValidateCmd(),
	)

	return root
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
