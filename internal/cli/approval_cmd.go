package cli

import (
	"github.com/spf13/cobra"

	"approval-matrix-service/internal/models"
)

// transactionFlags are shared by every command that resolves a requirement
type transactionFlags struct {
	approvalType string
	amount       float64
	conditions   []string
}

func (f *transactionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.approvalType, "type", "", "Approval type, e.g. rab or purchaseOrders")
	cmd.Flags().Float64Var(&f.amount, "amount", 0, "Transaction amount in IDR")
	cmd.Flags().StringArrayVar(&f.conditions, "condition", nil, "Special condition to apply (repeatable)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("amount")
}

func (f *transactionFlags) ApprovalType() models.ApprovalType {
	return models.ApprovalType(f.approvalType)
}

func (f *transactionFlags) Conditions() []models.Condition {
	conditions := make([]models.Condition, len(f.conditions))
	for i, name := range f.conditions {
		conditions[i] = models.Condition(name)
	}
	return conditions
}

// historyFlags build approval records from role names; rejections are listed after approvals
type historyFlags struct {
	approved []string
	rejected []string
}

func (f *historyFlags) register(cmd *cobra.Command, withRejections bool) {
	cmd.Flags().StringArrayVar(&f.approved, "approved", nil, "Role that has approved (repeatable)")
	if withRejections {
		cmd.Flags().StringArrayVar(&f.rejected, "rejected", nil, "Role that has rejected (repeatable)")
	}
}

func (f *historyFlags) Records() []models.ApprovalRecord {
	records := make([]models.ApprovalRecord, 0, len(f.approved)+len(f.rejected))
	for _, role := range f.approved {
		records = append(records, models.ApprovalRecord{Role: models.Role(role), Status: models.StatusApproved})
	}
	for _, role := range f.rejected {
		records = append(records, models.ApprovalRecord{Role: models.Role(role), Status: models.StatusRejected})
	}
	return records
}

func newRequirementsCmd(app *App) *cobra.Command {
	var tx transactionFlags

	cmd := &cobra.Command{
		Use:   "requirements",
		Short: "Resolve the approval requirement for a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			requirement, err := app.Service.Requirements(tx.ApprovalType(), tx.amount, tx.Conditions()...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), requirement)
		},
	}
	tx.register(cmd)

	return cmd
}

func newAuthorityCmd(app *App) *cobra.Command {
	var tx transactionFlags
	var role string

	cmd := &cobra.Command{
		Use:   "authority",
		Short: "Check whether a role takes part in a transaction's workflow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hasAuthority, err := app.Service.HasAuthority(models.Role(role), tx.ApprovalType(), tx.amount)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"role":                role,
				"approvalType":        tx.approvalType,
				"amount":              tx.amount,
				"hasAuthority":        hasAuthority,
				"withinApprovalLimit": app.Service.WithinApprovalLimit(models.Role(role), tx.amount),
				"canDelegate":         app.Service.CanDelegate(models.Role(role)),
			})
		},
	}
	tx.register(cmd)
	cmd.Flags().StringVar(&role, "role", "", "Role name, e.g. \"Project Manager\"")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newNextCmd(app *App) *cobra.Command {
	var tx transactionFlags
	var history historyFlags

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the most senior role still to approve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := app.Service.NextApprover(tx.ApprovalType(), tx.amount, history.Records(), tx.Conditions()...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"nextApprover": next,
				"isComplete":   next == "",
			})
		},
	}
	tx.register(cmd)
	history.register(cmd, false)

	return cmd
}

func newProgressCmd(app *App) *cobra.Command {
	var tx transactionFlags
	var history historyFlags

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Fold an approval history into progress figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			progress, err := app.Service.Progress(tx.ApprovalType(), tx.amount, history.Records(), tx.Conditions()...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), progress)
		},
	}
	tx.register(cmd)
	history.register(cmd, true)

	return cmd
}
