package cli

import (
	"fmt"
	"strconv"

	"github.com/babylonlabs-io/staking-yield-ledger/internal/db"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/observability/tracing"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func WithdrawalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdrawals",
		Short: "List the yield withdrawals of a participant",
		Args:  cobra.ExactArgs(0),
		RunE:  listWithdrawals,
	}

	cmd.Flags().String("participant", "", "participant identity")
	_ = cmd.MarkFlagRequired("participant")

	return cmd
}

func listWithdrawals(cmd *cobra.Command, _ []string) error {
	ctx := tracing.StartCommand(cmd.Context(), cmd.Name())

	participant, err := cmd.Flags().GetString("participant")
	if err != nil {
		return err
	}

	return withDb(ctx, func(dbClient db.DbInterface) error {
		docs, err := dbClient.GetYieldWithdrawals(ctx, participant)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no yield withdrawals for %s\n", participant)
			return nil
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"id", "amount", "elapsed", "withdrawn at"})
		for _, doc := range docs {
			table.Append([]string{
				doc.ID,
				doc.Amount,
				strconv.FormatUint(doc.ElapsedTime, 10),
				strconv.FormatUint(doc.WithdrawnAt, 10),
			})
		}
		table.Render()
		return nil
	})
}
