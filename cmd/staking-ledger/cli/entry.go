package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/babylonlabs-io/staking-yield-ledger/internal/config"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/db"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/observability/tracing"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// EntryCmd prints the stored stake entry of a participant.
// Usage: ./staking-ledger entry --config config.yml --participant alice
func EntryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Show the stake entry of a participant",
		Args:  cobra.ExactArgs(0),
		RunE:  showEntry,
	}

	cmd.Flags().String("participant", "", "participant identity")
	_ = cmd.MarkFlagRequired("participant")

	return cmd
}

func showEntry(cmd *cobra.Command, _ []string) error {
	ctx := tracing.StartCommand(cmd.Context(), cmd.Name())

	participant, err := cmd.Flags().GetString("participant")
	if err != nil {
		return err
	}

	return withDb(ctx, func(dbClient db.DbInterface) error {
		doc, err := dbClient.GetStakeEntry(ctx, participant)
		if err != nil {
			if db.IsNotFoundError(err) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s never staked\n", participant)
				return nil
			}
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"participant", "staking balance", "staking", "start time"})
		table.Append([]string{
			doc.Participant,
			doc.StakingBalance,
			strconv.FormatBool(doc.IsStaking),
			strconv.FormatUint(doc.StartTime, 10),
		})
		table.Render()
		return nil
	})
}

// withDb runs f with a metrics decorated client of the configured database.
func withDb(ctx context.Context, f func(dbClient db.DbInterface) error) error {
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}

	database, err := db.New(ctx, cfg.Db)
	if err != nil {
		return fmt.Errorf("error while creating db client: %w", err)
	}
	defer func() {
		if err := database.Close(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to close db client")
		}
	}()

	return f(db.NewDbWithMetrics(database))
}
