package cli

import (
	"fmt"

	"github.com/babylonlabs-io/staking-yield-ledger/internal/config"
	dbmodel "github.com/babylonlabs-io/staking-yield-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/observability/tracing"
	"github.com/spf13/cobra"
)

func SetupDbCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup-db",
		Short: "Create the ledger collections and indexes",
		Args:  cobra.ExactArgs(0),
		RunE:  setupDb,
	}
}

func setupDb(cmd *cobra.Command, _ []string) error {
	ctx := tracing.StartCommand(cmd.Context(), cmd.Name())

	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}

	return dbmodel.Setup(ctx, &cfg.Db)
}
