package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/babylonlabs-io/staking-yield-ledger/internal/config"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/db"
	dbmodel "github.com/babylonlabs-io/staking-yield-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/observability/tracing"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/queue"
	"github.com/babylonlabs-io/staking-yield-ledger/internal/simulation"
	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errUnexpectedOutcome = errors.New("scenario produced unexpected outcomes")

// SimulateCmd runs a scenario entirely in process memory.
// Usage: ./staking-ledger simulate --scenario scenarios/hwfarm.yml [--dump]
func SimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a staking scenario against in-memory collaborators",
		Args:  cobra.ExactArgs(0),
		RunE:  simulate,
	}

	cmd.Flags().String("scenario", "", "scenario file")
	cmd.Flags().Bool("dump", false, "dump the final ledger entries")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func simulate(cmd *cobra.Command, _ []string) error {
	ctx := tracing.StartCommand(cmd.Context(), cmd.Name())

	scenario, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	runner, err := simulation.NewRunner(scenario)
	if err != nil {
		return fmt.Errorf("failed to build scenario runner: %w", err)
	}

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	return printReport(cmd, report)
}

// ReplayCmd runs a scenario with stake entries stored in the configured
// database and ledger events sent to the configured queue.
func ReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Run a staking scenario against the configured database and queue",
		Args:  cobra.ExactArgs(0),
		RunE:  replay,
	}

	cmd.Flags().String("scenario", "", "scenario file")
	cmd.Flags().Bool("dump", false, "dump the final ledger entries")
	cmd.Flags().String("run-id", "", "prefix for participant names, defaults to a fresh id")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func replay(cmd *cobra.Command, _ []string) error {
	ctx := tracing.StartCommand(cmd.Context(), cmd.Name())
	log := log.Ctx(ctx)

	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}

	scenario, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	runID, err := cmd.Flags().GetString("run-id")
	if err != nil {
		return err
	}
	if runID == "" {
		traceID, _ := tracing.TraceID(ctx)
		runID = shortID(traceID)
	}
	scenario.Namespace(runID)
	log.Info().Str("run_id", runID).Msg("replaying scenario")

	if err := dbmodel.Setup(ctx, &cfg.Db); err != nil {
		return fmt.Errorf("error while setting up ledger db model: %w", err)
	}

	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		return fmt.Errorf("error while creating db client: %w", err)
	}
	defer func() {
		if err := dbClient.Close(ctx); err != nil {
			log.Error().Err(err).Msg("failed to close db client")
		}
	}()

	var publisher queue.EventPublisher = queue.NewNopPublisher()
	if cfg.Queue != nil {
		publisher, err = queue.NewQueueManager(cfg.Queue)
		if err != nil {
			return fmt.Errorf("failed to initialize event publisher: %w", err)
		}
	}
	defer publisher.Shutdown()

	// initialize metrics with the metrics port from config
	metrics.Init(cfg.Metrics.GetMetricsPort())

	runner, err := simulation.NewRunner(
		scenario,
		simulation.WithStore(dbClient),
		simulation.WithPublisher(publisher),
	)
	if err != nil {
		return fmt.Errorf("failed to build scenario runner: %w", err)
	}

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	return printReport(cmd, report)
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func loadScenario(cmd *cobra.Command) (*simulation.Scenario, error) {
	path, err := cmd.Flags().GetString("scenario")
	if err != nil {
		return nil, err
	}

	scenario, err := simulation.LoadScenario(path)
	if err != nil {
		return nil, fmt.Errorf("error while loading scenario %s: %w", path, err)
	}
	return scenario, nil
}

func printReport(cmd *cobra.Command, report *simulation.Report) error {
	out := cmd.OutOrStdout()
	writeStepTable(out, report)
	writeSummaryTable(out, report)

	dump, err := cmd.Flags().GetBool("dump")
	if err != nil {
		return err
	}
	if dump {
		spew.Fdump(out, report.Entries)
	}

	if report.Failed() {
		return errUnexpectedOutcome
	}
	return nil
}
