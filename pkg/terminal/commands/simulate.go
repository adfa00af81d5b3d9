package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/de-tools/roi-atlas/pkg/export"
	"github.com/de-tools/roi-atlas/pkg/store/xmlfile"
)

type simulateCmd struct {
	opts       *options
	file       string
	currency   string
	iterations int
}

func newSimulateCmd(opts *options) *cobra.Command {
	sc := &simulateCmd{opts: opts}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the Monte Carlo simulation for a scenario file",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.file, "file", "", "Path to the scenario XML file")
	cmd.Flags().StringVar(&sc.currency, "currency", "", "ISO currency code for amounts")
	cmd.Flags().IntVar(&sc.iterations, "iterations", 0, "Override the document's iteration count")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (sc *simulateCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, err := sc.opts.defaults()
	if err != nil {
		return err
	}
	currency := cfg.Currency
	if sc.currency != "" {
		currency = sc.currency
	}

	summary, err := xmlfile.ReadFile(sc.file)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	if cmd.Flags().Changed("iterations") {
		summary.Iterations = sc.iterations
	}

	// Interruptible between iterations.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := summary.Simulate(ctx)
	if err != nil {
		return fmt.Errorf("simulation aborted: %w", err)
	}

	reporter := export.NewReporter(sc.opts.out, currency)
	return reporter.HandleSimulation(result)
}
