package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/roi-atlas/pkg/export"
	"github.com/de-tools/roi-atlas/pkg/store/xmlfile"
)

type evaluateCmd struct {
	opts     *options
	file     string
	currency string
	rate     float64
	years    int
}

func newEvaluateCmd(opts *options) *cobra.Command {
	ec := &evaluateCmd{opts: opts}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Compute IRR, NPV and payback period for one sampled trial",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.file, "file", "", "Path to the scenario XML file")
	cmd.Flags().StringVar(&ec.currency, "currency", "", "ISO currency code for amounts")
	cmd.Flags().Float64Var(&ec.rate, "rate", 0, "Override the document's annual discount rate")
	cmd.Flags().IntVar(&ec.years, "years", 0, "Override the document's evaluation horizon")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (ec *evaluateCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, err := ec.opts.defaults()
	if err != nil {
		return err
	}
	currency := cfg.Currency
	if ec.currency != "" {
		currency = ec.currency
	}

	summary, err := xmlfile.ReadFile(ec.file)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	if cmd.Flags().Changed("rate") {
		summary.InterestRate = ec.rate
	}
	if cmd.Flags().Changed("years") {
		if ec.years < 0 {
			return fmt.Errorf("years must be non-negative, got %d", ec.years)
		}
		summary.Years = ec.years
	}

	summary.Resample()
	reporter := export.NewReporter(ec.opts.out, currency)
	return reporter.HandleEvaluation(summary.IRR(), summary.NPV(), summary.PaybackPeriod())
}
