package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/roi-atlas/pkg/export"
	"github.com/de-tools/roi-atlas/pkg/store/xmlfile"
)

type showCmd struct {
	opts     *options
	file     string
	currency string
}

func newShowCmd(opts *options) *cobra.Command {
	sc := &showCmd{opts: opts}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render one sampled cash-flow sheet for a scenario file",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.file, "file", "", "Path to the scenario XML file")
	cmd.Flags().StringVar(&sc.currency, "currency", "", "ISO currency code for amounts")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (sc *showCmd) run(cmd *cobra.Command, _ []string) error {
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

	reporter := export.NewReporter(sc.opts.out, currency)
	return reporter.HandleCashFlow(summary.Table())
}
