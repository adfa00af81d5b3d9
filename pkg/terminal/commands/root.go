// Package commands wires the scenario evaluation engine to a cobra
// command line.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/roi-atlas/pkg/services/config"
)

type options struct {
	cfgPath string
	out     io.Writer
}

func (o *options) defaults() (*config.Defaults, error) {
	return config.Load(o.cfgPath)
}

// NewRootCmd assembles the roi-atlas command tree. Output goes to out,
// or stdout when nil.
func NewRootCmd(out io.Writer) *cobra.Command {
	if out == nil {
		out = os.Stdout
	}
	opts := &options{out: out}

	root := &cobra.Command{
		Use:          "roi-atlas",
		Short:        "Evaluate capital-investment scenarios under Monte Carlo resampling",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "",
		"Path to the config file (default is roi-atlas.yaml in the working directory)")

	root.AddCommand(
		newShowCmd(opts),
		newEvaluateCmd(opts),
		newSimulateCmd(opts),
	)
	return root
}
