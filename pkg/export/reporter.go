// Package export renders evaluation results as fixed-width terminal
// tables.
package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/template"

	"github.com/Rhymond/go-money"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
)

type TableConfig struct {
	GroupWidth  int
	ItemWidth   int
	AmountWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		GroupWidth:  15,
		ItemWidth:   15,
		AmountWidth: 15,
	}
}

// Reporter writes cash-flow tables and simulation statistics. Amounts
// are formatted in the configured ISO currency.
type Reporter struct {
	writer   io.Writer
	currency string
	config   TableConfig
}

func NewReporter(writer io.Writer, currency string) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	if currency == "" {
		currency = money.USD
	}
	return &Reporter{
		writer:   writer,
		currency: currency,
		config:   DefaultTableConfig(),
	}
}

// HandleCashFlow renders one sampled trial: a header of year columns,
// one row per group/item, and the net cash-flow footer.
func (r *Reporter) HandleCashFlow(table *domain.CashFlowTable) error {
	c := r.config
	cell := func(v string) string { return fmt.Sprintf("%-*s", c.AmountWidth, v) }

	funcMap := template.FuncMap{
		"header": func() string {
			cols := []string{
				fmt.Sprintf("%-*s", c.GroupWidth, "Group"),
				fmt.Sprintf("%-*s", c.ItemWidth, "Item"),
			}
			for year := 0; year <= table.Years; year++ {
				cols = append(cols, cell(fmt.Sprintf("Year %d", year)))
			}
			return "| " + strings.Join(cols, " | ") + " |"
		},
		"row": func(row domain.CashFlowRow) string {
			cols := []string{
				fmt.Sprintf("%-*.*s", c.GroupWidth, c.GroupWidth, row.Group),
				fmt.Sprintf("%-*.*s", c.ItemWidth, c.ItemWidth, row.Item),
			}
			for _, v := range row.Values {
				cols = append(cols, cell(r.amount(v)))
			}
			return "| " + strings.Join(cols, " | ") + " |"
		},
		"netRow": func() string {
			label := c.GroupWidth + c.ItemWidth + 3
			cols := []string{fmt.Sprintf("%-*s", label, "Net Cash Flow")}
			for _, v := range table.Net {
				cols = append(cols, cell(r.amount(v)))
			}
			return "| " + strings.Join(cols, " | ") + " |"
		},
		"separator": func() string {
			parts := []string{
				strings.Repeat("-", c.GroupWidth+2),
				strings.Repeat("-", c.ItemWidth+2),
			}
			for year := 0; year <= table.Years; year++ {
				parts = append(parts, strings.Repeat("-", c.AmountWidth+2))
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}

	tmpl := `{{separator}}
{{header}}
{{separator}}
{{range .Rows}}{{row .}}
{{end}}{{separator}}
{{netRow}}
{{separator}}
`
	t, err := template.New("cashflow").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, table)
}

// HandleEvaluation renders the metrics of a single sampled trial.
func (r *Reporter) HandleEvaluation(irr, npv, payback float64) error {
	_, err := fmt.Fprintf(r.writer,
		"Internal Rate of Return: %s\nNet Present Value:       %s\nPayback Period [years]:  %s\n",
		formatNumber(irr*100, "%.2f%%"),
		r.amount(npv),
		formatNumber(payback, "%.2f"))
	return err
}

// HandleSimulation renders Monte Carlo statistics for the three
// metrics.
func (r *Reporter) HandleSimulation(result *domain.SimulationResult) error {
	funcMap := template.FuncMap{
		"rate":   func(v float64) string { return formatNumber(v*100, "%.2f%%") },
		"amount": r.amount,
		"years":  func(v float64) string { return formatNumber(v, "%.2f") },
	}

	tmpl := `Monte Carlo simulation ({{.Iterations}} iterations)

Internal Rate of Return
  mean {{rate .IRR.Mean}}, std. deviation {{rate .IRR.StdDev}}
Net Present Value
  mean {{amount .NPV.Mean}}, std. deviation {{amount .NPV.StdDev}}
Payback Period [years]
  mean {{years .PaybackPeriod.Mean}}, std. deviation {{years .PaybackPeriod.StdDev}}
`
	t, err := template.New("simulation").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, result)
}

// amount renders a sampled value as money; degenerate values print as
// NaN rather than a bogus amount.
func (r *Reporter) amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%v", v)
	}
	currency := money.GetCurrency(r.currency)
	if currency == nil {
		return fmt.Sprintf("%.2f %s", v, r.currency)
	}
	minor := math.Round(v * math.Pow10(currency.Fraction))
	return money.New(int64(minor), r.currency).Display()
}

func formatNumber(v float64, format string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf(format, v)
}
