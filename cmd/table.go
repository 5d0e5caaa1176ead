package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/bcdannyboy/dhedge/probability"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(title)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	return t
}

// writeOutput renders v with --format: JSON by default, or the table built
// by render.
func writeOutput(v interface{}, render func() table.Writer) error {
	switch format := viper.GetString("format"); format {
	case "", formatJSON:
		return writeResult(v)
	case formatTable:
		return writeText(render().Render() + "\n")
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}

func priceTable(report priceReport) table.Writer {
	t := newTable(fmt.Sprintf("%s S=%g K=%g T=%g", report.Option.Type, report.Option.S0, report.Option.K, report.Option.T))
	t.AppendHeader(table.Row{"Measure", "Value"})
	g := report.Greeks
	t.AppendRows([]table.Row{
		{"price", g.Price},
		{"d1", g.D1},
		{"d2", g.D2},
		{"delta", g.Delta},
		{"gamma", g.Gamma},
		{"theta", g.Theta},
		{"vega", g.Vega},
		{"rho", g.Rho},
	})
	if report.ImpliedVol != nil {
		t.AppendRow(table.Row{"implied vol", *report.ImpliedVol})
	}

	if report.Ladder != nil {
		t.AppendSeparator()
		t.AppendRow(table.Row{"strike", "price / delta / gamma / vega"})
		l := report.Ladder
		for i, k := range l.Strikes {
			t.AppendRow(table.Row{k, fmt.Sprintf("%.4f / %.4f / %.4f / %.4f", l.Prices[i], l.Deltas[i], l.Gammas[i], l.Vegas[i])})
		}
	}
	return t
}

func monteCarloTable(result probability.MonteCarloResult) table.Writer {
	t := newTable(fmt.Sprintf("hedging PnL over %d paths", result.Simulations))
	t.AppendHeader(table.Row{"Statistic", "Value"})
	t.AppendRows([]table.Row{
		{"seed", result.Seed},
		{"mean", result.Mean},
		{"std dev", result.StdDev},
		{"std err", result.StdErr},
		{"95% low", result.ConfidenceLow},
		{"95% high", result.ConfidenceHigh},
		{"VaR 95%", result.VaR95},
		{"ES 95%", result.ExpectedShortfall},
	})
	return t
}
