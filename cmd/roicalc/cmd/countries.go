package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sentratech/roi-engine/internal/report"
)

func newCountriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the supported countries and their rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rates := a.engine.Rates()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "COUNTRY\tBPO PER MINUTE\tBASE COST PER AGENT")
			for _, name := range rates.Countries() {
				rate, _ := rates.Lookup(name)
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, report.FormatMoney(rate.BPOPerMinute), report.FormatMoney(rate.BaseCostPerAgent))
			}
			fmt.Fprintf(tw, "\nAI cost per agent: %s\n", report.FormatMoney(rates.AICostPerAgent()))
			return tw.Flush()
		},
	}
}
