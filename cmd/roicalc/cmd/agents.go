package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sentratech/roi-engine/internal/report"
)

func newAgentsCmd(a *app) *cobra.Command {
	var (
		country string
		agents  float64
		format  string
	)

	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Compare the monthly cost of outsourced agents against AI agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := a.engine.CompareAgents(country, agents)
			if err != nil {
				return err
			}
			a.log.Debug("agent comparison", zap.String("country", country), zap.Float64("agents", agents))

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return writeJSON(out, cmp)
			case "text":
				fmt.Fprintf(out, "Country: %s\n", cmp.Country)
				fmt.Fprintf(out, "Agents: %v\n", cmp.Agents)
				fmt.Fprintf(out, "Traditional monthly cost: %s\n", report.FormatMoney(cmp.TraditionalMonthlyCost))
				fmt.Fprintf(out, "AI monthly cost: %s\n", report.FormatMoney(cmp.AIMonthlyCost))
				fmt.Fprintf(out, "Monthly savings: %s\n", report.FormatMoney(cmp.MonthlySavings))
				fmt.Fprintf(out, "Annual savings: %s\n", report.FormatMoney(cmp.AnnualSavings))
				fmt.Fprintf(out, "Savings: %s\n", report.FormatPercent(cmp.SavingsPercent))
				return nil
			default:
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&country, "country", "c", "", "outsourcing country")
	cmd.Flags().Float64VarP(&agents, "agents", "n", 0, "number of agents")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	_ = cmd.MarkFlagRequired("country")
	_ = cmd.MarkFlagRequired("agents")

	return cmd
}
