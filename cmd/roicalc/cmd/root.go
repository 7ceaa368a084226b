// Package cmd provides the commands of the roicalc CLI.
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sentratech/roi-engine/internal/logging"
	"github.com/sentratech/roi-engine/internal/roi"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	verbose   bool
	logFormat string

	log    *zap.Logger
	engine *roi.Engine
}

// NewRootCmd builds the command tree. Output goes to the command's out writer
// and logs go to its err writer.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "roicalc",
		Short: "Compare outsourced contact-center cost against AI automation",
		Long: `roicalc computes the cost comparison, payback and ROI of replacing
outsourced (BPO) agent labor with AI call automation.

Examples:
  roicalc countries
  roicalc calculate --country Bangladesh --calls 1000 --interactions 1000 --call-aht 8 --interaction-aht 5 --automation 0.6 --price 1200 --impl-cost 3000
  roicalc calculate --country Philippines --mode agent_count --agents 12 --price 1200 --format json
  roicalc agents --country Bangladesh --agents 10`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if a.verbose {
				level = "debug"
			}
			a.log = logging.NewWithWriter(logging.Config{Level: level, Format: a.logFormat}, cmd.ErrOrStderr())

			engine, err := roi.New(roi.DefaultRates())
			if err != nil {
				return err
			}
			a.engine = engine
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "console", "log format (console, json)")

	root.AddCommand(newCalculateCmd(a))
	root.AddCommand(newAgentsCmd(a))
	root.AddCommand(newCountriesCmd(a))

	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}
