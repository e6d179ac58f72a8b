package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"StockAdvisor/internal/report"
)

var reportFrom string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the automated analysis report of a saved analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAnalysis(reportFrom)
		if err != nil {
			return err
		}
		if a == nil {
			fmt.Fprintln(cmd.OutOrStdout(), report.NoAnalysis)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), report.FormatAnalysisReport(a))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "Analysis JSON written by analyze --save")
}
