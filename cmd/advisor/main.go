package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"StockAdvisor/internal/config"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Stock rise-probability scorer and position advisor",
	Long: `advisor scores the chance of a stock rising from a handful of technical
indicators, recommends what to do with an open position, and assembles a
personal investment thesis document.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.Path(), "Path to the YAML or TOML config file")
	rootCmd.AddCommand(analyzeCmd, reportCmd, thesisCmd, serveCmd)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}
