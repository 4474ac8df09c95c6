package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/crm-tools/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "crm-tools",
	Short: "CRM lead tools backed by Odoo",
	Long:  "Creates and qualifies CRM leads in Odoo, classifies inbound lead text with the BANT framework via Claude, and serves the tool set over HTTP and MCP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
