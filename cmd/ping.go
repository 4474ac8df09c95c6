package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Verify Odoo connectivity and credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		uid, err := env.Odoo.UID(ctx)
		if err != nil {
			return err
		}

		zap.L().Info("odoo connection ok",
			zap.String("url", cfg.Odoo.URL),
			zap.String("database", cfg.Odoo.Database),
			zap.Int64("uid", uid),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
