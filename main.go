package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"infaqku_backend/internals/configs"
)

var (
	cfg    configs.AppConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "infaqku",
	Short: "Infaq slot contribution backend",
	Long: `Backend untuk slot Infaq (masjid + tanggal Jumat): mencatat donasi unit
dan sponsor ongkir secara atomik, lalu mengirim ringkasan ke sinkronisasi booking.

Tanpa subcommand sama dengan "serve".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configs.LoadEnv()

		var err error
		if cfg, err = configs.Load(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if logger, err = configs.NewLogger(cfg); err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, verifyCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
