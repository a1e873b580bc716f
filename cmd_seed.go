package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"infaqku_backend/internals/seeds"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Masukkan slot kurasi admin dari file JSON/YAML (idempoten per masjid+tanggal)",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		res, err := seeds.RunAllSeeds(cmd.Context(), store, seedFile, logger)
		if err != nil {
			return err
		}
		logger.Info("✅ Seed selesai", zap.Int("inserted", res.Inserted), zap.Int("skipped", res.Skipped))
		fmt.Fprintf(cmd.OutOrStdout(), "inserted=%d skipped=%d\n", res.Inserted, res.Skipped)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "path file JSON/YAML (default "+seeds.DefaultInfaqSlotsFile+")")
}
