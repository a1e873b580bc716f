package main

import (
	"errors"

	"github.com/spf13/cobra"

	"infaqku_backend/internals/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Buat/ubah tabel infaq_slots & infaq_contributions (Postgres)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.StoreDriver != configs.StoreDriverPostgres {
			return errors.New("migrate hanya untuk STORE_DRIVER=postgres (bolt membuat bucket otomatis)")
		}
		store, err := openGormStore(cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Migrate(cmd.Context()); err != nil {
			return err
		}
		logger.Info("✅ Migrasi selesai")
		return nil
	},
}
