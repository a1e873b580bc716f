package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"infaqku_backend/internals/features/infaq/slots/service"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Cek total unit & status ongkir tiap slot terhadap log kontribusinya",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		svc := service.NewContributionService(store, nil, nil, logger, service.Options{})
		rep, err := svc.VerifyAll(cmd.Context())
		if err != nil {
			return err
		}

		for _, d := range rep.Drifts {
			logger.Warn("slot drift", zap.String("detail", d.String()))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d slot(s), %d drifted\n", rep.Checked, len(rep.Drifts))
		if len(rep.Drifts) > 0 {
			return fmt.Errorf("%d slot tidak konsisten", len(rep.Drifts))
		}
		return nil
	},
}
