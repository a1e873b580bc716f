package seeds

import (
	"context"

	"go.uber.org/zap"

	"infaqku_backend/internals/features/infaq/slots/repository"
	infaqslots "infaqku_backend/internals/seeds/infaq_slots"
)

const DefaultInfaqSlotsFile = "internals/seeds/infaq_slots/data_infaq_slots.json"

// RunAllSeeds: path kosong → file default.
func RunAllSeeds(ctx context.Context, store repository.Store, path string, log *zap.Logger) (infaqslots.Result, error) {
	if path == "" {
		path = DefaultInfaqSlotsFile
	}

	//* Infaq slots (kurasi admin)
	return infaqslots.SeedInfaqSlotsFromFile(ctx, store, path, log)
}
