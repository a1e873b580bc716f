package infaqslots

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"infaqku_backend/internals/features/infaq/slots/model"
	"infaqku_backend/internals/features/infaq/slots/repository"
	"infaqku_backend/internals/features/infaq/slots/service"
)

// InfaqSlotSeed: slot yang dikurasi admin sebelum ada kontribusi.
type InfaqSlotSeed struct {
	MosqueName    string `json:"mosque_name" yaml:"mosque_name"`
	MosqueAddress string `json:"mosque_address" yaml:"mosque_address"`
	Date          string `json:"date" yaml:"date"`
	Status        string `json:"status" yaml:"status"`
	Description   string `json:"description" yaml:"description"`
}

type Result struct {
	Inserted int
	Skipped  int
}

// SeedInfaqSlotsFromFile memasukkan slot kosong dari file JSON/YAML (0 unit, ongkir belum ada).
// Slot yang (masjid, tanggal)-nya sudah ada dilewati, jadi aman dijalankan ulang.
func SeedInfaqSlotsFromFile(ctx context.Context, store repository.Store, filePath string, log *zap.Logger) (Result, error) {
	var res Result
	log.Info("📥 Membaca file seed", zap.String("path", filePath))

	file, err := os.ReadFile(filePath)
	if err != nil {
		return res, fmt.Errorf("baca file seed: %w", err)
	}

	seeds, err := decodeSeeds(filePath, file)
	if err != nil {
		return res, err
	}

	now := time.Now().UTC()
	for i, s := range seeds {
		slot, err := s.toModel(now)
		if err != nil {
			return res, fmt.Errorf("seed #%d: %w", i+1, err)
		}

		inserted := false
		err = store.RunInTx(ctx, func(tx repository.Tx) error {
			existing, err := tx.FindSlotByMosqueDate(slot.InfaqSlotMosqueName, slot.Date())
			if err != nil || existing != nil {
				return err
			}
			inserted = true
			return tx.CreateSlot(slot)
		})
		if err != nil {
			return res, fmt.Errorf("seed %s %s: %w", s.MosqueName, s.Date, err)
		}

		if !inserted {
			res.Skipped++
			log.Info("ℹ️ Slot sudah ada, lewati", zap.String("mosque", s.MosqueName), zap.String("date", s.Date))
			continue
		}
		res.Inserted++
		log.Info("✅ Slot di-seed",
			zap.String("slot_id", slot.InfaqSlotID.String()),
			zap.String("mosque", slot.InfaqSlotMosqueName),
			zap.String("status", string(slot.InfaqSlotStatus)),
		)
	}
	return res, nil
}

// decodeSeeds: .yaml/.yml → YAML, selain itu JSON.
func decodeSeeds(filePath string, raw []byte) ([]InfaqSlotSeed, error) {
	var seeds []InfaqSlotSeed
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &seeds); err != nil {
			return nil, fmt.Errorf("decode seed YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &seeds); err != nil {
			return nil, fmt.Errorf("decode seed JSON: %w", err)
		}
	}
	return seeds, nil
}

func (s InfaqSlotSeed) toModel(now time.Time) (*model.InfaqSlot, error) {
	mosque := strings.TrimSpace(s.MosqueName)
	if !repository.UsesNaturalKey(mosque) {
		return nil, fmt.Errorf("mosque_name wajib diisi dan bukan %q", model.MosquePlaceholder)
	}

	date, err := service.ParseDeliveryDate(strings.TrimSpace(s.Date))
	if err != nil {
		return nil, err
	}

	status := model.SlotStatusContributionsWelcome
	if s.Status != "" {
		status = model.SlotStatus(s.Status)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("status tidak dikenal: %q", s.Status)
	}

	desc := strings.TrimSpace(s.Description)
	if desc == "" {
		desc = service.Describe(0, false)
	}

	slot := &model.InfaqSlot{
		InfaqSlotMosqueName:  mosque,
		InfaqSlotDisplayDate: service.DisplayDate(date),
		InfaqSlotStatus:      status,
		InfaqSlotDescription: desc,
		InfaqSlotCreatedAt:   now,
		InfaqSlotUpdatedAt:   now,
	}
	slot.InfaqSlotDate = model.DateOf(date)
	if addr := strings.TrimSpace(s.MosqueAddress); addr != "" {
		slot.InfaqSlotMosqueAddress = &addr
	}
	return slot, nil
}
