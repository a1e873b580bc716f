package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"infaqku_backend/internals/features/infaq/slots/model"
)

// Partial unique index: slot placeholder boleh lebih dari satu per tanggal.
const slotNaturalKeyIndexSQL = `
CREATE UNIQUE INDEX IF NOT EXISTS uq_infaq_slots_mosque_date
ON infaq_slots (infaq_slot_mosque_name, infaq_slot_date)
WHERE infaq_slot_mosque_name <> '` + model.MosquePlaceholder + `'`

// GormStore: Postgres. Slot yang sedang diubah dikunci dengan SELECT ... FOR UPDATE,
// slot baru dijaga oleh unique index (masjid, tanggal).
type GormStore struct {
	db *gorm.DB
}

// NewGormStore mengharapkan *gorm.DB yang dibuka dengan TranslateError: true.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&model.InfaqSlot{}, &model.InfaqContribution{}); err != nil {
		return fmt.Errorf("automigrate infaq: %w", err)
	}
	if err := db.Exec(slotNaturalKeyIndexSQL).Error; err != nil {
		return fmt.Errorf("create natural key index: %w", err)
	}
	return nil
}

func (s *GormStore) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	})
	return classifyGormError(err)
}

func (s *GormStore) GetSlot(ctx context.Context, id uuid.UUID) (*model.InfaqSlot, error) {
	var slot model.InfaqSlot
	err := s.db.WithContext(ctx).
		Preload("InfaqSlotContributions", orderBySeq).
		Where("infaq_slot_id = ?", id).
		Take(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (s *GormStore) ListSlots(ctx context.Context, f ListFilter) ([]model.InfaqSlot, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.InfaqSlot{})
	if f.From != nil {
		q = q.Where("infaq_slot_date >= ?", datatypes.Date(*f.From))
	}
	if f.To != nil {
		q = q.Where("infaq_slot_date <= ?", datatypes.Date(*f.To))
	}
	if f.Mosque != "" {
		q = q.Where("infaq_slot_mosque_name = ?", f.Mosque)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := []model.InfaqSlot{}
	q = q.Preload("InfaqSlotContributions", orderBySeq).
		Order("infaq_slot_date ASC, infaq_slot_created_at ASC")
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *GormStore) ForEachSlot(ctx context.Context, fn func(slot model.InfaqSlot) error) error {
	var batch []model.InfaqSlot
	res := s.db.WithContext(ctx).
		Preload("InfaqSlotContributions", orderBySeq).
		FindInBatches(&batch, 200, func(tx *gorm.DB, _ int) error {
			for _, slot := range batch {
				if err := fn(slot); err != nil {
					return err
				}
			}
			return nil
		})
	return res.Error
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormTx struct {
	db *gorm.DB
}

func orderBySeq(db *gorm.DB) *gorm.DB {
	return db.Order("infaq_contribution_seq ASC")
}

func (t *gormTx) lockedSlot(where string, args ...interface{}) (*model.InfaqSlot, error) {
	var slot model.InfaqSlot
	err := t.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(where, args...).
		Order("infaq_slot_created_at ASC").
		Limit(1).
		Take(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := orderBySeq(t.db).
		Where("infaq_contribution_slot_id = ?", slot.InfaqSlotID).
		Find(&slot.InfaqSlotContributions).Error; err != nil {
		return nil, fmt.Errorf("load log kontribusi: %w", err)
	}
	return &slot, nil
}

func (t *gormTx) FindSlotByID(id uuid.UUID) (*model.InfaqSlot, error) {
	return t.lockedSlot("infaq_slot_id = ?", id)
}

func (t *gormTx) FindSlotByMosqueDate(mosqueName string, date time.Time) (*model.InfaqSlot, error) {
	return t.lockedSlot("infaq_slot_mosque_name = ? AND infaq_slot_date = ?", mosqueName, datatypes.Date(date.UTC()))
}

func (t *gormTx) CreateSlot(slot *model.InfaqSlot) error {
	if slot.InfaqSlotID == uuid.Nil {
		slot.InfaqSlotID = uuid.New()
	}
	if err := t.db.Omit(clause.Associations).Create(slot).Error; err != nil {
		return err
	}
	if len(slot.InfaqSlotContributions) == 0 {
		return nil
	}
	for i := range slot.InfaqSlotContributions {
		c := &slot.InfaqSlotContributions[i]
		c.InfaqContributionSlotID = slot.InfaqSlotID
		c.InfaqContributionSeq = i + 1
	}
	return t.db.Create(&slot.InfaqSlotContributions).Error
}

func (t *gormTx) AppendContribution(slot *model.InfaqSlot) error {
	n := len(slot.InfaqSlotContributions)
	if n == 0 {
		return fmt.Errorf("slot %s tanpa entri kontribusi baru", slot.InfaqSlotID)
	}

	res := t.db.Model(&model.InfaqSlot{}).
		Where("infaq_slot_id = ?", slot.InfaqSlotID).
		Updates(map[string]interface{}{
			"infaq_slot_status":              string(slot.InfaqSlotStatus),
			"infaq_slot_description":         slot.InfaqSlotDescription,
			"infaq_slot_total_units":         slot.InfaqSlotTotalUnits,
			"infaq_slot_is_delivery_covered": slot.InfaqSlotIsDeliveryCovered,
			"infaq_slot_updated_at":          slot.InfaqSlotUpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSlotNotFound
	}

	last := &slot.InfaqSlotContributions[n-1]
	last.InfaqContributionSlotID = slot.InfaqSlotID
	last.InfaqContributionSeq = n
	return t.db.Create(last).Error
}

// classifyGormError memetakan error Postgres ke sentinel yang bisa di-retry.
func classifyGormError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateSlot, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %v", ErrDuplicateSlot, err)
		case "40001", "40P01":
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
	}
	return err
}
