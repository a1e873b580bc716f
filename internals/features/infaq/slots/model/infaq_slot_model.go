package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InfaqSlot: satu baris per (masjid, tanggal Jumat).
// Total unit & status ongkir adalah cache dari log InfaqSlotContributions.
type InfaqSlot struct {
	InfaqSlotID uuid.UUID `gorm:"column:infaq_slot_id;type:uuid;primaryKey" json:"infaq_slot_id"`

	InfaqSlotMosqueName    string  `gorm:"column:infaq_slot_mosque_name;type:varchar(150);not null;index:idx_infaq_slots_mosque_date,priority:1" json:"infaq_slot_mosque_name"`
	InfaqSlotMosqueAddress *string `gorm:"column:infaq_slot_mosque_address;type:text" json:"infaq_slot_mosque_address,omitempty"`

	// Tengah malam UTC dari tanggal kalender yang dipilih
	InfaqSlotDate        datatypes.Date `gorm:"column:infaq_slot_date;type:date;not null;index:idx_infaq_slots_mosque_date,priority:2" json:"infaq_slot_date"`
	InfaqSlotDisplayDate string         `gorm:"column:infaq_slot_display_date;type:varchar(50)" json:"infaq_slot_display_date"`

	InfaqSlotStatus      SlotStatus `gorm:"column:infaq_slot_status;type:varchar(60);not null" json:"infaq_slot_status"`
	InfaqSlotDescription string     `gorm:"column:infaq_slot_description;type:text" json:"infaq_slot_description"`

	InfaqSlotTotalUnits        int  `gorm:"column:infaq_slot_total_units;not null;default:0;check:infaq_slot_total_units >= 0" json:"infaq_slot_total_units"`
	InfaqSlotIsDeliveryCovered bool `gorm:"column:infaq_slot_is_delivery_covered;not null;default:false" json:"infaq_slot_is_delivery_covered"`

	InfaqSlotContributions []InfaqContribution `gorm:"foreignKey:InfaqContributionSlotID;references:InfaqSlotID" json:"infaq_slot_contributions"`

	InfaqSlotCreatedAt time.Time `gorm:"column:infaq_slot_created_at;not null" json:"infaq_slot_created_at"`
	InfaqSlotUpdatedAt time.Time `gorm:"column:infaq_slot_updated_at;not null" json:"infaq_slot_updated_at"`
}

func (InfaqSlot) TableName() string {
	return "infaq_slots"
}

func (s *InfaqSlot) BeforeCreate(tx *gorm.DB) error {
	if s.InfaqSlotID == uuid.Nil {
		s.InfaqSlotID = uuid.New()
	}
	return nil
}

// Date mengembalikan tanggal slot sebagai time.Time (UTC).
func (s InfaqSlot) Date() time.Time {
	return time.Time(s.InfaqSlotDate).UTC()
}

// DateOf menyimpan tanggal kalender sebagai tengah malam UTC.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
