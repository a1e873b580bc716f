package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InfaqContribution adalah entri log append-only; tidak pernah di-update/hapus.
type InfaqContribution struct {
	InfaqContributionID     uuid.UUID `gorm:"column:infaq_contribution_id;type:uuid;primaryKey" json:"infaq_contribution_id"`
	InfaqContributionSlotID uuid.UUID `gorm:"column:infaq_contribution_slot_id;type:uuid;not null;uniqueIndex:uq_infaq_contributions_slot_seq,priority:1" json:"infaq_contribution_slot_id"`

	// Urutan di dalam slot, mulai dari 1
	InfaqContributionSeq int `gorm:"column:infaq_contribution_seq;not null;uniqueIndex:uq_infaq_contributions_slot_seq,priority:2" json:"infaq_contribution_seq"`

	InfaqContributionKind      ContributionKind `gorm:"column:infaq_contribution_kind;type:varchar(30);not null" json:"infaq_contribution_kind"`
	InfaqContributionDonorName string           `gorm:"column:infaq_contribution_donor_name;type:varchar(100);not null" json:"infaq_contribution_donor_name"`

	// UNIT_DONATION saja
	InfaqContributionQuantity          *int `gorm:"column:infaq_contribution_quantity" json:"infaq_contribution_quantity,omitempty"`
	InfaqContributionSponsoredDelivery bool `gorm:"column:infaq_contribution_sponsored_delivery;not null;default:false" json:"infaq_contribution_sponsored_delivery"`

	// DELIVERY_SPONSORSHIP saja
	InfaqContributionAmount *float64 `gorm:"column:infaq_contribution_amount;type:numeric(12,2)" json:"infaq_contribution_amount,omitempty"`

	// order_id Midtrans (maks 50 char), dipakai untuk mencocokkan notifikasi pembayaran
	InfaqContributionOrderID *string `gorm:"column:infaq_contribution_order_id;type:varchar(50);uniqueIndex:uq_infaq_contributions_order_id" json:"infaq_contribution_order_id,omitempty"`

	InfaqContributionTimestamp time.Time `gorm:"column:infaq_contribution_timestamp;not null" json:"infaq_contribution_timestamp"`
}

func (InfaqContribution) TableName() string {
	return "infaq_contributions"
}

func (c *InfaqContribution) BeforeCreate(tx *gorm.DB) error {
	if c.InfaqContributionID == uuid.Nil {
		c.InfaqContributionID = uuid.New()
	}
	return nil
}

const OrderIDPrefix = "INFAQ-"

// OrderIDFor: "INFAQ-" + uuid tanpa strip = 38 char.
func OrderIDFor(contributionID uuid.UUID) string {
	return OrderIDPrefix + strings.ReplaceAll(contributionID.String(), "-", "")
}

// Units: jumlah unit yang dihitung ke total slot.
func (c InfaqContribution) Units() int {
	if c.InfaqContributionKind != ContributionKindUnitDonation || c.InfaqContributionQuantity == nil {
		return 0
	}
	return *c.InfaqContributionQuantity
}

// CoversDelivery: true kalau entri ini menanggung ongkir slot.
func (c InfaqContribution) CoversDelivery() bool {
	switch c.InfaqContributionKind {
	case ContributionKindDeliverySponsorship:
		return true
	case ContributionKindUnitDonation:
		return c.InfaqContributionSponsoredDelivery
	}
	return false
}
