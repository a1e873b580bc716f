package dto

import (
	"strings"

	"infaqku_backend/internals/features/infaq/slots/model"
)

// Batas atas unit per satu submit.
const MaxUnitsPerContribution = 10000

// ContributeRequest: body dari form kontribusi Infaq.
type ContributeRequest struct {
	DonorName        string `json:"donor_name" validate:"max=100"`
	IsAnonymous      bool   `json:"is_anonymous"`
	ContributionKind string `json:"contribution_kind" validate:"required,oneof=UNIT_DONATION DELIVERY_SPONSORSHIP"`

	// UNIT_DONATION
	Quantity         int  `json:"quantity" validate:"gte=0,lte=10000"`
	CoverDeliveryFee bool `json:"cover_delivery_fee"`

	// DELIVERY_SPONSORSHIP
	Amount float64 `json:"amount" validate:"gte=0"`

	MosqueName    string `json:"mosque_name" validate:"max=150"`
	MosqueAddress string `json:"mosque_address" validate:"max=500"`

	// Format wajib YYYY-MM-DD
	DeliveryDate string `json:"delivery_date" validate:"required"`

	TargetSlotID string `json:"target_slot_id" validate:"omitempty,uuid"`
}

// Normalize merapikan whitespace sebelum validasi.
func (r *ContributeRequest) Normalize() {
	r.DonorName = strings.TrimSpace(r.DonorName)
	r.ContributionKind = strings.ToUpper(strings.TrimSpace(r.ContributionKind))
	r.MosqueName = strings.TrimSpace(r.MosqueName)
	r.MosqueAddress = strings.TrimSpace(r.MosqueAddress)
	r.DeliveryDate = strings.TrimSpace(r.DeliveryDate)
	r.TargetSlotID = strings.TrimSpace(r.TargetSlotID)
}

func (r ContributeRequest) Kind() model.ContributionKind {
	return model.ContributionKind(r.ContributionKind)
}

// ContributeResult adalah bentuk balikan di batas komponen: {success, message, slot_id}.
type ContributeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	SlotID  string `json:"slot_id,omitempty"`

	OrderID      string `json:"order_id,omitempty"`
	PaymentToken string `json:"payment_token,omitempty"`
	PaymentURL   string `json:"payment_url,omitempty"`
}
