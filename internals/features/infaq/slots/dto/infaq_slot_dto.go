package dto

import (
	"time"

	"infaqku_backend/internals/features/infaq/slots/model"
)

const DateLayout = "2006-01-02"

type InfaqContributionResponse struct {
	InfaqContributionID                string                 `json:"infaq_contribution_id"`
	InfaqContributionSeq               int                    `json:"infaq_contribution_seq"`
	InfaqContributionKind              model.ContributionKind `json:"infaq_contribution_kind"`
	InfaqContributionDonorName         string                 `json:"infaq_contribution_donor_name"`
	InfaqContributionQuantity          *int                   `json:"infaq_contribution_quantity,omitempty"`
	InfaqContributionSponsoredDelivery bool                   `json:"infaq_contribution_sponsored_delivery"`
	InfaqContributionAmount            *float64               `json:"infaq_contribution_amount,omitempty"`
	InfaqContributionOrderID           *string                `json:"infaq_contribution_order_id,omitempty"`
	InfaqContributionTimestamp         time.Time              `json:"infaq_contribution_timestamp"`
}

type InfaqSlotResponse struct {
	InfaqSlotID                string           `json:"infaq_slot_id"`
	InfaqSlotMosqueName        string           `json:"infaq_slot_mosque_name"`
	InfaqSlotMosqueAddress     *string          `json:"infaq_slot_mosque_address,omitempty"`
	InfaqSlotDate              string           `json:"infaq_slot_date"`
	InfaqSlotDisplayDate       string           `json:"infaq_slot_display_date"`
	InfaqSlotStatus            model.SlotStatus `json:"infaq_slot_status"`
	InfaqSlotDescription       string           `json:"infaq_slot_description"`
	InfaqSlotTotalUnits        int              `json:"infaq_slot_total_units"`
	InfaqSlotIsDeliveryCovered bool             `json:"infaq_slot_is_delivery_covered"`
	InfaqSlotContributionCount int              `json:"infaq_slot_contribution_count"`

	InfaqSlotContributions []InfaqContributionResponse `json:"infaq_slot_contributions,omitempty"`

	InfaqSlotCreatedAt time.Time `json:"infaq_slot_created_at"`
	InfaqSlotUpdatedAt time.Time `json:"infaq_slot_updated_at"`
}

// FromModel: withLog=false untuk listing (log kontribusi tidak ikut dikirim).
func FromModel(s model.InfaqSlot, withLog bool) InfaqSlotResponse {
	out := InfaqSlotResponse{
		InfaqSlotID:                s.InfaqSlotID.String(),
		InfaqSlotMosqueName:        s.InfaqSlotMosqueName,
		InfaqSlotMosqueAddress:     s.InfaqSlotMosqueAddress,
		InfaqSlotDate:              s.Date().Format(DateLayout),
		InfaqSlotDisplayDate:       s.InfaqSlotDisplayDate,
		InfaqSlotStatus:            s.InfaqSlotStatus,
		InfaqSlotDescription:       s.InfaqSlotDescription,
		InfaqSlotTotalUnits:        s.InfaqSlotTotalUnits,
		InfaqSlotIsDeliveryCovered: s.InfaqSlotIsDeliveryCovered,
		InfaqSlotContributionCount: len(s.InfaqSlotContributions),
		InfaqSlotCreatedAt:         s.InfaqSlotCreatedAt,
		InfaqSlotUpdatedAt:         s.InfaqSlotUpdatedAt,
	}
	if withLog {
		out.InfaqSlotContributions = make([]InfaqContributionResponse, 0, len(s.InfaqSlotContributions))
		for _, c := range s.InfaqSlotContributions {
			out.InfaqSlotContributions = append(out.InfaqSlotContributions, InfaqContributionResponse{
				InfaqContributionID:                c.InfaqContributionID.String(),
				InfaqContributionSeq:               c.InfaqContributionSeq,
				InfaqContributionKind:              c.InfaqContributionKind,
				InfaqContributionDonorName:         c.InfaqContributionDonorName,
				InfaqContributionQuantity:          c.InfaqContributionQuantity,
				InfaqContributionSponsoredDelivery: c.InfaqContributionSponsoredDelivery,
				InfaqContributionAmount:            c.InfaqContributionAmount,
				InfaqContributionOrderID:           c.InfaqContributionOrderID,
				InfaqContributionTimestamp:         c.InfaqContributionTimestamp,
			})
		}
	}
	return out
}

func FromModels(rows []model.InfaqSlot) []InfaqSlotResponse {
	out := make([]InfaqSlotResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r, false))
	}
	return out
}
