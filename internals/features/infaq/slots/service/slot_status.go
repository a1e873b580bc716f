package service

import (
	"fmt"
	"math"
	"time"

	"infaqku_backend/internals/features/infaq/slots/model"
)

// DeriveStatus: label status dari state slot setelah mutasi.
func DeriveStatus(kind model.ContributionKind, isNewSlot, deliveryCovered bool) model.SlotStatus {
	if kind == model.ContributionKindDeliverySponsorship {
		if isNewSlot {
			return model.SlotStatusDeliverySponsored
		}
		return model.SlotStatusDeliverySecured
	}
	if deliveryCovered {
		return model.SlotStatusDeliverySecured
	}
	return model.SlotStatusContributionsOpen
}

// Describe selalu disusun ulang dari total terbaru, tidak pernah ditambal.
func Describe(totalUnits int, deliveryCovered bool) string {
	units := "units"
	if totalUnits == 1 {
		units = "unit"
	}
	if deliveryCovered {
		return fmt.Sprintf("%d %s contributed so far. Delivery is covered - join in with your own units!", totalUnits, units)
	}
	return fmt.Sprintf("%d %s contributed so far. Shared delivery fee is still needed.", totalUnits, units)
}

// applyContribution menambahkan entri ke log lalu menghitung ulang agregat, status & deskripsi.
// Slot tidak diubah sama sekali kalau total akan overflow.
func applyContribution(slot *model.InfaqSlot, c model.InfaqContribution, isNewSlot bool, now time.Time) error {
	units := c.Units()
	if units < 0 || slot.InfaqSlotTotalUnits > math.MaxInt-units {
		return invalid("quantity", "Quantity is too large for this slot.")
	}
	slot.InfaqSlotTotalUnits += units
	slot.InfaqSlotIsDeliveryCovered = slot.InfaqSlotIsDeliveryCovered || c.CoversDelivery()
	slot.InfaqSlotContributions = append(slot.InfaqSlotContributions, c)

	slot.InfaqSlotStatus = DeriveStatus(c.InfaqContributionKind, isNewSlot, slot.InfaqSlotIsDeliveryCovered)
	slot.InfaqSlotDescription = Describe(slot.InfaqSlotTotalUnits, slot.InfaqSlotIsDeliveryCovered)
	slot.InfaqSlotUpdatedAt = now
	return nil
}
