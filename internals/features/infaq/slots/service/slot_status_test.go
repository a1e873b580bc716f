package service

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infaqku_backend/internals/features/infaq/slots/model"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		kind    model.ContributionKind
		isNew   bool
		covered bool
		want    model.SlotStatus
	}{
		{model.ContributionKindDeliverySponsorship, true, true, model.SlotStatusDeliverySponsored},
		{model.ContributionKindDeliverySponsorship, false, true, model.SlotStatusDeliverySecured},
		{model.ContributionKindUnitDonation, true, true, model.SlotStatusDeliverySecured},
		{model.ContributionKindUnitDonation, false, true, model.SlotStatusDeliverySecured},
		{model.ContributionKindUnitDonation, true, false, model.SlotStatusContributionsOpen},
		{model.ContributionKindUnitDonation, false, false, model.SlotStatusContributionsOpen},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveStatus(tc.kind, tc.isNew, tc.covered), "%s new=%t covered=%t", tc.kind, tc.isNew, tc.covered)
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "1 unit contributed so far. Shared delivery fee is still needed.", Describe(1, false))
	assert.Equal(t, "5 units contributed so far. Delivery is covered - join in with your own units!", Describe(5, true))
	assert.Equal(t, "0 units contributed so far. Delivery is covered - join in with your own units!", Describe(0, true))
}

func TestApplyContributionRecomputesFromLatestTotals(t *testing.T) {
	now := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	q := 3
	slot := &model.InfaqSlot{InfaqSlotTotalUnits: 2, InfaqSlotIsDeliveryCovered: true, InfaqSlotDescription: "stale"}

	err := applyContribution(slot, model.InfaqContribution{
		InfaqContributionKind:     model.ContributionKindUnitDonation,
		InfaqContributionQuantity: &q,
	}, false, now)
	require.NoError(t, err)

	assert.Equal(t, 5, slot.InfaqSlotTotalUnits)
	assert.True(t, slot.InfaqSlotIsDeliveryCovered)
	assert.Equal(t, model.SlotStatusDeliverySecured, slot.InfaqSlotStatus)
	assert.Equal(t, Describe(5, true), slot.InfaqSlotDescription)
	assert.Equal(t, now, slot.InfaqSlotUpdatedAt)
	assert.Len(t, slot.InfaqSlotContributions, 1)
}

func TestApplyContributionRejectsOverflow(t *testing.T) {
	now := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	q := 2
	slot := &model.InfaqSlot{
		InfaqSlotTotalUnits:  math.MaxInt - 1,
		InfaqSlotStatus:      model.SlotStatusContributionsOpen,
		InfaqSlotDescription: Describe(math.MaxInt-1, false),
	}

	err := applyContribution(slot, model.InfaqContribution{
		InfaqContributionKind:     model.ContributionKindUnitDonation,
		InfaqContributionQuantity: &q,
	}, false, now)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "quantity")
	assert.Equal(t, math.MaxInt-1, slot.InfaqSlotTotalUnits)
	assert.Empty(t, slot.InfaqSlotContributions)
	assert.True(t, slot.InfaqSlotUpdatedAt.IsZero())

	neg := -1
	err = applyContribution(&model.InfaqSlot{}, model.InfaqContribution{
		InfaqContributionKind:     model.ContributionKindUnitDonation,
		InfaqContributionQuantity: &neg,
	}, true, now)
	assert.ErrorAs(t, err, &verr)

	one := 1
	err = applyContribution(slot, model.InfaqContribution{
		InfaqContributionKind:     model.ContributionKindUnitDonation,
		InfaqContributionQuantity: &one,
	}, false, now)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, slot.InfaqSlotTotalUnits)
}
