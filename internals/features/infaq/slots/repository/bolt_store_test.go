package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"infaqku_backend/internals/features/infaq/slots/model"
)

func openTestStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newSlot(mosque string, date time.Time, units int) *model.InfaqSlot {
	q := units
	return &model.InfaqSlot{
		InfaqSlotMosqueName: mosque,
		InfaqSlotDate:       datatypes.Date(date),
		InfaqSlotStatus:     model.SlotStatusContributionsOpen,
		InfaqSlotTotalUnits: units,
		InfaqSlotCreatedAt:  time.Now().UTC(),
		InfaqSlotContributions: []model.InfaqContribution{{
			InfaqContributionKind:      model.ContributionKindUnitDonation,
			InfaqContributionDonorName: "Fatimah",
			InfaqContributionQuantity:  &q,
		}},
	}
}

func createSlot(t *testing.T, s *BoltStore, slot *model.InfaqSlot) {
	t.Helper()
	require.NoError(t, s.RunInTx(context.Background(), func(tx Tx) error {
		return tx.CreateSlot(slot)
	}))
}

func TestBoltCreateAndFind(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	slot := newSlot("Sultan", day(2025, 7, 4), 2)
	createSlot(t, s, slot)
	require.NotEqual(t, uuid.Nil, slot.InfaqSlotID)
	assert.Equal(t, 1, slot.InfaqSlotContributions[0].InfaqContributionSeq)
	assert.Equal(t, slot.InfaqSlotID, slot.InfaqSlotContributions[0].InfaqContributionSlotID)

	got, err := s.GetSlot(ctx, slot.InfaqSlotID)
	require.NoError(t, err)
	assert.Equal(t, "Sultan", got.InfaqSlotMosqueName)
	assert.Equal(t, day(2025, 7, 4), got.Date())
	require.Len(t, got.InfaqSlotContributions, 1)
	assert.Equal(t, 2, got.InfaqSlotContributions[0].Units())

	err = s.RunInTx(ctx, func(tx Tx) error {
		byKey, err := tx.FindSlotByMosqueDate("Sultan", day(2025, 7, 4))
		require.NoError(t, err)
		require.NotNil(t, byKey)
		assert.Equal(t, slot.InfaqSlotID, byKey.InfaqSlotID)

		missing, err := tx.FindSlotByMosqueDate("Sultan", day(2025, 7, 11))
		assert.NoError(t, err)
		assert.Nil(t, missing)

		missing, err = tx.FindSlotByID(uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, missing)
		return nil
	})
	require.NoError(t, err)
}

func TestBoltGetSlotNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetSlot(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBoltCreateDuplicateNaturalKey(t *testing.T) {
	s := openTestStore(t)
	createSlot(t, s, newSlot("Sultan", day(2025, 7, 4), 1))

	err := s.RunInTx(context.Background(), func(tx Tx) error {
		return tx.CreateSlot(newSlot("Sultan", day(2025, 7, 4), 1))
	})
	assert.ErrorIs(t, err, ErrDuplicateSlot)
	assert.True(t, IsRetryable(err))

	// placeholder tidak unik per tanggal
	createSlot(t, s, newSlot(model.MosquePlaceholder, day(2025, 7, 4), 0))
	createSlot(t, s, newSlot(model.MosquePlaceholder, day(2025, 7, 4), 0))

	_, total, err := s.ListSlots(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestBoltAppendContribution(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	slot := newSlot("Sultan", day(2025, 7, 4), 2)
	createSlot(t, s, slot)

	err := s.RunInTx(ctx, func(tx Tx) error {
		cur, err := tx.FindSlotByID(slot.InfaqSlotID)
		if err != nil {
			return err
		}
		cur.InfaqSlotTotalUnits = 2
		cur.InfaqSlotIsDeliveryCovered = true
		cur.InfaqSlotContributions = append(cur.InfaqSlotContributions, model.InfaqContribution{
			InfaqContributionKind:      model.ContributionKindDeliverySponsorship,
			InfaqContributionDonorName: "Umar",
		})
		return tx.AppendContribution(cur)
	})
	require.NoError(t, err)

	got, err := s.GetSlot(ctx, slot.InfaqSlotID)
	require.NoError(t, err)
	require.Len(t, got.InfaqSlotContributions, 2)
	assert.True(t, got.InfaqSlotIsDeliveryCovered)
	last := got.InfaqSlotContributions[1]
	assert.Equal(t, 2, last.InfaqContributionSeq)
	assert.NotEqual(t, uuid.Nil, last.InfaqContributionID)
	assert.Equal(t, slot.InfaqSlotID, last.InfaqContributionSlotID)
}

func TestBoltAppendRejectsStaleLog(t *testing.T) {
	s := openTestStore(t)
	slot := newSlot("Sultan", day(2025, 7, 4), 2)
	createSlot(t, s, slot)

	err := s.RunInTx(context.Background(), func(tx Tx) error {
		// log tidak ditambah entri baru
		return tx.AppendContribution(slot)
	})
	assert.Error(t, err)

	err = s.RunInTx(context.Background(), func(tx Tx) error {
		return tx.AppendContribution(newSlot("Ghost", day(2025, 7, 4), 1))
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBoltRunInTxRollsBack(t *testing.T) {
	s := openTestStore(t)
	boom := errors.New("boom")

	err := s.RunInTx(context.Background(), func(tx Tx) error {
		if err := tx.CreateSlot(newSlot("Sultan", day(2025, 7, 4), 1)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, total, err := s.ListSlots(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	err = s.RunInTx(context.Background(), func(tx Tx) error {
		found, err := tx.FindSlotByMosqueDate("Sultan", day(2025, 7, 4))
		assert.Nil(t, found)
		return err
	})
	assert.NoError(t, err)
}

func TestBoltRunInTxCancelledContext(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.RunInTx(ctx, func(tx Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestBoltListSlotsFilterAndPaging(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	createSlot(t, s, newSlot("Sultan", day(2025, 7, 18), 1))
	createSlot(t, s, newSlot("Sultan", day(2025, 7, 4), 1))
	createSlot(t, s, newSlot("Al-Falah", day(2025, 7, 11), 1))

	rows, total, err := s.ListSlots(ctx, ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, day(2025, 7, 4), rows[0].Date())
	assert.Equal(t, day(2025, 7, 11), rows[1].Date())
	assert.Equal(t, day(2025, 7, 18), rows[2].Date())

	from, to := day(2025, 7, 5), day(2025, 7, 31)
	rows, total, err = s.ListSlots(ctx, ListFilter{From: &from, To: &to, Mosque: "Sultan"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, day(2025, 7, 18), rows[0].Date())

	rows, total, err = s.ListSlots(ctx, ListFilter{Offset: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)

	rows, _, err = s.ListSlots(ctx, ListFilter{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, day(2025, 7, 11), rows[0].Date())
}

func TestBoltPing(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestUsesNaturalKey(t *testing.T) {
	assert.True(t, UsesNaturalKey("Sultan"))
	assert.False(t, UsesNaturalKey(""))
	assert.False(t, UsesNaturalKey(model.MosquePlaceholder))
}
