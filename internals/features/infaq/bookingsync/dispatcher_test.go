package bookingsync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type blockingNotifier struct {
	release chan struct{}
	mu      sync.Mutex
	seen    []string
	err     error
}

func (b *blockingNotifier) Notify(ctx context.Context, n BookingNotice) error {
	if b.release != nil {
		select {
		case <-b.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	b.mu.Lock()
	b.seen = append(b.seen, n.SlotID)
	b.mu.Unlock()
	return b.err
}

func (b *blockingNotifier) ids() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.seen...)
}

func observed(level zap.AtomicLevel) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func TestDispatchDeliversAndCloseDrains(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	n := &blockingNotifier{}
	d := NewDispatcher(n, 4, time.Second, zap.NewNop())

	assert.True(t, d.Dispatch(BookingNotice{SlotID: "a"}))
	assert.True(t, d.Dispatch(BookingNotice{SlotID: "b"}))

	require.NoError(t, d.Close(context.Background()))
	assert.ElementsMatch(t, []string{"a", "b"}, n.ids())

	assert.False(t, d.Dispatch(BookingNotice{SlotID: "late"}))
}

func TestDispatchDropsWhenSaturated(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	n := &blockingNotifier{release: make(chan struct{})}
	log, logs := observed(zap.NewAtomicLevelAt(zap.WarnLevel))
	d := NewDispatcher(n, 1, 5*time.Second, log)

	assert.True(t, d.Dispatch(BookingNotice{SlotID: "first"}))
	// tidak boleh memblokir walaupun slot penuh
	assert.False(t, d.Dispatch(BookingNotice{SlotID: "second"}))
	assert.Equal(t, 1, logs.FilterField(zap.String("slot_id", "second")).Len())

	close(n.release)
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, []string{"first"}, n.ids())
}

func TestDispatchFailureIsOnlyLogged(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	n := &blockingNotifier{err: errors.New("sheet quota exceeded")}
	log, logs := observed(zap.NewAtomicLevelAt(zap.WarnLevel))
	d := NewDispatcher(n, 2, time.Second, log)

	assert.True(t, d.Dispatch(BookingNotice{SlotID: "x", Kind: "UNIT_DONATION"}))
	require.NoError(t, d.Close(context.Background()))

	entries := logs.FilterMessage("booking sync gagal").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "x", entries[0].ContextMap()["slot_id"])
}

func TestDispatchAppliesTimeout(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	n := &blockingNotifier{release: make(chan struct{})}
	log, logs := observed(zap.NewAtomicLevelAt(zap.WarnLevel))
	d := NewDispatcher(n, 1, 20*time.Millisecond, log)

	assert.True(t, d.Dispatch(BookingNotice{SlotID: "slow"}))
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("booking sync gagal").Len())
	assert.Empty(t, n.ids())
}

func TestCloseHonoursContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	n := &blockingNotifier{release: make(chan struct{})}
	d := NewDispatcher(n, 1, 5*time.Second, zap.NewNop())
	require.True(t, d.Dispatch(BookingNotice{SlotID: "stuck"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)

	close(n.release)
	require.NoError(t, d.Close(context.Background()))
}

func TestBuildSummary(t *testing.T) {
	unit := BookingNotice{
		Kind: "UNIT_DONATION", DonorName: "Aisyah", Quantity: 2,
		MosqueName: "Sultan", DisplayDate: "Friday, July 4, 2025",
		TotalUnits: 5, Status: "Delivery Secured - Join In!",
	}
	assert.Equal(t,
		"Infaq UNIT_DONATION by Aisyah: 2 unit(s) for Sultan on Friday, July 4, 2025 (total 5 unit(s), Delivery Secured - Join In!)",
		unit.BuildSummary())

	sponsor := BookingNotice{
		Kind: "DELIVERY_SPONSORSHIP", DonorName: "Anonymous Sponsor", Amount: 25,
		MosqueName: "To Be Assigned", DisplayDate: "Friday, July 11, 2025",
		Status: "Delivery Fee Sponsored!",
	}
	assert.Contains(t, sponsor.BuildSummary(), ": delivery fee 25.00 for To Be Assigned")
}
