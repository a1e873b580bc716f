package bookingsync

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Dispatcher menjalankan Notifier di goroutine sendiri, tidak pernah memblokir pemanggil.
// Jumlah notifikasi yang berjalan bersamaan dibatasi; kalau penuh, notifikasi dibuang dan di-log.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	sem      *semaphore.Weighted
	log      *zap.Logger

	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

func NewDispatcher(n Notifier, maxInflight int64, timeout time.Duration, log *zap.Logger) *Dispatcher {
	if maxInflight < 1 {
		maxInflight = 1
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		notifier: n,
		timeout:  timeout,
		sem:      semaphore.NewWeighted(maxInflight),
		log:      log.Named("bookingsync"),
	}
}

// Dispatch mengembalikan false kalau notifikasi tidak dijadwalkan (penuh / sudah ditutup).
func (d *Dispatcher) Dispatch(n BookingNotice) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.log.Warn("dispatcher sudah ditutup, notifikasi dibuang", zap.String("slot_id", n.SlotID))
		return false
	}
	if !d.sem.TryAcquire(1) {
		d.mu.Unlock()
		d.log.Warn("notifikasi booking penuh, dibuang", zap.String("slot_id", n.SlotID))
		return false
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer d.sem.Release(1)

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.notifier.Notify(ctx, n); err != nil {
			d.log.Warn("booking sync gagal",
				zap.String("slot_id", n.SlotID),
				zap.String("kind", n.Kind),
				zap.Error(err),
			)
			return
		}
		d.log.Debug("booking sync terkirim", zap.String("slot_id", n.SlotID))
	}()
	return true
}

// Close menolak notifikasi baru lalu menunggu yang sedang berjalan (atau ctx habis).
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
