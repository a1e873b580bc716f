// Package repository menyimpan slot Infaq beserta log kontribusinya.
//
// Semua keputusan tulis (cari slot → hitung agregat → simpan) wajib terjadi
// di dalam Store.RunInTx supaya dua kontribusi bersamaan ke slot yang sama
// tidak saling menimpa.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"infaqku_backend/internals/features/infaq/slots/model"
)

var (
	ErrSlotNotFound = errors.New("infaq slot not found")

	// Slot untuk (masjid, tanggal) yang sama sudah dibuat transaksi lain.
	ErrDuplicateSlot = errors.New("infaq slot already exists for mosque and date")

	// Konflik serialisasi / deadlock; transaksi boleh diulang utuh.
	ErrConflict = errors.New("infaq slot transaction conflict")
)

// IsRetryable: error yang aman diulang dengan menjalankan ulang seluruh transaksi.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrDuplicateSlot) || errors.Is(err, ErrConflict)
}

type Store interface {
	// RunInTx menjalankan fn secara atomik; error dari fn membatalkan semuanya.
	RunInTx(ctx context.Context, fn func(tx Tx) error) error

	GetSlot(ctx context.Context, id uuid.UUID) (*model.InfaqSlot, error)
	ListSlots(ctx context.Context, f ListFilter) ([]model.InfaqSlot, int64, error)
	ForEachSlot(ctx context.Context, fn func(slot model.InfaqSlot) error) error

	Ping(ctx context.Context) error
	Close() error
}

// Tx: operasi di dalam satu transaksi. Lookup mengembalikan (nil, nil) kalau tidak ada.
type Tx interface {
	FindSlotByID(id uuid.UUID) (*model.InfaqSlot, error)
	FindSlotByMosqueDate(mosqueName string, date time.Time) (*model.InfaqSlot, error)

	// CreateSlot menyimpan slot baru berikut log awalnya; ID diisi oleh store.
	CreateSlot(slot *model.InfaqSlot) error

	// AppendContribution menyimpan agregat slot terbaru dan entri log terakhirnya.
	// slot.InfaqSlotContributions sudah berisi entri baru di posisi terakhir.
	AppendContribution(slot *model.InfaqSlot) error
}

type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Mosque string

	Offset int
	Limit  int
}

func (f ListFilter) match(s model.InfaqSlot) bool {
	d := s.Date()
	if f.From != nil && d.Before(*f.From) {
		return false
	}
	if f.To != nil && d.After(*f.To) {
		return false
	}
	if f.Mosque != "" && s.InfaqSlotMosqueName != f.Mosque {
		return false
	}
	return true
}

// UsesNaturalKey: slot placeholder tidak ikut unik per (masjid, tanggal).
func UsesNaturalKey(mosqueName string) bool {
	return mosqueName != "" && mosqueName != model.MosquePlaceholder
}
