// Package bookingsync mengirim ringkasan kontribusi ke sinkronisasi booking/kalender eksternal.
//
// Pengiriman bersifat best-effort: kegagalan hanya di-log dan tidak pernah
// membatalkan kontribusi yang sudah tersimpan.
package bookingsync

import (
	"fmt"
	"strings"
)

type BookingNotice struct {
	SlotID          string  `json:"slot_id"`
	MosqueName      string  `json:"mosque_name"`
	MosqueAddress   string  `json:"mosque_address,omitempty"`
	Date            string  `json:"date"`
	DisplayDate     string  `json:"display_date"`
	Kind            string  `json:"contribution_kind"`
	DonorName       string  `json:"donor_name"`
	Quantity        int     `json:"quantity,omitempty"`
	Amount          float64 `json:"amount,omitempty"`
	DeliveryCovered bool    `json:"delivery_covered"`
	TotalUnits      int     `json:"total_units"`
	Status          string  `json:"status"`
	Summary         string  `json:"summary"`
}

// BuildSummary menyusun satu baris teks yang dipakai sebagai deskripsi event kalender.
func (n BookingNotice) BuildSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Infaq %s by %s", n.Kind, n.DonorName)
	if n.Quantity > 0 {
		fmt.Fprintf(&b, ": %d unit(s)", n.Quantity)
	}
	if n.Amount > 0 {
		fmt.Fprintf(&b, ": delivery fee %.2f", n.Amount)
	}
	fmt.Fprintf(&b, " for %s on %s", n.MosqueName, n.DisplayDate)
	fmt.Fprintf(&b, " (total %d unit(s), %s)", n.TotalUnits, n.Status)
	return b.String()
}
