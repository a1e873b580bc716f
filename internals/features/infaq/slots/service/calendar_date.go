package service

import (
	"regexp"
	"strconv"
	"time"
)

var deliveryDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

const displayDateLayout = "Monday, January 2, 2006"

// ParseDeliveryDate mengambil komponen tahun/bulan/hari apa adanya lalu
// menjadikannya tengah malam UTC. Tidak pernah lewat timezone lokal server.
func ParseDeliveryDate(s string) (time.Time, error) {
	m := deliveryDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, invalid("delivery_date", "Invalid delivery date format. Expected YYYY-MM-DD.")
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])

	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	// time.Date menormalkan 2025-02-30 → 2025-03-02; tanggal seperti itu ditolak
	if t.Year() != y || int(t.Month()) != mo || t.Day() != d {
		return time.Time{}, invalid("delivery_date", "Invalid delivery date: "+s+" is not a calendar day.")
	}
	return t, nil
}

func DisplayDate(t time.Time) string {
	return t.UTC().Format(displayDateLayout)
}
