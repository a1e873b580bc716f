package service

import (
	"context"
	"fmt"
	"math"
	"unicode/utf8"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"infaqku_backend/internals/features/infaq/slots/model"
)

// MidtransLinker: satu client per proses, dibuat di entry point (bukan global package).
type MidtransLinker struct {
	client snap.Client
}

// Midtrans menolak transaction_details.order_id > 50 char.
const maxOrderIDLen = 50

func NewMidtransLinker(serverKey string, useProduction bool) *MidtransLinker {
	l := &MidtransLinker{}
	if useProduction {
		l.client.New(serverKey, midtrans.Production)
	} else {
		l.client.New(serverKey, midtrans.Sandbox)
	}
	return l
}

func (l *MidtransLinker) LinkSponsorship(ctx context.Context, slot model.InfaqSlot, c model.InfaqContribution) (string, string, error) {
	if c.InfaqContributionAmount == nil || *c.InfaqContributionAmount <= 0 {
		return "", "", fmt.Errorf("sponsorship amount kosong")
	}
	gross := int64(math.Round(*c.InfaqContributionAmount))
	if gross <= 0 {
		return "", "", fmt.Errorf("sponsorship amount %.2f terlalu kecil", *c.InfaqContributionAmount)
	}

	if c.InfaqContributionOrderID == nil || *c.InfaqContributionOrderID == "" {
		return "", "", fmt.Errorf("order_id kontribusi kosong")
	}
	orderID := *c.InfaqContributionOrderID
	if len(orderID) > maxOrderIDLen {
		return "", "", fmt.Errorf("order_id %q lebih dari %d char", orderID, maxOrderIDLen)
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: truncate(c.InfaqContributionDonorName, 50),
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       "delivery-fee",
				Price:    gross,
				Qty:      1,
				Name:     truncate("Delivery fee - "+slot.InfaqSlotMosqueName, 50),
				Category: "INFAQ",
			},
		},
		CustomField1: slot.InfaqSlotDisplayDate,
	}

	resp, merr := l.client.CreateTransaction(req)
	if merr != nil {
		return "", "", merr
	}
	return resp.Token, resp.RedirectURL, nil
}

// truncate memotong di batas rune, n dalam byte.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
