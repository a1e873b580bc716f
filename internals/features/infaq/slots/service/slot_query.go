package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"infaqku_backend/internals/features/infaq/slots/model"
	"infaqku_backend/internals/features/infaq/slots/repository"
)

var ErrInvalidSlotID = errors.New("invalid slot id")

type ListQuery struct {
	From   string
	To     string
	Mosque string
	Offset int
	Limit  int
}

// GetSlot mengembalikan repository.ErrSlotNotFound kalau tidak ada.
func (s *ContributionService) GetSlot(ctx context.Context, rawID string) (*model.InfaqSlot, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrInvalidSlotID
	}
	return s.store.GetSlot(ctx, id)
}

func (s *ContributionService) ListSlots(ctx context.Context, q ListQuery) ([]model.InfaqSlot, int64, error) {
	f := repository.ListFilter{
		Mosque: q.Mosque,
		Offset: q.Offset,
		Limit:  q.Limit,
	}
	var err error
	if f.From, err = optionalDate("from", q.From); err != nil {
		return nil, 0, err
	}
	if f.To, err = optionalDate("to", q.To); err != nil {
		return nil, 0, err
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, 0, invalid("to", "'to' must not be before 'from'.")
	}
	return s.store.ListSlots(ctx, f)
}

func optionalDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := ParseDeliveryDate(raw)
	if err != nil {
		return nil, invalid(field, "Invalid '"+field+"' date. Expected YYYY-MM-DD.")
	}
	return &t, nil
}
