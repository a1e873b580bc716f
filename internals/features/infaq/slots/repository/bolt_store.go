package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"

	"infaqku_backend/internals/features/infaq/slots/model"
)

var (
	slotsBucket    = []byte("infaq_slots")
	slotKeysBucket = []byte("infaq_slot_keys")
)

// BoltStore menyimpan tiap slot sebagai satu dokumen JSON (log kontribusi ikut di dalamnya).
// Bolt hanya punya satu writer, jadi transaksi Update otomatis serializable.
type BoltStore struct {
	db *bolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	return NewBoltStore(db)
}

func NewBoltStore(db *bolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{slotsBucket, slotKeysBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Ping(ctx context.Context) error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(slotsBucket) == nil {
			return fmt.Errorf("bucket %s hilang", slotsBucket)
		}
		return nil
	})
}

func (s *BoltStore) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(btx *bolt.Tx) error {
		return fn(&boltTx{tx: btx})
	})
}

func (s *BoltStore) GetSlot(ctx context.Context, id uuid.UUID) (*model.InfaqSlot, error) {
	var out *model.InfaqSlot
	err := s.db.View(func(btx *bolt.Tx) error {
		slot, err := (&boltTx{tx: btx}).FindSlotByID(id)
		if err != nil {
			return err
		}
		out = slot
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrSlotNotFound
	}
	return out, nil
}

func (s *BoltStore) ListSlots(ctx context.Context, f ListFilter) ([]model.InfaqSlot, int64, error) {
	var rows []model.InfaqSlot
	err := s.ForEachSlot(ctx, func(slot model.InfaqSlot) error {
		if f.match(slot) {
			rows = append(rows, slot)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := rows[i].Date(), rows[j].Date()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return rows[i].InfaqSlotCreatedAt.Before(rows[j].InfaqSlotCreatedAt)
	})

	total := int64(len(rows))
	if f.Offset > 0 {
		if f.Offset >= len(rows) {
			return []model.InfaqSlot{}, total, nil
		}
		rows = rows[f.Offset:]
	}
	if f.Limit > 0 && len(rows) > f.Limit {
		rows = rows[:f.Limit]
	}
	if rows == nil {
		rows = []model.InfaqSlot{}
	}
	return rows, total, nil
}

func (s *BoltStore) ForEachSlot(ctx context.Context, fn func(slot model.InfaqSlot) error) error {
	return s.db.View(func(btx *bolt.Tx) error {
		return btx.Bucket(slotsBucket).ForEach(func(k, v []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var slot model.InfaqSlot
			if err := json.Unmarshal(v, &slot); err != nil {
				return fmt.Errorf("decode slot %s: %w", k, err)
			}
			return fn(slot)
		})
	})
}

type boltTx struct {
	tx *bolt.Tx
}

func naturalKey(mosqueName string, date time.Time) []byte {
	return []byte(mosqueName + "\x00" + date.UTC().Format("2006-01-02"))
}

func (t *boltTx) FindSlotByID(id uuid.UUID) (*model.InfaqSlot, error) {
	v := t.tx.Bucket(slotsBucket).Get([]byte(id.String()))
	if v == nil {
		return nil, nil
	}
	var slot model.InfaqSlot
	if err := json.Unmarshal(v, &slot); err != nil {
		return nil, fmt.Errorf("decode slot %s: %w", id, err)
	}
	return &slot, nil
}

func (t *boltTx) FindSlotByMosqueDate(mosqueName string, date time.Time) (*model.InfaqSlot, error) {
	v := t.tx.Bucket(slotKeysBucket).Get(naturalKey(mosqueName, date))
	if v == nil {
		return nil, nil
	}
	id, err := uuid.ParseBytes(v)
	if err != nil {
		return nil, fmt.Errorf("slot key index rusak: %w", err)
	}
	return t.FindSlotByID(id)
}

func (t *boltTx) CreateSlot(slot *model.InfaqSlot) error {
	keys := t.tx.Bucket(slotKeysBucket)
	natural := UsesNaturalKey(slot.InfaqSlotMosqueName)
	if natural && keys.Get(naturalKey(slot.InfaqSlotMosqueName, slot.Date())) != nil {
		return ErrDuplicateSlot
	}

	if slot.InfaqSlotID == uuid.Nil {
		slot.InfaqSlotID = uuid.New()
	}
	for i := range slot.InfaqSlotContributions {
		c := &slot.InfaqSlotContributions[i]
		if c.InfaqContributionID == uuid.Nil {
			c.InfaqContributionID = uuid.New()
		}
		c.InfaqContributionSlotID = slot.InfaqSlotID
		c.InfaqContributionSeq = i + 1
	}

	if err := t.put(slot); err != nil {
		return err
	}
	if natural {
		return keys.Put(naturalKey(slot.InfaqSlotMosqueName, slot.Date()), []byte(slot.InfaqSlotID.String()))
	}
	return nil
}

func (t *boltTx) AppendContribution(slot *model.InfaqSlot) error {
	stored, err := t.FindSlotByID(slot.InfaqSlotID)
	if err != nil {
		return err
	}
	if stored == nil {
		return ErrSlotNotFound
	}
	n := len(slot.InfaqSlotContributions)
	if n != len(stored.InfaqSlotContributions)+1 {
		return fmt.Errorf("log kontribusi slot %s tidak sinkron (%d vs %d)", slot.InfaqSlotID, n, len(stored.InfaqSlotContributions))
	}

	last := &slot.InfaqSlotContributions[n-1]
	if last.InfaqContributionID == uuid.Nil {
		last.InfaqContributionID = uuid.New()
	}
	last.InfaqContributionSlotID = slot.InfaqSlotID
	last.InfaqContributionSeq = n

	return t.put(slot)
}

func (t *boltTx) put(slot *model.InfaqSlot) error {
	data, err := json.Marshal(slot)
	if err != nil {
		return err
	}
	return t.tx.Bucket(slotsBucket).Put([]byte(slot.InfaqSlotID.String()), data)
}
