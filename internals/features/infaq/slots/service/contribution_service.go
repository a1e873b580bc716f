package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"infaqku_backend/internals/features/infaq/bookingsync"
	"infaqku_backend/internals/features/infaq/slots/dto"
	"infaqku_backend/internals/features/infaq/slots/model"
	"infaqku_backend/internals/features/infaq/slots/repository"
)

// NoticeDispatcher dipanggil setelah commit; tidak boleh memblokir.
type NoticeDispatcher interface {
	Dispatch(n bookingsync.BookingNotice) bool
}

// PaymentLinker membuat link pembayaran untuk sponsor ongkir (opsional).
type PaymentLinker interface {
	LinkSponsorship(ctx context.Context, slot model.InfaqSlot, c model.InfaqContribution) (token string, redirectURL string, err error)
}

type Options struct {
	// Berapa kali seluruh transaksi dicoba saat konflik (min 1)
	MaxAttempts  int
	RetryBackoff time.Duration
	Now          func() time.Time
}

type ContributionService struct {
	store    repository.Store
	notices  NoticeDispatcher
	payments PaymentLinker
	validate *validator.Validate
	log      *zap.Logger

	maxAttempts int
	backoff     time.Duration
	now         func() time.Time
}

// NewContributionService: notices & payments boleh nil.
func NewContributionService(store repository.Store, notices NoticeDispatcher, payments PaymentLinker, log *zap.Logger, opts Options) *ContributionService {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 3
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 25 * time.Millisecond
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ContributionService{
		store:       store,
		notices:     notices,
		payments:    payments,
		validate:    v,
		log:         log.Named("infaq"),
		maxAttempts: opts.MaxAttempts,
		backoff:     opts.RetryBackoff,
		now:         opts.Now,
	}
}

type contributionInput struct {
	kind          model.ContributionKind
	donorName     string
	quantity      int
	coverDelivery bool
	amount        float64
	mosqueName    string
	mosqueAddress *string
	date          time.Time
	targetSlotID  *uuid.UUID
}

// Contribute mencatat satu kontribusi ke slot yang tepat (merge atau buat baru).
// Hasil selalu terisi; error bertipe *ValidationError atau *TransactionError.
// Tidak idempoten: submit ulang akan menambah entri baru.
func (s *ContributionService) Contribute(ctx context.Context, req dto.ContributeRequest) (dto.ContributeResult, error) {
	req.Normalize()

	in, verr := s.parseInput(req)
	if verr != nil {
		return dto.ContributeResult{Success: false, Message: verr.Message}, verr
	}

	var (
		committed model.InfaqSlot
		entry     model.InfaqContribution
		created   bool
	)
	err := s.withRetry(ctx, func() error {
		return s.store.RunInTx(ctx, func(tx repository.Tx) error {
			slot, isNew, err := s.reconcile(tx, in)
			if err != nil {
				return err
			}
			committed = *slot
			entry = slot.InfaqSlotContributions[len(slot.InfaqSlotContributions)-1]
			created = isNew
			return nil
		})
	})
	var rejected *ValidationError
	if errors.As(err, &rejected) {
		s.log.Warn("kontribusi ditolak di dalam transaksi",
			zap.String("mosque", in.mosqueName),
			zap.Time("date", in.date),
			zap.Error(err),
		)
		return dto.ContributeResult{Success: false, Message: rejected.Message}, rejected
	}
	if err != nil {
		terr := &TransactionError{Err: err}
		s.log.Error("kontribusi gagal disimpan",
			zap.String("kind", string(in.kind)),
			zap.String("mosque", in.mosqueName),
			zap.Time("date", in.date),
			zap.Error(err),
		)
		return dto.ContributeResult{Success: false, Message: terr.Error()}, terr
	}

	s.log.Info("kontribusi tersimpan",
		zap.String("slot_id", committed.InfaqSlotID.String()),
		zap.Bool("slot_created", created),
		zap.String("kind", string(in.kind)),
		zap.Int("total_units", committed.InfaqSlotTotalUnits),
		zap.Bool("delivery_covered", committed.InfaqSlotIsDeliveryCovered),
	)

	s.notify(committed, entry)

	result := dto.ContributeResult{
		Success: true,
		Message: successMessage(committed, entry),
		SlotID:  committed.InfaqSlotID.String(),
	}
	if entry.InfaqContributionOrderID != nil {
		result.OrderID = *entry.InfaqContributionOrderID
	}
	if in.kind == model.ContributionKindDeliverySponsorship && s.payments != nil {
		token, url, err := s.payments.LinkSponsorship(ctx, committed, entry)
		if err != nil {
			s.log.Warn("payment link sponsor ongkir gagal",
				zap.String("slot_id", result.SlotID),
				zap.Error(err),
			)
		} else {
			result.PaymentToken = token
			result.PaymentURL = url
		}
	}
	return result, nil
}

func (s *ContributionService) parseInput(req dto.ContributeRequest) (contributionInput, *ValidationError) {
	var in contributionInput

	if err := s.validate.Struct(req); err != nil {
		return in, fromValidator(err)
	}

	date, err := ParseDeliveryDate(req.DeliveryDate)
	if err != nil {
		var verr *ValidationError
		errors.As(err, &verr)
		return in, verr
	}

	in.kind = req.Kind()
	in.date = date
	in.mosqueName = req.MosqueName
	if req.MosqueAddress != "" {
		addr := req.MosqueAddress
		in.mosqueAddress = &addr
	}

	if req.TargetSlotID != "" {
		id, err := uuid.Parse(req.TargetSlotID)
		if err != nil {
			return in, invalid("target_slot_id", "Invalid target slot id.")
		}
		in.targetSlotID = &id
	}

	switch in.kind {
	case model.ContributionKindUnitDonation:
		if req.Quantity <= 0 {
			return in, invalid("quantity", "Quantity must be a positive number.")
		}
		if req.Quantity > dto.MaxUnitsPerContribution {
			return in, invalid("quantity", "Quantity is too large.")
		}
		if in.mosqueName == "" {
			return in, invalid("mosque_name", "Please choose a mosque for your contribution.")
		}
		in.quantity = req.Quantity
		in.coverDelivery = req.CoverDeliveryFee
	case model.ContributionKindDeliverySponsorship:
		if req.Amount <= 0 {
			return in, invalid("amount", "Sponsorship amount must be greater than zero.")
		}
		in.amount = req.Amount
	}

	switch {
	case req.IsAnonymous && in.kind == model.ContributionKindDeliverySponsorship:
		in.donorName = model.AnonymousSponsorLabel
	case req.IsAnonymous:
		in.donorName = model.AnonymousDonorLabel
	case req.DonorName == "":
		return in, invalid("donor_name", "Please enter your name or choose to give anonymously.")
	default:
		in.donorName = req.DonorName
	}

	return in, nil
}

func fromValidator(err error) *ValidationError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return &ValidationError{Message: "Invalid input."}
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return &ValidationError{Message: "Validation failed.", Fields: fields}
}

// reconcile: seluruh baca-putus-tulis ada di dalam tx.
func (s *ContributionService) reconcile(tx repository.Tx, in contributionInput) (*model.InfaqSlot, bool, error) {
	now := s.now().UTC()

	slot, err := resolveSlot(tx, in)
	if err != nil {
		return nil, false, err
	}

	entry := newContribution(in, now)

	if slot != nil {
		if err := applyContribution(slot, entry, false, now); err != nil {
			return nil, false, err
		}
		if err := tx.AppendContribution(slot); err != nil {
			return nil, false, fmt.Errorf("append contribution: %w", err)
		}
		return slot, false, nil
	}

	mosque := in.mosqueName
	if mosque == "" {
		mosque = model.MosquePlaceholder
	}
	slot = &model.InfaqSlot{
		InfaqSlotMosqueName:    mosque,
		InfaqSlotMosqueAddress: in.mosqueAddress,
		InfaqSlotDisplayDate:   DisplayDate(in.date),
		InfaqSlotCreatedAt:     now,
	}
	slot.InfaqSlotDate = model.DateOf(in.date)
	if err := applyContribution(slot, entry, true, now); err != nil {
		return nil, false, err
	}

	if err := tx.CreateSlot(slot); err != nil {
		return nil, false, fmt.Errorf("create slot: %w", err)
	}
	return slot, true, nil
}

// resolveSlot: target id (kalau ada & ketemu) > (masjid, tanggal) > slot baru.
func resolveSlot(tx repository.Tx, in contributionInput) (*model.InfaqSlot, error) {
	if in.targetSlotID != nil {
		slot, err := tx.FindSlotByID(*in.targetSlotID)
		if err != nil {
			return nil, fmt.Errorf("find slot by id: %w", err)
		}
		if slot != nil {
			return slot, nil
		}
	}
	// Lookup (masjid, tanggal) juga untuk DELIVERY_SPONSORSHIP, bukan hanya UNIT_DONATION:
	// sponsor ongkir dengan nama masjid ikut masuk ke slot yang sudah ada, jadi
	// tetap maksimal satu slot per (masjid, tanggal).
	if repository.UsesNaturalKey(in.mosqueName) {
		slot, err := tx.FindSlotByMosqueDate(in.mosqueName, in.date)
		if err != nil {
			return nil, fmt.Errorf("find slot by mosque/date: %w", err)
		}
		return slot, nil
	}
	return nil, nil
}

func newContribution(in contributionInput, now time.Time) model.InfaqContribution {
	c := model.InfaqContribution{
		InfaqContributionKind:      in.kind,
		InfaqContributionDonorName: in.donorName,
		InfaqContributionTimestamp: now,
	}
	switch in.kind {
	case model.ContributionKindUnitDonation:
		q := in.quantity
		c.InfaqContributionQuantity = &q
		c.InfaqContributionSponsoredDelivery = in.coverDelivery
	case model.ContributionKindDeliverySponsorship:
		a := in.amount
		c.InfaqContributionAmount = &a
		// ID ditetapkan di sini supaya order_id ikut tersimpan dalam tx yang sama
		c.InfaqContributionID = uuid.New()
		orderID := model.OrderIDFor(c.InfaqContributionID)
		c.InfaqContributionOrderID = &orderID
	}
	return c
}

func (s *ContributionService) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err = fn()
		if err == nil || !repository.IsRetryable(err) {
			return err
		}
		if attempt == s.maxAttempts {
			break
		}
		s.log.Debug("konflik transaksi, ulangi",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * s.backoff):
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", s.maxAttempts, err)
}

func (s *ContributionService) notify(slot model.InfaqSlot, c model.InfaqContribution) {
	if s.notices == nil {
		return
	}
	n := bookingsync.BookingNotice{
		SlotID:          slot.InfaqSlotID.String(),
		MosqueName:      slot.InfaqSlotMosqueName,
		Date:            slot.Date().Format(dto.DateLayout),
		DisplayDate:     slot.InfaqSlotDisplayDate,
		Kind:            string(c.InfaqContributionKind),
		DonorName:       c.InfaqContributionDonorName,
		Quantity:        c.Units(),
		DeliveryCovered: slot.InfaqSlotIsDeliveryCovered,
		TotalUnits:      slot.InfaqSlotTotalUnits,
		Status:          string(slot.InfaqSlotStatus),
	}
	if slot.InfaqSlotMosqueAddress != nil {
		n.MosqueAddress = *slot.InfaqSlotMosqueAddress
	}
	if c.InfaqContributionAmount != nil {
		n.Amount = *c.InfaqContributionAmount
	}
	n.Summary = n.BuildSummary()
	s.notices.Dispatch(n)
}

func successMessage(slot model.InfaqSlot, c model.InfaqContribution) string {
	if c.InfaqContributionKind == model.ContributionKindDeliverySponsorship {
		return fmt.Sprintf("Thank you! Your delivery fee sponsorship for %s on %s has been recorded.",
			slot.InfaqSlotMosqueName, slot.InfaqSlotDisplayDate)
	}
	return fmt.Sprintf("Thank you! Your contribution of %d unit(s) for %s on %s has been recorded.",
		c.Units(), slot.InfaqSlotMosqueName, slot.InfaqSlotDisplayDate)
}
