package bookingsync

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Notifier interface {
	Notify(ctx context.Context, n BookingNotice) error
}

// LogNotifier dipakai kalau BOOKING_SYNC_URL kosong.
type LogNotifier struct {
	Log *zap.Logger
}

func (l LogNotifier) Notify(ctx context.Context, n BookingNotice) error {
	l.Log.Info("booking sync (log only)",
		zap.String("slot_id", n.SlotID),
		zap.String("summary", n.Summary),
	)
	return nil
}

// WebhookNotifier POST JSON ke endpoint sinkronisasi (Sheets/Calendar cloud function).
type WebhookNotifier struct {
	URL     string
	Timeout time.Duration
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{URL: url, Timeout: timeout}
}

func (w *WebhookNotifier) Notify(ctx context.Context, n BookingNotice) error {
	timeout := w.Timeout
	if dl, ok := ctx.Deadline(); ok {
		left := time.Until(dl)
		if left <= 0 {
			return context.DeadlineExceeded
		}
		if left < timeout {
			timeout = left
		}
	}

	agent := fiber.Post(w.URL)
	agent.Timeout(timeout)
	agent.Set("X-Infaq-Event", "contribution.recorded")
	agent.JSON(n)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("booking sync request: %w", errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return fmt.Errorf("booking sync status %d: %s", code, truncate(string(body), 200))
	}
	return nil
}

// truncate: n dalam byte, tidak memotong di tengah rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
