package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/events"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
)

const defaultRetryDelay = time.Second

// OrderConfirmationWorker turns order-created events into confirmation
// emails. Delivery is at most once: a failed send is logged and the event is
// not retried.
type OrderConfirmationWorker struct {
	sub        events.Subscriber
	notifier   service.NotificationService
	retryDelay time.Duration
}

func NewOrderConfirmationWorker(sub events.Subscriber, notifier service.NotificationService) *OrderConfirmationWorker {
	return &OrderConfirmationWorker{sub: sub, notifier: notifier, retryDelay: defaultRetryDelay}
}

// WithRetryDelay sets the pause after a failed read.
func (w *OrderConfirmationWorker) WithRetryDelay(d time.Duration) *OrderConfirmationWorker {
	w.retryDelay = d

	return w
}

// Run consumes events until ctx ends or the subscriber is closed.
func (w *OrderConfirmationWorker) Run(ctx context.Context) error {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("worker", "order_confirmation"))
	logger.Info("Starting order confirmation worker")

	for {
		event, err := w.sub.NextOrderCreated(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, events.ErrClosed) || errors.Is(err, io.EOF) {
				logger.Info("Stopping order confirmation worker")
				return nil
			}

			if errors.Is(err, events.ErrMalformedEvent) {
				logger.Warn("Skipping malformed event", slog.String("error", err.Error()))
				continue
			}

			logger.Error("Failed to read event", slog.String("error", err.Error()))

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.retryDelay):
			}

			continue
		}

		eventLogger := logger.With(
			slog.String("eventId", event.EventID.String()),
			slog.Int64("orderId", event.OrderID),
		)

		if err := w.notifier.SendOrderConfirmation(context.WithValue(ctx, middleware.LoggerKey, eventLogger), event); err != nil {
			eventLogger.Error("Order confirmation failed", slog.String("error", err.Error()))
		}
	}
}
