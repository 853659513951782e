package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/events"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/pkg/sendGrid"
	"github.com/google/uuid"
)

type NotificationService interface {
	// SendOrderConfirmation records the message, sends it and marks the
	// record sent or failed.
	SendOrderConfirmation(ctx context.Context, event events.OrderCreated) error
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendGrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, emailService sendGrid.EmailService) NotificationService {
	return &notificationService{repo: repo, emailService: emailService}
}

func (n *notificationService) SendOrderConfirmation(ctx context.Context, event events.OrderCreated) error {

	logger := middleware.LoggerFromContext(ctx).With(slog.Int64("orderId", event.OrderID))

	if event.CustomerEmail == "" {
		metrics.OrderConfirmationsTotal.WithLabelValues("skipped").Inc()
		logger.Warn("Order confirmation skipped, customer has no email")

		return nil
	}

	req := orderConfirmationEmail(event)

	metadata, err := json.Marshal(map[string]any{
		"event_id": event.EventID,
		"order_id": event.OrderID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeEmail,
		Recipient: req.To,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.StatusPending,
		Metadata:  metadata,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification record: %w", err)
	}

	if err := n.emailService.Send(ctx, req); err != nil {
		metrics.OrderConfirmationsTotal.WithLabelValues(string(models.StatusFailed)).Inc()

		if updateErr := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, err.Error()); updateErr != nil {
			logger.Error("Failed to mark notification failed", slog.String("error", updateErr.Error()))
		}

		return fmt.Errorf("failed to send email: %w", err)
	}

	metrics.OrderConfirmationsTotal.WithLabelValues(string(models.StatusSent)).Inc()

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		return fmt.Errorf("notification sent successfully but failed to update notification status: %w", err)
	}

	logger.Info("Order confirmation sent", slog.String("notificationId", notification.ID.String()))

	return nil
}

func orderConfirmationEmail(event events.OrderCreated) *models.EmailNotificationRequest {
	greeting := "Hello"
	if event.CustomerName != "" {
		greeting = "Hello " + event.CustomerName
	}

	return &models.EmailNotificationRequest{
		To:      event.CustomerEmail,
		ToName:  event.CustomerName,
		Subject: fmt.Sprintf("Order #%d confirmed", event.OrderID),
		Content: fmt.Sprintf("%s,\n\nThank you for your order. Your order number is %d.", greeting, event.OrderID),
	}
}
