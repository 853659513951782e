package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *NotificationRepository) GetNotificationByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	args := m.Called(ctx, id)
	if n := args.Get(0); n != nil {
		return n.(*models.Notification), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *NotificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error {
	return m.Called(ctx, id, status, errorMsg).Error(0)
}

func (m *NotificationRepository) ListNotifications(ctx context.Context, page, size int) ([]*models.Notification, int, error) {
	args := m.Called(ctx, page, size)
	if n := args.Get(0); n != nil {
		return n.([]*models.Notification), args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckRateLimit(ctx context.Context, key string) (bool, int, int, error) {
	args := m.Called(ctx, key)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}
