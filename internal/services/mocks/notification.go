package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/events"
	"github.com/stretchr/testify/mock"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) SendOrderConfirmation(ctx context.Context, event events.OrderCreated) error {
	return m.Called(ctx, event).Error(0)
}
