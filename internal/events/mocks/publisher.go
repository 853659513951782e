package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/events"
	"github.com/stretchr/testify/mock"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) PublishOrderCreated(ctx context.Context, event events.OrderCreated) error {
	return m.Called(ctx, event).Error(0)
}

func (m *Publisher) Close() error {
	return m.Called().Error(0)
}

type Subscriber struct {
	mock.Mock
}

func (m *Subscriber) NextOrderCreated(ctx context.Context) (events.OrderCreated, error) {
	args := m.Called(ctx)

	return args.Get(0).(events.OrderCreated), args.Error(1)
}

func (m *Subscriber) Close() error {
	return m.Called().Error(0)
}
