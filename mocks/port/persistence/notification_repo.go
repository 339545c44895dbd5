package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
)

// MockNotificationRepository is a mock implementation of persistence.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}
