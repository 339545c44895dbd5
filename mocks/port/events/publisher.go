package events

import (
	"context"

	"github.com/stretchr/testify/mock"

	evport "github.com/oseikuffour/contribution-processor/internal/domain/port/events"
)

// MockPublisher is a mock implementation of events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishSettled(ctx context.Context, event evport.SettledEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() {
	m.Called()
}
