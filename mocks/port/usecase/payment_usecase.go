package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	portuse "github.com/oseikuffour/contribution-processor/internal/domain/port/usecase"
)

// MockPaymentUseCase is a mock implementation of the PaymentUseCase interface
type MockPaymentUseCase struct {
	mock.Mock
}

// InitiateDeposit mocks the InitiateDeposit method
func (m *MockPaymentUseCase) InitiateDeposit(ctx context.Context, req portuse.InitiateRequest) (*portuse.InitiateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portuse.InitiateResult), args.Error(1)
}

// Reconcile mocks the Reconcile method
func (m *MockPaymentUseCase) Reconcile(ctx context.Context, event portuse.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// GetByReference mocks the GetByReference method
func (m *MockPaymentUseCase) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}
