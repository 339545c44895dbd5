package persistence

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
)

// MockTransactionRepository is a mock implementation of persistence.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) AdoptProviderReference(ctx context.Context, id uint64, providerReference string) error {
	args := m.Called(ctx, id, providerReference)
	return args.Error(0)
}

func (m *MockTransactionRepository) SettleIfPending(
	ctx context.Context,
	id uint64,
	status entity.TransactionStatus,
	details entity.PaymentDetails,
	settledAt time.Time,
) (bool, error) {
	args := m.Called(ctx, id, status, details, settledAt)
	return args.Bool(0), args.Error(1)
}
