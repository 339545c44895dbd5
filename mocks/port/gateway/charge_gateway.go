package gateway

import (
	"context"

	"github.com/stretchr/testify/mock"

	gwport "github.com/oseikuffour/contribution-processor/internal/domain/port/gateway"
)

// MockChargeGateway is a mock implementation of gateway.ChargeGateway
type MockChargeGateway struct {
	mock.Mock
}

func (m *MockChargeGateway) Charge(ctx context.Context, req gwport.ChargeRequest) (*gwport.ChargeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gwport.ChargeResult), args.Error(1)
}
