package payment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	"github.com/oseikuffour/contribution-processor/internal/domain/port/gateway"
	portuse "github.com/oseikuffour/contribution-processor/internal/domain/port/usecase"
)

func validRequest() portuse.InitiateRequest {
	return portuse.InitiateRequest{
		Amount:  decimal.RequireFromString("50.00"),
		Phone:   "0241234567",
		Network: "mtn",
		UserID:  42,
	}
}

func member() *entity.User {
	return &entity.User{ID: 42, Name: "Akosua Mensah", Email: "akosua@example.com"}
}

func TestInitiateDeposit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("Gateway success settles immediately", func(t *testing.T) {
		svc, m := newServiceWithMocks()

		m.clock.On("Now").Return(now)
		m.clock.On("WithTimeout", mock.Anything, 5*time.Second).Return()
		m.userRepo.On("GetByID", ctx, uint64(42)).Return(member(), nil)

		m.txRepo.On("Create", ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.Status == entity.StatusPending &&
				txn.Type == entity.TypeDeposit &&
				txn.PaymentDetails.Phone == "+233241234567" &&
				txn.PaymentDetails.Channel == "mtn"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Transaction).ID = 7
		}).Return(nil)

		m.gateway.On("Charge", mock.Anything, mock.MatchedBy(func(req gateway.ChargeRequest) bool {
			// minor-unit conversion: 50.00 cedis -> 5000 pesewas
			return req.AmountMinor == 5000 &&
				req.Phone == "+233241234567" &&
				req.Channel == "mtn" &&
				req.Currency == "GHS" &&
				req.Email == "akosua@example.com"
		})).Return(&gateway.ChargeResult{
			Status:          gateway.ChargeSuccess,
			ProviderID:      1122334455,
			Reference:       "PSK_ref_001",
			AmountMinor:     5000,
			FeesMinor:       50,
			Channel:         "mobile_money",
			GatewayResponse: "Approved",
		}, nil)

		m.txRepo.On("AdoptProviderReference", ctx, uint64(7), "PSK_ref_001").Return(nil)
		m.txRepo.On("SettleIfPending", ctx, uint64(7), entity.StatusCompleted,
			mock.MatchedBy(func(d entity.PaymentDetails) bool {
				return d.AmountCharged.Equal(decimal.RequireFromString("50.00")) &&
					d.ProviderReference == "PSK_ref_001"
			}), now).Return(true, nil)
		m.notifRepo.On("Create", ctx, mock.Anything).Return(nil)
		m.publisher.On("PublishSettled", ctx, mock.Anything).Return(nil)

		result, err := svc.InitiateDeposit(ctx, validRequest())
		assert.NoError(t, err)
		assert.Equal(t, entity.StatusCompleted, result.Status)
		assert.Equal(t, uint64(7), result.TransactionID)
		// once the provider assigns its own reference it is authoritative
		assert.Equal(t, "PSK_ref_001", result.Reference)
		m.txRepo.AssertExpectations(t)
	})

	t.Run("Asynchronous charge stays pending", func(t *testing.T) {
		svc, m := newServiceWithMocks()

		m.clock.On("Now").Return(now)
		m.clock.On("WithTimeout", mock.Anything, mock.Anything).Return()
		m.userRepo.On("GetByID", ctx, uint64(42)).Return(member(), nil)
		m.txRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Transaction).ID = 8
		}).Return(nil)
		m.gateway.On("Charge", mock.Anything, mock.Anything).Return(&gateway.ChargeResult{
			Status:          gateway.ChargePending,
			GatewayResponse: "Charge attempted",
		}, nil)

		result, err := svc.InitiateDeposit(ctx, validRequest())
		assert.NoError(t, err)
		assert.Equal(t, entity.StatusPending, result.Status)

		m.txRepo.AssertNotCalled(t, "SettleIfPending", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Gateway unavailable leaves the pending record intact", func(t *testing.T) {
		svc, m := newServiceWithMocks()

		m.clock.On("Now").Return(now)
		m.clock.On("WithTimeout", mock.Anything, mock.Anything).Return()
		m.userRepo.On("GetByID", ctx, uint64(42)).Return(member(), nil)
		m.txRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Transaction).ID = 9
		}).Return(nil)
		m.gateway.On("Charge", mock.Anything, mock.Anything).
			Return(nil, errs.NewGatewayUnavailableError("CTB-x", 503, errs.ErrGatewayUnavailable))

		_, err := svc.InitiateDeposit(ctx, validRequest())
		assert.ErrorIs(t, err, errs.ErrGatewayUnavailable)

		// the ledger record was created before the charge and is never rolled back
		m.txRepo.AssertCalled(t, "Create", ctx, mock.Anything)
		m.txRepo.AssertNotCalled(t, "SettleIfPending", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Definitive gateway rejection closes the record as failed", func(t *testing.T) {
		svc, m := newServiceWithMocks()

		m.clock.On("Now").Return(now)
		m.clock.On("WithTimeout", mock.Anything, mock.Anything).Return()
		m.userRepo.On("GetByID", ctx, uint64(42)).Return(member(), nil)
		m.txRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Transaction).ID = 12
		}).Return(nil)
		m.gateway.On("Charge", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: Invalid phone number", errs.ErrInvalidRequest))
		m.txRepo.On("SettleIfPending", ctx, uint64(12), entity.StatusFailed,
			mock.MatchedBy(func(d entity.PaymentDetails) bool {
				return d.FailureReason != "" && d.FailedAt != nil
			}), now).Return(true, nil)
		m.notifRepo.On("Create", ctx, mock.Anything).Return(nil)

		_, err := svc.InitiateDeposit(ctx, validRequest())
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		m.txRepo.AssertExpectations(t)
	})

	t.Run("Validation failure creates no record", func(t *testing.T) {
		svc, m := newServiceWithMocks()

		req := validRequest()
		req.Network = "glo"

		_, err := svc.InitiateDeposit(ctx, req)
		assert.ErrorIs(t, err, errs.ErrInvalidNetwork)
		m.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Unresolvable member creates no record", func(t *testing.T) {
		svc, m := newServiceWithMocks()

		m.userRepo.On("GetByID", ctx, uint64(42)).Return(nil, errs.ErrUserNotFound)

		_, err := svc.InitiateDeposit(ctx, validRequest())
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		m.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Member resolves by email fallback", func(t *testing.T) {
		svc, m := newServiceWithMocks()

		req := validRequest()
		req.UserID = 99
		req.Email = "akosua@example.com"

		m.clock.On("Now").Return(now)
		m.clock.On("WithTimeout", mock.Anything, mock.Anything).Return()
		m.userRepo.On("GetByID", ctx, uint64(99)).Return(nil, errs.ErrUserNotFound)
		m.userRepo.On("GetByEmail", ctx, "akosua@example.com").Return(member(), nil)
		m.txRepo.On("Create", ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.UserID == 42
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Transaction).ID = 10
		}).Return(nil)
		m.gateway.On("Charge", mock.Anything, mock.Anything).Return(&gateway.ChargeResult{
			Status: gateway.ChargePending,
		}, nil)

		result, err := svc.InitiateDeposit(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, entity.StatusPending, result.Status)
	})

	t.Run("Webhook winning the race is reported, not re-applied", func(t *testing.T) {
		svc, m := newServiceWithMocks()

		m.clock.On("Now").Return(now)
		m.clock.On("WithTimeout", mock.Anything, mock.Anything).Return()
		m.userRepo.On("GetByID", ctx, uint64(42)).Return(member(), nil)
		m.txRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Transaction).ID = 11
		}).Return(nil)
		m.gateway.On("Charge", mock.Anything, mock.Anything).Return(&gateway.ChargeResult{
			Status: gateway.ChargeSuccess, AmountMinor: 5000,
		}, nil)
		// a webhook got there first
		m.txRepo.On("SettleIfPending", ctx, uint64(11), entity.StatusCompleted, mock.Anything, now).
			Return(false, nil)
		settled := pendingDeposit(11, "50.00")
		settled.Status = entity.StatusCompleted
		m.txRepo.On("GetByID", ctx, uint64(11)).Return(settled, nil)

		result, err := svc.InitiateDeposit(ctx, validRequest())
		assert.NoError(t, err)
		assert.Equal(t, entity.StatusCompleted, result.Status)
		// the loser of the guard never duplicates the notification
		m.notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
