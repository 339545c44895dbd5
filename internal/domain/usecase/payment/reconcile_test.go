package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	portuse "github.com/oseikuffour/contribution-processor/internal/domain/port/usecase"
	mcore "github.com/oseikuffour/contribution-processor/mocks/port/core"
	mevents "github.com/oseikuffour/contribution-processor/mocks/port/events"
	mgw "github.com/oseikuffour/contribution-processor/mocks/port/gateway"
	mpers "github.com/oseikuffour/contribution-processor/mocks/port/persistence"
)

type serviceMocks struct {
	txRepo    *mpers.MockTransactionRepository
	userRepo  *mpers.MockUserRepository
	notifRepo *mpers.MockNotificationRepository
	gateway   *mgw.MockChargeGateway
	publisher *mevents.MockPublisher
	clock     *mcore.MockTimeProvider
	logger    *mcore.MockLogger
}

func newServiceWithMocks() (*Service, *serviceMocks) {
	m := &serviceMocks{
		txRepo:    new(mpers.MockTransactionRepository),
		userRepo:  new(mpers.MockUserRepository),
		notifRepo: new(mpers.MockNotificationRepository),
		gateway:   new(mgw.MockChargeGateway),
		publisher: new(mevents.MockPublisher),
		clock:     new(mcore.MockTimeProvider),
		logger:    new(mcore.MockLogger),
	}

	m.logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	m.logger.On("Info", mock.Anything, mock.Anything).Maybe()
	m.logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	m.logger.On("Error", mock.Anything, mock.Anything).Maybe()

	svc := NewService(
		m.txRepo, m.userRepo, m.notifRepo, m.gateway, m.publisher,
		m.clock, m.logger, 5*time.Second, "GHS",
	)
	return svc, m
}

func pendingDeposit(id uint64, amount string) *entity.Transaction {
	return &entity.Transaction{
		ID:                   id,
		UserID:               42,
		Amount:               decimal.RequireFromString(amount),
		Type:                 entity.TypeDeposit,
		Status:               entity.StatusPending,
		PaymentMethod:        entity.MethodMobileMoney,
		ReferenceID:          "CTB-20240301093000-abcd1234",
		TransactionReference: "CTB-20240301093000-abcd1234",
		PaymentDetails: entity.PaymentDetails{
			Phone:   "+233241234567",
			Network: "mtn",
			Channel: "mtn",
		},
	}
}

func successWebhook(reference string, amountMinor int64) portuse.WebhookEvent {
	return portuse.WebhookEvent{
		Event: EventChargeSuccess,
		Data: portuse.WebhookData{
			ID:              1122334455,
			Reference:       reference,
			Status:          "success",
			Amount:          amountMinor,
			Fees:            50,
			GatewayResponse: "Approved",
			PaidAt:          "2024-03-01T09:31:00Z",
			Channel:         "mobile_money",
			Currency:        "GHS",
			Authorization: portuse.WebhookAuthorization{
				AuthorizationCode: "AUTH_xyz",
				Channel:           "mobile_money",
			},
		},
	}
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 32, 0, 0, time.UTC)

	t.Run("Charge success settles a pending deposit", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		txn := pendingDeposit(7, "50.00")
		event := successWebhook(txn.TransactionReference, 5000)

		m.clock.On("Now").Return(now)
		m.txRepo.On("GetByReference", ctx, txn.TransactionReference).Return(txn, nil)
		m.txRepo.On("SettleIfPending", ctx, txn.ID, entity.StatusCompleted,
			mock.MatchedBy(func(d entity.PaymentDetails) bool {
				// settled amount converted from pesewas back to cedis
				return d.AmountCharged.Equal(decimal.RequireFromString("50.00")) &&
					d.Fees.Equal(decimal.RequireFromString("0.50")) &&
					d.ProviderID == 1122334455 &&
					d.PaidAt != nil
			}), now).Return(true, nil)
		m.notifRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
			return n.Type == entity.NotificationDepositCompleted && n.UserID == 42
		})).Return(nil)
		m.publisher.On("PublishSettled", ctx, mock.Anything).Return(nil)

		err := svc.Reconcile(ctx, event)
		assert.NoError(t, err)
		m.txRepo.AssertExpectations(t)
		m.notifRepo.AssertExpectations(t)
		m.publisher.AssertExpectations(t)
	})

	t.Run("Charge failed merges failure reason", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		txn := pendingDeposit(8, "50.00")
		event := portuse.WebhookEvent{
			Event: EventChargeFailed,
			Data: portuse.WebhookData{
				Reference:       txn.TransactionReference,
				Status:          "failed",
				GatewayResponse: "insufficient funds",
			},
		}

		m.clock.On("Now").Return(now)
		m.txRepo.On("GetByReference", ctx, txn.TransactionReference).Return(txn, nil)
		m.txRepo.On("SettleIfPending", ctx, txn.ID, entity.StatusFailed,
			mock.MatchedBy(func(d entity.PaymentDetails) bool {
				return d.FailureReason == "insufficient funds" && d.FailedAt != nil
			}), now).Return(true, nil)
		m.notifRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
			return n.Type == entity.NotificationDepositFailed
		})).Return(nil)
		m.publisher.On("PublishSettled", ctx, mock.Anything).Return(nil)

		err := svc.Reconcile(ctx, event)
		assert.NoError(t, err)
		m.txRepo.AssertExpectations(t)
	})

	t.Run("Webhook for settled transaction is a no-op", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		txn := pendingDeposit(9, "50.00")
		txn.Status = entity.StatusCompleted
		event := portuse.WebhookEvent{
			Event: EventChargeFailed,
			Data:  portuse.WebhookData{Reference: txn.TransactionReference},
		}

		m.clock.On("Now").Return(now)
		m.txRepo.On("GetByReference", ctx, txn.TransactionReference).Return(txn, nil)
		m.txRepo.On("SettleIfPending", ctx, txn.ID, entity.StatusFailed, mock.Anything, now).
			Return(false, nil)

		err := svc.Reconcile(ctx, event)
		assert.ErrorIs(t, err, errs.ErrDuplicateWebhook)

		// no state change, no notification, no event
		m.notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.publisher.AssertNotCalled(t, "PublishSettled", mock.Anything, mock.Anything)
	})

	t.Run("Replaying the same webhook keeps one notification", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		txn := pendingDeposit(10, "50.00")
		event := successWebhook(txn.TransactionReference, 5000)

		m.clock.On("Now").Return(now)
		m.txRepo.On("GetByReference", ctx, txn.TransactionReference).Return(txn, nil)
		// first delivery wins the guard, all replays lose it
		m.txRepo.On("SettleIfPending", ctx, txn.ID, entity.StatusCompleted, mock.Anything, now).
			Return(true, nil).Once()
		m.txRepo.On("SettleIfPending", ctx, txn.ID, entity.StatusCompleted, mock.Anything, now).
			Return(false, nil)
		m.notifRepo.On("Create", ctx, mock.Anything).Return(nil)
		m.publisher.On("PublishSettled", ctx, mock.Anything).Return(nil)

		assert.NoError(t, svc.Reconcile(ctx, event))
		for i := 0; i < 3; i++ {
			assert.ErrorIs(t, svc.Reconcile(ctx, event), errs.ErrDuplicateWebhook)
		}

		m.notifRepo.AssertNumberOfCalls(t, "Create", 1)
		m.publisher.AssertNumberOfCalls(t, "PublishSettled", 1)
	})

	t.Run("Unknown reference is surfaced for manual reconciliation", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		event := successWebhook("ghost-ref", 5000)

		m.txRepo.On("GetByReference", ctx, "ghost-ref").
			Return(nil, errs.ErrTransactionNotFound)

		err := svc.Reconcile(ctx, event)
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("Unrelated events are acknowledged without action", func(t *testing.T) {
		svc, m := newServiceWithMocks()

		err := svc.Reconcile(ctx, portuse.WebhookEvent{Event: "transfer.success"})
		assert.NoError(t, err)
		m.txRepo.AssertNotCalled(t, "GetByReference", mock.Anything, mock.Anything)
	})

	t.Run("Notification failure never fails the reconciliation", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		txn := pendingDeposit(11, "50.00")
		event := successWebhook(txn.TransactionReference, 5000)

		m.clock.On("Now").Return(now)
		m.txRepo.On("GetByReference", ctx, txn.TransactionReference).Return(txn, nil)
		m.txRepo.On("SettleIfPending", ctx, txn.ID, entity.StatusCompleted, mock.Anything, now).
			Return(true, nil)
		m.notifRepo.On("Create", ctx, mock.Anything).Return(errors.New("notifications table is on fire"))
		m.publisher.On("PublishSettled", ctx, mock.Anything).Return(nil)

		err := svc.Reconcile(ctx, event)
		assert.NoError(t, err)
	})
}
