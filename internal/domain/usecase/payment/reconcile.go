package payment

import (
	"context"
	"time"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	portuse "github.com/oseikuffour/contribution-processor/internal/domain/port/usecase"
)

// Webhook events this engine processes. Anything else is acknowledged
// without action to stop provider retry storms.
const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
)

// Reconcile matches a verified webhook to its ledger record and applies the
// outcome exactly once. Delivery may happen zero, one or many times, in any
// order relative to the initiator's own immediate-response handling;
// correctness rests entirely on the repository's atomic conditional update.
func (s *Service) Reconcile(ctx context.Context, event portuse.WebhookEvent) error {
	if event.Event != EventChargeSuccess && event.Event != EventChargeFailed {
		s.logger.Debug("Ignoring webhook event", map[string]any{"event": event.Event})
		return nil
	}

	txn, err := s.transactionRepo.GetByReference(ctx, event.Data.Reference)
	if err != nil {
		if errs.IsTransactionNotFoundError(err) {
			// Anomaly: the provider knows a charge we do not. Needs manual
			// reconciliation, not auto-recovery.
			s.logger.Error("Webhook references unknown transaction", map[string]any{
				"event":     event.Event,
				"reference": event.Data.Reference,
			})
		}
		return err
	}

	now := s.timeProvider.Now()
	status, details := settlementFromWebhook(event, now)

	transitioned, err := s.transactionRepo.SettleIfPending(ctx, txn.ID, status, details, now)
	if err != nil {
		return err
	}
	if !transitioned {
		// Already terminal: duplicate delivery, provider retry, or the
		// initiator's immediate-response path won. No merge, no notification.
		s.logger.Info("Webhook for settled transaction ignored", map[string]any{
			"transaction_id": txn.ID,
			"reference":      event.Data.Reference,
			"event":          event.Event,
			"status":         string(txn.Status),
		})
		return errs.ErrDuplicateWebhook
	}

	txn.Status = status
	txn.PaymentDetails = txn.PaymentDetails.Merge(details)
	txn.UpdatedAt = now

	s.logger.Info("Transaction reconciled from webhook", map[string]any{
		"transaction_id": txn.ID,
		"reference":      event.Data.Reference,
		"status":         string(status),
		"amount":         entity.FormatAmount(txn.Amount),
	})

	s.dispatchNotification(ctx, txn)
	s.publishSettled(ctx, txn, now)
	return nil
}

// settlementFromWebhook converts a webhook payload into the terminal status
// and the metadata to merge, dividing minor-unit amounts by 100
func settlementFromWebhook(event portuse.WebhookEvent, now time.Time) (entity.TransactionStatus, entity.PaymentDetails) {
	data := event.Data
	details := entity.PaymentDetails{
		ProviderID:        data.ID,
		ProviderReference: data.Reference,
		Channel:           data.Channel,
		Currency:          data.Currency,
		AuthorizationCode: data.Authorization.AuthorizationCode,
		GatewayResponse:   data.GatewayResponse,
	}

	if event.Event == EventChargeSuccess {
		details.AmountCharged = entity.FromMinorUnits(data.Amount)
		details.Fees = entity.FromMinorUnits(data.Fees)
		paidAt := now
		if parsed, err := time.Parse(time.RFC3339, data.PaidAt); err == nil {
			paidAt = parsed
		}
		details.PaidAt = &paidAt
		return entity.StatusCompleted, details
	}

	details.FailureReason = failureReason(data.GatewayResponse)
	details.FailedAt = &now
	return entity.StatusFailed, details
}
