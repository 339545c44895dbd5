package payment

import (
	"context"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	"github.com/oseikuffour/contribution-processor/internal/domain/port/gateway"
	portuse "github.com/oseikuffour/contribution-processor/internal/domain/port/usecase"
)

// InitiateDeposit runs the contribution initiation flow:
//  1. validate the request (no record created on failure)
//  2. resolve the member (id first, email fallback)
//  3. persist a pending ledger record before touching the gateway
//  4. charge the gateway in minor units
//  5. apply a synchronous terminal outcome through the guarded transition
func (s *Service) InitiateDeposit(ctx context.Context, req portuse.InitiateRequest) (*portuse.InitiateResult, error) {
	norm, err := s.validator.ValidateDeposit(req)
	if err != nil {
		return nil, err
	}

	user, err := s.resolver.Resolve(ctx, req.UserID, req.Email)
	if err != nil {
		return nil, err
	}

	details := entity.PaymentDetails{
		Phone:    norm.Phone,
		Network:  string(norm.Network),
		Channel:  norm.Channel,
		Currency: s.currency,
	}

	txn, err := entity.NewDeposit(user.ID, req.Amount, s.newReferenceID(), details, s.timeProvider)
	if err != nil {
		return nil, err
	}

	// The pending row goes in before the charge so a crash mid-call still
	// leaves an anchor for webhook reconciliation.
	if err := s.transactionRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	s.logger.Info("Deposit initiated", map[string]any{
		"transaction_id": txn.ID,
		"user_id":        user.ID,
		"reference":      txn.ReferenceID,
		"amount":         entity.FormatAmount(txn.Amount),
		"network":        string(norm.Network),
	})

	chargeCtx, cancel := s.timeProvider.WithTimeout(ctx, s.chargeTimeout)
	defer cancel()

	result, err := s.chargeGateway.Charge(chargeCtx, gateway.ChargeRequest{
		Reference:   txn.ReferenceID,
		AmountMinor: entity.ToMinorUnits(txn.Amount),
		Currency:    s.currency,
		Phone:       norm.Phone,
		Channel:     norm.Channel,
		Email:       s.chargeEmail(user, req.Email, norm.Phone),
	})
	if err != nil {
		if errs.IsInvalidRequestError(err) {
			// A definitive rejection, not an outage: the charge will never
			// settle, so the record is closed out as failed.
			s.markRejected(ctx, txn, err)
			return nil, err
		}
		// The record stays pending; a later webhook or manual reconciliation
		// can still complete it.
		s.logger.Warn("Gateway charge failed, deposit left pending", map[string]any{
			"transaction_id": txn.ID,
			"reference":      txn.ReferenceID,
			"error":          err.Error(),
		})
		return nil, err
	}

	s.adoptProviderReference(ctx, txn, result)

	status := txn.Status
	if result.Status.IsTerminal() {
		status = s.applyImmediateResult(ctx, txn, result)
	}

	return &portuse.InitiateResult{
		Reference:     txn.TransactionReference,
		Status:        status,
		TransactionID: txn.ID,
	}, nil
}

// adoptProviderReference records the provider's own reference once, after
// which it is authoritative for webhook matching
func (s *Service) adoptProviderReference(ctx context.Context, txn *entity.Transaction, result *gateway.ChargeResult) {
	if result.Reference == "" || result.Reference == txn.TransactionReference {
		return
	}
	if err := s.transactionRepo.AdoptProviderReference(ctx, txn.ID, result.Reference); err != nil {
		s.logger.Warn("Failed to record provider reference", map[string]any{
			"transaction_id":     txn.ID,
			"provider_reference": result.Reference,
			"error":              err.Error(),
		})
		return
	}
	txn.TransactionReference = result.Reference
}

// applyImmediateResult settles a synchronous terminal outcome through the
// same guard the reconciliation engine uses, so a webhook racing this path
// cannot double-apply.
func (s *Service) applyImmediateResult(ctx context.Context, txn *entity.Transaction, result *gateway.ChargeResult) entity.TransactionStatus {
	now := s.timeProvider.Now()

	var status entity.TransactionStatus
	details := entity.PaymentDetails{
		ProviderID:        result.ProviderID,
		ProviderReference: result.Reference,
		Channel:           result.Channel,
		GatewayResponse:   result.GatewayResponse,
	}
	if result.Status == gateway.ChargeSuccess {
		status = entity.StatusCompleted
		details.AmountCharged = entity.FromMinorUnits(result.AmountMinor)
		details.Fees = entity.FromMinorUnits(result.FeesMinor)
		details.PaidAt = &now
	} else {
		status = entity.StatusFailed
		details.FailureReason = failureReason(result.GatewayResponse)
		details.FailedAt = &now
	}

	transitioned, err := s.transactionRepo.SettleIfPending(ctx, txn.ID, status, details, now)
	if err != nil {
		s.logger.Error("Failed to apply immediate gateway result", map[string]any{
			"transaction_id": txn.ID,
			"status":         string(status),
			"error":          err.Error(),
		})
		return txn.Status
	}
	if !transitioned {
		// A webhook won the race; report whatever the ledger now holds.
		if current, err := s.transactionRepo.GetByID(ctx, txn.ID); err == nil {
			return current.Status
		}
		return txn.Status
	}

	txn.Status = status
	txn.PaymentDetails = txn.PaymentDetails.Merge(details)
	txn.UpdatedAt = now

	s.dispatchNotification(ctx, txn)
	s.publishSettled(ctx, txn, now)
	return status
}

// markRejected closes out a charge the provider refused outright. Settling
// through the guard keeps this safe against a webhook arriving anyway.
func (s *Service) markRejected(ctx context.Context, txn *entity.Transaction, cause error) {
	now := s.timeProvider.Now()
	details := entity.PaymentDetails{
		FailureReason: cause.Error(),
		FailedAt:      &now,
	}

	transitioned, err := s.transactionRepo.SettleIfPending(ctx, txn.ID, entity.StatusFailed, details, now)
	if err != nil {
		s.logger.Error("Failed to mark rejected deposit", map[string]any{
			"transaction_id": txn.ID,
			"error":          err.Error(),
		})
		return
	}
	if transitioned {
		txn.Status = entity.StatusFailed
		txn.PaymentDetails = txn.PaymentDetails.Merge(details)
		txn.UpdatedAt = now
		s.dispatchNotification(ctx, txn)
	}
}

// chargeEmail picks the email sent to the provider, which requires one even
// for mobile-money charges
func (s *Service) chargeEmail(user *entity.User, requestEmail, phone string) string {
	if user.Email != "" {
		return user.Email
	}
	if requestEmail != "" {
		return requestEmail
	}
	return phone[1:] + "@contributions.local"
}

func failureReason(gatewayResponse string) string {
	if gatewayResponse != "" {
		return gatewayResponse
	}
	return "charge declined"
}

var _ portuse.PaymentUseCase = (*Service)(nil)
