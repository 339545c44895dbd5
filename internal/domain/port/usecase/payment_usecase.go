package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
)

// InitiateRequest is an incoming contribution request
type InitiateRequest struct {
	Amount  decimal.Decimal
	Phone   string
	Network string
	UserID  uint64
	Email   string // optional, used as the explicit resolver fallback
}

// InitiateResult is returned to the initiating caller
type InitiateResult struct {
	Reference     string
	Status        entity.TransactionStatus
	TransactionID uint64
}

// WebhookAuthorization carries the provider's authorization metadata
type WebhookAuthorization struct {
	AuthorizationCode string `json:"authorization_code"`
	Channel           string `json:"channel"`
	MobileMoneyNumber string `json:"mobile_money_number"`
}

// WebhookData is the charge payload of a provider webhook. Amounts are minor
// units (pesewas) as delivered by the provider.
type WebhookData struct {
	ID              int64                `json:"id"`
	Reference       string               `json:"reference"`
	Status          string               `json:"status"`
	Amount          int64                `json:"amount"`
	Fees            int64                `json:"fees"`
	GatewayResponse string               `json:"gateway_response"`
	PaidAt          string               `json:"paid_at"`
	Channel         string               `json:"channel"`
	Currency        string               `json:"currency"`
	Authorization   WebhookAuthorization `json:"authorization"`
}

// WebhookEvent is a provider webhook after signature verification
type WebhookEvent struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

// PaymentUseCase defines the contribution lifecycle operations
type PaymentUseCase interface {
	// InitiateDeposit validates the request, resolves the member, persists a
	// pending ledger record, charges the gateway and applies any synchronous
	// terminal result through the guarded transition.
	InitiateDeposit(ctx context.Context, req InitiateRequest) (*InitiateResult, error)

	// Reconcile applies a verified webhook event to the ledger. Duplicate and
	// out-of-order deliveries return ErrDuplicateWebhook, which callers
	// acknowledge as a no-op.
	Reconcile(ctx context.Context, event WebhookEvent) error

	// GetByReference exposes a settled transaction to read-only collaborators
	GetByReference(ctx context.Context, reference string) (*entity.Transaction, error)
}
