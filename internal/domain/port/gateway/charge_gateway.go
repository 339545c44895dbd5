package gateway

import "context"

// ChargeStatus is the normalized outcome of a charge attempt
type ChargeStatus string

// A charge can settle synchronously (success/failed) or stay pending until
// the provider delivers a webhook.
const (
	ChargeSuccess ChargeStatus = "success"
	ChargeFailed  ChargeStatus = "failed"
	ChargePending ChargeStatus = "pending"
)

// IsTerminal reports whether the gateway answered with a definitive outcome
func (s ChargeStatus) IsTerminal() bool {
	return s == ChargeSuccess || s == ChargeFailed
}

// ChargeRequest is the normalized mobile-money charge the adapter translates
// into the provider's wire format. Amounts are minor units (pesewas).
type ChargeRequest struct {
	Reference   string
	AmountMinor int64
	Currency    string
	Phone       string // international format
	Channel     string // provider channel code (mtn/vod/atl)
	Email       string
}

// ChargeResult is the adapter's parsed view of the provider response.
// Amounts are minor units as reported by the provider.
type ChargeResult struct {
	Status          ChargeStatus
	ProviderID      int64
	Reference       string // provider-assigned reference, may differ from ours
	AmountMinor     int64
	FeesMinor       int64
	Channel         string
	GatewayResponse string
}

// ChargeGateway is the port to the external mobile-money processor
type ChargeGateway interface {
	// Charge submits a mobile-money charge. Transport failures, timeouts and
	// provider 5xx responses surface as ErrGatewayUnavailable; the caller's
	// ledger record stays recoverable for webhook reconciliation.
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}
