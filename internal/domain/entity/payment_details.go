package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentDetails is the provider metadata accumulated on a transaction over
// its lifetime: seeded at creation from the normalized request, extended by
// the gateway's synchronous response, and finally by the webhook payload.
type PaymentDetails struct {
	Phone             string          `json:"phone,omitempty"`
	Network           string          `json:"network,omitempty"`
	Channel           string          `json:"channel,omitempty"`
	Currency          string          `json:"currency,omitempty"`
	ProviderID        int64           `json:"provider_id,omitempty"`
	ProviderReference string          `json:"provider_reference,omitempty"`
	AmountCharged     decimal.Decimal `json:"amount_charged,omitempty"`
	Fees              decimal.Decimal `json:"fees,omitempty"`
	AuthorizationCode string          `json:"authorization_code,omitempty"`
	GatewayResponse   string          `json:"gateway_response,omitempty"`
	FailureReason     string          `json:"failure_reason,omitempty"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	FailedAt          *time.Time      `json:"failed_at,omitempty"`
}

// Merge combines incoming details into the receiver and returns the result.
// The operation is additive: a field is overwritten only when the incoming
// value is set (non-zero), so later events can never erase what an earlier
// event recorded.
func (d PaymentDetails) Merge(in PaymentDetails) PaymentDetails {
	out := d
	if in.Phone != "" {
		out.Phone = in.Phone
	}
	if in.Network != "" {
		out.Network = in.Network
	}
	if in.Channel != "" {
		out.Channel = in.Channel
	}
	if in.Currency != "" {
		out.Currency = in.Currency
	}
	if in.ProviderID != 0 {
		out.ProviderID = in.ProviderID
	}
	if in.ProviderReference != "" {
		out.ProviderReference = in.ProviderReference
	}
	if !in.AmountCharged.IsZero() {
		out.AmountCharged = in.AmountCharged
	}
	if !in.Fees.IsZero() {
		out.Fees = in.Fees
	}
	if in.AuthorizationCode != "" {
		out.AuthorizationCode = in.AuthorizationCode
	}
	if in.GatewayResponse != "" {
		out.GatewayResponse = in.GatewayResponse
	}
	if in.FailureReason != "" {
		out.FailureReason = in.FailureReason
	}
	if in.PaidAt != nil {
		out.PaidAt = in.PaidAt
	}
	if in.FailedAt != nil {
		out.FailedAt = in.FailedAt
	}
	return out
}

// MarshalJSON omits zero-valued decimal fields so a serialized details
// payload only carries the fields an event actually set. The storage layer
// relies on this when it merges payloads with a jsonb concatenation.
func (d PaymentDetails) MarshalJSON() ([]byte, error) {
	type alias PaymentDetails
	out := struct {
		alias
		AmountCharged *decimal.Decimal `json:"amount_charged,omitempty"`
		Fees          *decimal.Decimal `json:"fees,omitempty"`
	}{alias: alias(d)}
	if !d.AmountCharged.IsZero() {
		out.AmountCharged = &d.AmountCharged
	}
	if !d.Fees.IsZero() {
		out.Fees = &d.Fees
	}
	return json.Marshal(out)
}
