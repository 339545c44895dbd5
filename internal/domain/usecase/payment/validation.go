package payment

import (
	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	portuse "github.com/oseikuffour/contribution-processor/internal/domain/port/usecase"
)

// DepositValidator validates initiation requests before any record is created
type DepositValidator struct{}

// NewDepositValidator creates a new DepositValidator
func NewDepositValidator() *DepositValidator {
	return &DepositValidator{}
}

// NormalizedDeposit is a validated request with the phone in international
// format and the network mapped to its provider channel code
type NormalizedDeposit struct {
	Phone   string
	Network entity.Network
	Channel string
}

// ValidateDeposit checks amount, phone and network. Any failure rejects the
// request before a ledger record exists.
func (v *DepositValidator) ValidateDeposit(req portuse.InitiateRequest) (*NormalizedDeposit, error) {
	if err := entity.ValidateAmount(req.Amount); err != nil {
		return nil, errs.NewValidationError("amount", req.Amount.String(), err)
	}

	phone, err := entity.NormalizePhone(req.Phone)
	if err != nil {
		return nil, errs.NewValidationError("phone", req.Phone, err)
	}

	network, err := entity.ParseNetwork(req.Network)
	if err != nil {
		return nil, errs.NewValidationError("network", req.Network, err)
	}

	return &NormalizedDeposit{
		Phone:   phone,
		Network: network,
		Channel: network.ChannelCode(),
	}, nil
}
