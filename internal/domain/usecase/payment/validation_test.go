package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	portuse "github.com/oseikuffour/contribution-processor/internal/domain/port/usecase"
)

func TestValidateDeposit(t *testing.T) {
	validator := NewDepositValidator()

	base := portuse.InitiateRequest{
		Amount:  decimal.RequireFromString("50.00"),
		Phone:   "0241234567",
		Network: "mtn",
		UserID:  42,
	}

	t.Run("Valid request is normalized", func(t *testing.T) {
		norm, err := validator.ValidateDeposit(base)
		assert.NoError(t, err)
		assert.Equal(t, "+233241234567", norm.Phone)
		assert.Equal(t, entity.NetworkMTN, norm.Network)
		assert.Equal(t, "mtn", norm.Channel)
	})

	t.Run("Telecel maps to the vodafone channel", func(t *testing.T) {
		req := base
		req.Network = "telecel"
		norm, err := validator.ValidateDeposit(req)
		assert.NoError(t, err)
		assert.Equal(t, "vod", norm.Channel)
	})

	tests := []struct {
		name    string
		mutate  func(*portuse.InitiateRequest)
		wantErr error
	}{
		{
			name:    "Zero amount",
			mutate:  func(r *portuse.InitiateRequest) { r.Amount = decimal.Zero },
			wantErr: errs.ErrInvalidAmount,
		},
		{
			name:    "Negative amount",
			mutate:  func(r *portuse.InitiateRequest) { r.Amount = decimal.RequireFromString("-5") },
			wantErr: errs.ErrInvalidAmount,
		},
		{
			name:    "Malformed phone",
			mutate:  func(r *portuse.InitiateRequest) { r.Phone = "12345" },
			wantErr: errs.ErrInvalidPhone,
		},
		{
			name:    "Unsupported network",
			mutate:  func(r *portuse.InitiateRequest) { r.Network = "safaricom" },
			wantErr: errs.ErrInvalidNetwork,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := validator.ValidateDeposit(req)
			assert.ErrorIs(t, err, tc.wantErr)

			var verr *errs.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}
