package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	"github.com/oseikuffour/contribution-processor/internal/domain/port/core"
	"github.com/oseikuffour/contribution-processor/internal/domain/port/gateway"
)

const defaultBaseURL = "https://api.paystack.co"

// Config holds the provider credentials and endpoint settings
type Config struct {
	SecretKey     string
	WebhookSecret string
	BaseURL       string
	Timeout       time.Duration
	Environment   string
}

// Client implements the charge gateway port against the Paystack API
type Client struct {
	config     Config
	httpClient *http.Client
	logger     core.Logger
}

// NewClient creates a new Paystack client
func NewClient(config Config, logger core.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

// Charge submits a mobile-money charge. Transport failures and provider 5xx
// responses surface as gateway-unavailable errors so the caller's pending
// ledger record stays recoverable for webhook reconciliation.
func (c *Client) Charge(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
	payload := chargeRequest{
		Amount:    req.AmountMinor,
		Email:     req.Email,
		Currency:  req.Currency,
		Reference: req.Reference,
		MobileMoney: mobileMoney{
			Phone:    req.Phone,
			Provider: req.Channel,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding charge request: %s", errs.ErrInternalServer, err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/charge", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building charge request: %s", errs.ErrInternalServer, err.Error())
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Submitting charge to provider", map[string]any{
		"reference":    req.Reference,
		"amount_minor": req.AmountMinor,
		"channel":      req.Channel,
	})

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("Charge request failed in transport", map[string]any{
			"reference": req.Reference,
			"error":     err.Error(),
		})
		return nil, errs.NewGatewayUnavailableError(req.Reference, 0, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.NewGatewayUnavailableError(req.Reference, resp.StatusCode, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.Warn("Provider answered with a server error", map[string]any{
			"reference":   req.Reference,
			"http_status": resp.StatusCode,
		})
		return nil, errs.NewGatewayUnavailableError(req.Reference, resp.StatusCode, errs.ErrGatewayUnavailable)
	}

	var parsed chargeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, errs.NewGatewayUnavailableError(req.Reference, resp.StatusCode,
			fmt.Errorf("decoding charge response: %w", err))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Warn("Provider rejected the charge", map[string]any{
			"reference":   req.Reference,
			"http_status": resp.StatusCode,
			"message":     parsed.Message,
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidRequest, parsed.Message)
	}

	result := &gateway.ChargeResult{
		Status:          normalizeStatus(parsed.Data.Status),
		ProviderID:      parsed.Data.ID,
		Reference:       parsed.Data.Reference,
		AmountMinor:     parsed.Data.Amount,
		FeesMinor:       parsed.Data.Fees,
		Channel:         parsed.Data.Channel,
		GatewayResponse: parsed.Data.GatewayResponse,
	}

	c.logger.Info("Charge submitted", map[string]any{
		"reference":          req.Reference,
		"provider_reference": result.Reference,
		"status":             result.Status,
	})

	return result, nil
}

// normalizeStatus folds the provider's status vocabulary into the three
// lifecycle outcomes the ledger understands
func normalizeStatus(status string) gateway.ChargeStatus {
	switch status {
	case "success":
		return gateway.ChargeSuccess
	case "failed":
		return gateway.ChargeFailed
	default:
		return gateway.ChargePending
	}
}

var _ gateway.ChargeGateway = (*Client)(nil)
