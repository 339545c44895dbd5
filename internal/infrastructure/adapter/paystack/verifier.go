package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"

	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	"github.com/oseikuffour/contribution-processor/internal/domain/port/core"
)

// SignatureHeader is the header the provider signs webhook deliveries with
const SignatureHeader = "X-Signature"

// WebhookVerifier authenticates webhook deliveries by recomputing the
// provider's HMAC-SHA512 signature over the raw request body
type WebhookVerifier struct {
	secret      string
	environment string
	logger      core.Logger
}

// NewWebhookVerifier creates a webhook verifier
func NewWebhookVerifier(secret, environment string, logger core.Logger) *WebhookVerifier {
	return &WebhookVerifier{
		secret:      secret,
		environment: environment,
		logger:      logger,
	}
}

// Verify checks the signature against the raw body. With no secret configured
// the verifier fails closed in production; outside production it skips the
// check but logs that it did, so an unverified environment is never silent.
func (v *WebhookVerifier) Verify(rawBody []byte, signature string) error {
	if v.secret == "" {
		if v.environment == "production" {
			v.logger.Error("Webhook received but no webhook secret configured", nil)
			return errs.ErrSignatureInvalid
		}
		v.logger.Warn("Webhook signature verification skipped: no secret configured", map[string]any{
			"environment": v.environment,
		})
		return nil
	}

	if signature == "" {
		v.logger.Warn("Webhook delivered without a signature header", nil)
		return errs.ErrSignatureInvalid
	}

	mac := hmac.New(sha512.New, []byte(v.secret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		v.logger.Warn("Webhook signature mismatch", nil)
		return errs.ErrSignatureInvalid
	}

	return nil
}
