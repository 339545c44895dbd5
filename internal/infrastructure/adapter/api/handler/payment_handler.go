package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	domainerr "github.com/oseikuffour/contribution-processor/internal/domain/error"
	coreport "github.com/oseikuffour/contribution-processor/internal/domain/port/core"
	portuse "github.com/oseikuffour/contribution-processor/internal/domain/port/usecase"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/api/dto"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/paystack"
)

// SignatureVerifier authenticates raw webhook bodies
type SignatureVerifier interface {
	Verify(rawBody []byte, signature string) error
}

// PaymentHandler handles contribution lifecycle HTTP requests
type PaymentHandler struct {
	paymentService portuse.PaymentUseCase
	verifier       SignatureVerifier
	logger         coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(
	paymentService portuse.PaymentUseCase,
	verifier SignatureVerifier,
	logger coreport.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		verifier:       verifier,
		logger:         logger,
	}
}

// InitiateContribution handles the POST /payments/initiate endpoint
func (h *PaymentHandler) InitiateContribution(c *gin.Context) {
	var req dto.InitiateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid contribution request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
			Message: "Amount must be a decimal string",
		})
		return
	}

	result, err := h.paymentService.InitiateDeposit(c.Request.Context(), portuse.InitiateRequest{
		Amount:  amount,
		Phone:   req.Phone,
		Network: req.Network,
		UserID:  req.Metadata.UserID,
		Email:   req.Metadata.Email,
	})
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.InitiateContributionResponse{
		Reference:     result.Reference,
		Status:        string(result.Status),
		TransactionID: result.TransactionID,
	})
}

// HandleWebhook handles the POST /payments/webhook endpoint. The signature is
// verified over the raw body before any parsing; a body that has been bound
// and re-serialized can no longer be authenticated.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	rawBody, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Unable to read request body",
		})
		return
	}

	if err := h.verifier.Verify(rawBody, c.GetHeader(paystack.SignatureHeader)); err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrSignatureInvalid),
			Message: "Invalid webhook signature",
		})
		return
	}

	var event portuse.WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		h.logger.Warn("Unparseable webhook payload", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid webhook payload",
		})
		return
	}

	err = h.paymentService.Reconcile(c.Request.Context(), event)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.WebhookAckResponse{Status: "ok"})
	case errors.Is(err, domainerr.ErrDuplicateWebhook):
		// Already settled; acknowledge so the provider stops retrying
		c.JSON(http.StatusOK, dto.WebhookAckResponse{Status: "ok"})
	case errors.Is(err, domainerr.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "No transaction matches the webhook reference",
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
			Message: "Internal server error",
		})
	}
}

// VerifyWebhookEndpoint handles the GET /payments/webhook endpoint used by
// the provider to confirm the callback URL is reachable
func (h *PaymentHandler) VerifyWebhookEndpoint(c *gin.Context) {
	challenge := c.Query("challenge")
	c.JSON(http.StatusOK, dto.ChallengeResponse{Challenge: challenge})
}

// GetTransaction handles the GET /payments/transactions/:reference endpoint
func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	reference := c.Param("reference")

	txn, err := h.paymentService.GetByReference(c.Request.Context(), reference)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTransactionResponse(txn))
}

// respondWithError maps domain errors to HTTP status codes
func (h *PaymentHandler) respondWithError(c *gin.Context, err error) {
	switch {
	case domainerr.IsValidationError(err):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
	case errors.Is(err, domainerr.ErrUserNotFound):
		// Resolution failures are a caller problem, same class as validation
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "No member account matches the request",
		})
	case errors.Is(err, domainerr.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Transaction not found",
		})
	case errors.Is(err, domainerr.ErrGatewayUnavailable):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Payment gateway unavailable, please retry",
		})
	case errors.Is(err, domainerr.ErrDuplicateReference):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "A transaction with this reference already exists",
		})
	default:
		h.logger.Error("Unhandled error in payment handler", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
			Message: "Internal server error",
		})
	}
}

// toTransactionResponse converts a ledger entry to its API view
func toTransactionResponse(txn *entity.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:            txn.ID,
		UserID:        txn.UserID,
		Amount:        entity.FormatAmount(txn.Amount),
		Type:          string(txn.Type),
		Status:        string(txn.Status),
		PaymentMethod: txn.PaymentMethod,
		Reference:     txn.TransactionReference,
		CreatedAt:     txn.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     txn.UpdatedAt.Format(time.RFC3339),
	}
	if txn.PaymentDetails.ProviderReference != "" {
		resp.ProviderReference = txn.PaymentDetails.ProviderReference
	}
	return resp
}
