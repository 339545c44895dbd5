package dto

// InitiateContributionRequest is the API request for starting a mobile-money
// contribution. The amount is a decimal string in cedis; floats never cross
// the API boundary.
type InitiateContributionRequest struct {
	Amount   string             `json:"amount" binding:"required"`
	Phone    string             `json:"phone" binding:"required"`
	Network  string             `json:"network" binding:"required"`
	Metadata ContributionMember `json:"metadata" binding:"required"`
}

// ContributionMember identifies the contributing member. The email is an
// explicit resolution fallback, not an alternate flow.
type ContributionMember struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Email  string `json:"email"`
}

// InitiateContributionResponse reports the outcome of an initiation
type InitiateContributionResponse struct {
	Reference     string `json:"reference"`
	Status        string `json:"status"`
	TransactionID uint64 `json:"transaction_id"`
}

// TransactionResponse is the read-only view of a ledger entry
type TransactionResponse struct {
	ID                uint64 `json:"id"`
	UserID            uint64 `json:"user_id"`
	Amount            string `json:"amount"`
	Type              string `json:"type"`
	Status            string `json:"status"`
	PaymentMethod     string `json:"payment_method"`
	Reference         string `json:"reference"`
	ProviderReference string `json:"provider_reference,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// WebhookAckResponse acknowledges a webhook delivery
type WebhookAckResponse struct {
	Status string `json:"status"`
}

// ChallengeResponse echoes a webhook endpoint verification challenge
type ChallengeResponse struct {
	Challenge string `json:"challenge"`
}
