package paystack

// chargeRequest is the provider wire format for a mobile-money charge.
// Amounts are minor units (pesewas).
type chargeRequest struct {
	Amount      int64       `json:"amount"`
	Email       string      `json:"email"`
	Currency    string      `json:"currency"`
	Reference   string      `json:"reference"`
	MobileMoney mobileMoney `json:"mobile_money"`
}

// mobileMoney identifies the wallet being charged
type mobileMoney struct {
	Phone    string `json:"phone"`
	Provider string `json:"provider"`
}

// chargeResponse is the provider's envelope for a charge attempt
type chargeResponse struct {
	Status  bool       `json:"status"`
	Message string     `json:"message"`
	Data    chargeData `json:"data"`
}

// chargeData carries the charge outcome. The provider reports a rich status
// vocabulary (send_otp, pay_offline, ...); anything that is not a definitive
// success or failure is still in flight.
type chargeData struct {
	ID              int64  `json:"id"`
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	Amount          int64  `json:"amount"`
	Fees            int64  `json:"fees"`
	Channel         string `json:"channel"`
	Currency        string `json:"currency"`
	GatewayResponse string `json:"gateway_response"`
}
