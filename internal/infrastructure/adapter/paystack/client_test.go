package paystack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	"github.com/oseikuffour/contribution-processor/internal/domain/port/gateway"
)

func testRequest() gateway.ChargeRequest {
	return gateway.ChargeRequest{
		Reference:   "CTB-20240301093000-abcd1234",
		AmountMinor: 5000,
		Currency:    "GHS",
		Phone:       "+233241234567",
		Channel:     "mtn",
		Email:       "akosua@example.com",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		SecretKey: "sk_test_xxx",
		BaseURL:   server.URL,
		Timeout:   2 * time.Second,
	}, quietLogger())
}

func TestClientCharge(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful charge is normalized", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/charge", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_xxx", r.Header.Get("Authorization"))

			var wire chargeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&wire))
			assert.Equal(t, int64(5000), wire.Amount)
			assert.Equal(t, "mtn", wire.MobileMoney.Provider)
			assert.Equal(t, "+233241234567", wire.MobileMoney.Phone)

			json.NewEncoder(w).Encode(chargeResponse{
				Status:  true,
				Message: "Charge attempted",
				Data: chargeData{
					ID:              1122334455,
					Status:          "success",
					Reference:       "PSK_ref_001",
					Amount:          5000,
					Fees:            50,
					Channel:         "mobile_money",
					GatewayResponse: "Approved",
				},
			})
		})

		result, err := client.Charge(ctx, testRequest())
		require.NoError(t, err)
		assert.Equal(t, gateway.ChargeSuccess, result.Status)
		assert.Equal(t, "PSK_ref_001", result.Reference)
		assert.Equal(t, int64(50), result.FeesMinor)
	})

	t.Run("Offline prompt stays pending", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(chargeResponse{
				Status: true,
				Data:   chargeData{Status: "pay_offline", Reference: "PSK_ref_002"},
			})
		})

		result, err := client.Charge(ctx, testRequest())
		require.NoError(t, err)
		assert.Equal(t, gateway.ChargePending, result.Status)
	})

	t.Run("Provider 5xx maps to gateway unavailable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.Charge(ctx, testRequest())
		assert.ErrorIs(t, err, errs.ErrGatewayUnavailable)

		var gwErr *errs.GatewayError
		assert.ErrorAs(t, err, &gwErr)
		assert.Equal(t, http.StatusServiceUnavailable, gwErr.StatusCode)
	})

	t.Run("Provider rejection maps to invalid request", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(chargeResponse{
				Status:  false,
				Message: "Invalid mobile money provider",
			})
		})

		_, err := client.Charge(ctx, testRequest())
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		assert.Contains(t, err.Error(), "Invalid mobile money provider")
	})

	t.Run("Transport failure maps to gateway unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client := NewClient(Config{
			SecretKey: "sk_test_xxx",
			BaseURL:   server.URL,
			Timeout:   time.Second,
		}, quietLogger())
		server.Close()

		_, err := client.Charge(ctx, testRequest())
		assert.ErrorIs(t, err, errs.ErrGatewayUnavailable)
	})

	t.Run("Timeout maps to gateway unavailable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		})

		timeoutCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		_, err := client.Charge(timeoutCtx, testRequest())
		assert.ErrorIs(t, err, errs.ErrGatewayUnavailable)
	})
}
