// AngelaMos | 2026
// gateway_test.go

package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptacademy/platform-api/internal/config"
	"github.com/promptacademy/platform-api/internal/core"
)

func testGateway(t *testing.T, baseURL string) *Gateway {
	t.Helper()

	gw, err := NewGateway(config.PaymentConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
		BaseURL:   baseURL,
		Timeout:   2 * time.Second,
	})
	require.NoError(t, err)
	return gw
}

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestNewGatewayRequiresCredentials(t *testing.T) {
	_, err := NewGateway(config.PaymentConfig{BaseURL: "http://unused"})
	require.Error(t, err)
}

func TestCreateOrderConvertsToMinorUnits(t *testing.T) {
	var gotBody map[string]any
	var gotUser, gotPass string

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotUser, gotPass, _ = r.BasicAuth()
			//nolint:errcheck // test handler
			_ = json.NewDecoder(r.Body).Decode(&gotBody)

			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // test handler
			_ = json.NewEncoder(w).Encode(GatewayOrder{
				ID:       "order_123",
				Amount:   50000,
				Currency: "INR",
				Status:   "created",
			})
		}))
	defer srv.Close()

	gw := testGateway(t, srv.URL)

	order, err := gw.CreateOrder(context.Background(), 500, "INR", "rcpt-1")
	require.NoError(t, err)
	assert.Equal(t, "order_123", order.ID)

	assert.Equal(t, "rzp_test_key", gotUser)
	assert.Equal(t, "rzp_test_secret", gotPass)
	assert.Equal(t, float64(50000), gotBody["amount"],
		"500 major units must cross the wire as 50000 minor units")
	assert.Equal(t, "INR", gotBody["currency"])
}

func TestCreateOrderUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
	defer srv.Close()

	gw := testGateway(t, srv.URL)

	_, err := gw.CreateOrder(context.Background(), 500, "INR", "rcpt-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUpstream)
}

func TestVerifySignature(t *testing.T) {
	gw := testGateway(t, "http://unused.invalid")

	valid := sign("rzp_test_secret", "order_123", "pay_456")

	assert.True(t, gw.VerifySignature("order_123", "pay_456", valid))
	assert.False(t, gw.VerifySignature("order_123", "pay_456", valid+"00"))
	assert.False(t, gw.VerifySignature("order_999", "pay_456", valid))
	assert.False(t, gw.VerifySignature("order_123", "pay_456",
		sign("wrong_secret", "order_123", "pay_456")))
	assert.False(t, gw.VerifySignature("order_123", "pay_456", ""))
}
