// AngelaMos | 2026
// gateway.go

package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/promptacademy/platform-api/internal/config"
	"github.com/promptacademy/platform-api/internal/core"
)

// Gateway talks to the Razorpay orders API. Amounts cross the wire in
// minor units (paise); everything else in this codebase uses major
// units.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	keySecret  string
}

func NewGateway(cfg config.PaymentConfig) (*Gateway, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, fmt.Errorf("payment gateway credentials not configured")
	}

	return &Gateway{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
	}, nil
}

func (g *Gateway) KeyID() string {
	return g.keyID
}

type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func (g *Gateway) CreateOrder(
	ctx context.Context,
	amount int64,
	currency, receipt string,
) (*GatewayOrder, error) {
	payload := map[string]any{
		"amount":   amount * 100,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		g.baseURL+"/orders",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w: %w", core.ErrUpstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf(
			"create order: gateway returned %d: %s: %w",
			resp.StatusCode,
			string(respBody),
			core.ErrUpstream,
		)
	}

	var order GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf(
			"decode order response: %w: %w",
			core.ErrUpstream,
			err,
		)
	}

	if order.ID == "" {
		return nil, fmt.Errorf(
			"create order: gateway returned empty order id: %w",
			core.ErrUpstream,
		)
	}

	return &order, nil
}

// VerifySignature checks the checkout callback signature: an
// HMAC-SHA256 of "<order_id>|<payment_id>" keyed with the API secret,
// hex encoded. Comparison is constant time.
func (g *Gateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
