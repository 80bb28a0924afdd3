package paygate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the external payment gateway. The gateway issues an
// opaque session token authorizing payment of one amount for one order;
// the token's validity is entirely the gateway's concern, this client
// never tracks it.
type Client struct {
	baseURL   string
	serverKey string
	http      *http.Client
}

// Config holds gateway connection details.
type Config struct {
	BaseURL   string
	ServerKey string
}

// NewClient creates a new gateway client.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		serverKey: cfg.ServerKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

type sessionRequest struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

// IssueSession requests a payment session token for (orderID, amount).
// Issuing a new session for an order supersedes any previous one on the
// gateway side.
func (c *Client) IssueSession(orderID string, grossAmount int64) (string, error) {
	body, err := json.Marshal(sessionRequest{OrderID: orderID, GrossAmount: grossAmount})
	if err != nil {
		return "", fmt.Errorf("failed to marshal session request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v2/sessions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.serverKey, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("failed to decode session response: %w", err)
	}
	if session.Token == "" {
		return "", fmt.Errorf("gateway returned an empty session token")
	}
	return session.Token, nil
}
