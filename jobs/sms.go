package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SMSClient posts messages to an HTTP SMS gateway.
type SMSClient struct {
	url    string
	apiKey string
	sender string
	http   *http.Client
}

// NewSMSClient builds a client for the gateway endpoint.
func NewSMSClient(url, apiKey, sender string) *SMSClient {
	return &SMSClient{
		url:    url,
		apiKey: apiKey,
		sender: sender,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

type smsRequest struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Message string `json:"message"`
}

// Send delivers a single SMS.
func (c *SMSClient) Send(ctx context.Context, to, message string) error {
	payload, err := json.Marshal(smsRequest{To: to, From: c.sender, Message: message})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return fmt.Errorf("sms gateway: unexpected status %d", res.StatusCode)
	}
	return nil
}
