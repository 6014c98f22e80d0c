package notificationinfra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SMSGateway implements notification.SMSSender against a basic-auth JSON
// gateway (bulksms-style API).
type SMSGateway struct {
	client   *http.Client
	uri      string
	username string
	password string
}

// NewSMSGateway creates a gateway client.
func NewSMSGateway(uri, username, password string, timeout time.Duration) *SMSGateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SMSGateway{
		client:   &http.Client{Timeout: timeout},
		uri:      uri,
		username: username,
		password: password,
	}
}

type smsPayload struct {
	Recipient string `json:"to"`
	Body      string `json:"body"`
	Encoding  string `json:"encoding"`
}

// Send posts one text message to the gateway.
func (g *SMSGateway) Send(ctx context.Context, phoneNumber, message string) error {
	payload, err := json.Marshal(smsPayload{
		Recipient: phoneNumber,
		Body:      message,
		Encoding:  "UNICODE",
	})
	if err != nil {
		return fmt.Errorf("marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.uri, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.username, g.password)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}
