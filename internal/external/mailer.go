package external

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MailerClient talks to the transactional email provider. It is a thin
// HTTP client: template rendering and deliverability are the provider's
// concern, not ours.
type MailerClient struct {
	baseURL    string
	apiKey     string
	sender     string
	httpClient *http.Client
}

type MailerConfig struct {
	BaseURL string
	APIKey  string
	Sender  string
	Timeout time.Duration
}

type SendMessageRequest struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Vars     map[string]string `json:"vars,omitempty"`
}

type SendMessageResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
}

func NewMailerClient(cfg MailerConfig) *MailerClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &MailerClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		sender:  cfg.Sender,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// SendWelcome sends the post-validation welcome email to a single member
func (mc *MailerClient) SendWelcome(to, memberName, eventTitle, eventDate, eventTime string) (*SendMessageResponse, error) {
	req := SendMessageRequest{
		From:     mc.sender,
		To:       to,
		Subject:  fmt.Sprintf("Welcome to %s", eventTitle),
		Template: "welcome",
		Vars: map[string]string{
			"member_name": memberName,
			"event_title": eventTitle,
			"event_date":  eventDate,
			"event_time":  eventTime,
		},
	}

	return mc.send(req)
}

func (mc *MailerClient) send(req SendMessageRequest) (*SendMessageResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, mc.baseURL+"/messages", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+mc.apiKey)

	resp, err := mc.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("mailer returned status %d", resp.StatusCode)
	}

	var result SendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
