package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// WhatsAppParams defines cloud API settings
type WhatsAppParams struct {
	BaseURL       string
	PhoneNumberID string
	Token         string
	Template      string
	Language      string
	Timeout       time.Duration
}

// WhatsApp sends template messages via WhatsApp cloud API
type WhatsApp struct {
	WhatsAppParams
	client *http.Client
}

// NewWhatsApp makes WhatsApp channel
func NewWhatsApp(params WhatsAppParams) *WhatsApp {
	if params.Timeout <= 0 {
		params.Timeout = 15 * time.Second
	}
	params.BaseURL = strings.TrimRight(params.BaseURL, "/")
	return &WhatsApp{WhatsAppParams: params, client: &http.Client{Timeout: params.Timeout}}
}

type waLanguage struct {
	Code string `json:"code"`
}

type waParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type waComponent struct {
	Type       string        `json:"type"`
	Parameters []waParameter `json:"parameters"`
}

type waTemplate struct {
	Name       string        `json:"name"`
	Language   waLanguage    `json:"language"`
	Components []waComponent `json:"components,omitempty"`
}

type waMessage struct {
	Product  string     `json:"messaging_product"`
	To       string     `json:"to"`
	Type     string     `json:"type"`
	Template waTemplate `json:"template"`
}

// Send posts template message to the recipient phone number. Client errors other than
// rate limiting are wrapped with ErrRejected.
func (w *WhatsApp) Send(ctx context.Context, recipient string, msg Message) error {
	body := waMessage{
		Product: "whatsapp",
		To:      strings.TrimPrefix(recipient, "+"),
		Type:    "template",
		Template: waTemplate{
			Name:     w.Template,
			Language: waLanguage{Code: w.Language},
		},
	}
	if msg.Teaser != "" {
		body.Template.Components = []waComponent{{Type: "body", Parameters: []waParameter{{Type: "text", Text: msg.Teaser}}}}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", w.BaseURL, w.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.Token)

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	details, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	err = fmt.Errorf("whatsapp status %s: %s", resp.Status, strings.TrimSpace(string(details)))
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return err
}
