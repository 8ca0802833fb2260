package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hubinova/backend/internal/config"
	"github.com/hubinova/backend/pkg/logger"
)

// Notifier delivers a text message to a phone number.
type Notifier interface {
	Notify(ctx context.Context, phone, message string) error
}

// NoopNotifier is used when outbound messaging is disabled.
type NoopNotifier struct{}

func (NoopNotifier) Notify(ctx context.Context, phone, message string) error {
	logger.Debug().Str("phone", maskPhone(phone)).Msg("[WhatsApp] disabled, message dropped")
	return nil
}

// WhatsAppClient talks to a Z-API style gateway:
// POST {base}/instances/{instance}/token/{token}/send-text
type WhatsAppClient struct {
	endpoint    string
	clientToken string
	httpClient  *http.Client
}

type whatsAppPayload struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func NewWhatsAppClient(cfg config.WhatsAppConfig) *WhatsAppClient {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	endpoint := fmt.Sprintf("%s/instances/%s/token/%s/send-text",
		strings.TrimRight(cfg.BaseURL, "/"), url.PathEscape(cfg.Instance), url.PathEscape(cfg.Token))

	return &WhatsAppClient{
		endpoint:    endpoint,
		clientToken: cfg.ClientToken,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// NewNotifier picks the WhatsApp client when it is enabled and configured.
func NewNotifier(cfg config.WhatsAppConfig) Notifier {
	if !cfg.Enabled || cfg.Instance == "" || cfg.Token == "" {
		return NoopNotifier{}
	}
	return NewWhatsAppClient(cfg)
}

func (w *WhatsAppClient) Notify(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(whatsAppPayload{Phone: phone, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if w.clientToken != "" {
		req.Header.Set("Client-Token", w.clientToken)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	logger.Debug().Int("status", resp.StatusCode).Str("phone", maskPhone(phone)).Msg("[WhatsApp] response")

	if resp.StatusCode >= 400 {
		return fmt.Errorf("whatsapp gateway returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// NormalizePhone keeps digits only and prefixes the Brazilian country code.
// It returns "" when too few digits remain to be a phone number.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := strings.TrimLeft(b.String(), "0")
	if len(digits) < 10 {
		return ""
	}
	if strings.HasPrefix(digits, "55") && len(digits) >= 12 {
		return digits
	}
	return "55" + digits
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
