package push

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"patient-visit-history/internal/platform/httpclient"
)

var (
	ErrPushNotConfigured = errors.New("push gateway client not configured")
	ErrPushUnauthorized  = errors.New("push gateway unauthorized")
	ErrPushUpstream      = errors.New("push gateway upstream error")
)

// Config del cliente del gateway de push.
// BaseURL y APIKey normalmente vienen de env vars (ver internal/config).
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: header donde viaja la API key. Vacío => "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	baseURL      string
	apiKey       string
	apiKeyHeader string
	http         *httpclient.Client
}

func NewClient(cfg Config) *Client {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	c := httpclient.New(timeout)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	return &Client{
		baseURL:      c.BaseURL,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		http:         c,
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.baseURL != "" && c.apiKey != ""
}

// notificationPayload es el contrato wire con el gateway. data vuelve
// igual en el tap-callback del cliente.
type notificationPayload struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	DelaySeconds int    `json:"delay_seconds,omitempty"`
	Data         struct {
		Type    string `json:"type"`
		VisitID string `json:"visitId,omitempty"`
	} `json:"data"`
}

// Send programa una notificación en el gateway. Fire-and-forget del
// lado del core: acá solo se normalizan los errores.
func (c *Client) Send(ctx context.Context, p notificationPayload) error {
	if !c.IsConfigured() {
		return ErrPushNotConfigured
	}

	headers := map[string]string{c.apiKeyHeader: c.apiKey}

	err := c.http.DoJSON(ctx, http.MethodPost, "/v1/notifications", headers, p, nil)
	if err == nil {
		return nil
	}

	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrPushUnauthorized
		default:
			return fmt.Errorf("%w: status=%d", ErrPushUpstream, httpErr.StatusCode)
		}
	}
	return fmt.Errorf("%w: %v", ErrPushUpstream, err)
}
