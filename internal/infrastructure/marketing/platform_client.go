// Package marketing cliente HTTP de la plataforma externa de email marketing.
package marketing

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	appmarketing "github.com/jhoicas/atp-api/internal/application/marketing"
	"github.com/jhoicas/atp-api/pkg/config"
)

var _ appmarketing.PlatformSync = (*PlatformClient)(nil)

// PlatformClient implementación de marketing.PlatformSync sobre resty.
type PlatformClient struct {
	http *resty.Client
}

// NewPlatformClient construye el cliente con la URL base y el token de la configuración.
func NewPlatformClient(cfg config.MarketingConfig) *PlatformClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	if cfg.APIToken != "" {
		c.SetAuthToken(cfg.APIToken)
	}
	return &PlatformClient{http: c}
}

type contactPayload struct {
	Email          string `json:"email"`
	Name           string `json:"name,omitempty"`
	ExternalID     string `json:"external_id"`
	OrganizationID string `json:"organization_id"`
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Subscribe inscribe (o actualiza) el contacto en la lista.
func (c *PlatformClient) Subscribe(ctx context.Context, listID string, contact appmarketing.PlatformContact) error {
	apiErr := new(apiError)
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("listID", listID).
		SetBody(contactPayload{
			Email:          contact.Email,
			Name:           contact.Name,
			ExternalID:     contact.UserID,
			OrganizationID: contact.CompanyID,
		}).
		SetError(apiErr).
		Put("/lists/{listID}/contacts")
	if err != nil {
		return fmt.Errorf("marketing: subscribe: %w", err)
	}
	return statusError("subscribe", resp, apiErr)
}

// Unsubscribe retira el email de la lista. Un 404 se considera ya retirado.
func (c *PlatformClient) Unsubscribe(ctx context.Context, listID, email string) error {
	apiErr := new(apiError)
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("listID", listID).
		SetPathParam("email", email).
		SetError(apiErr).
		Delete("/lists/{listID}/contacts/{email}")
	if err != nil {
		return fmt.Errorf("marketing: unsubscribe: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}
	return statusError("unsubscribe", resp, apiErr)
}

func statusError(op string, resp *resty.Response, apiErr *apiError) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}
	msg := apiErr.Message
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("marketing: %s: status=%d, message=%s", op, resp.StatusCode(), msg)
}
