package chatapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"resty.dev/v3"
)

// ErrRequestFailed cubre fallos de red, status fuera de 2xx y respuestas malformadas.
var ErrRequestFailed = errors.New("request failed")

const chatPath = "/chat"

type startedAtKey struct{}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response *string `json:"response"`
}

type errorResponse struct {
	Detail any `json:"detail"`
}

// Client habla con el endpoint /chat del backend.
type Client struct {
	client  *resty.Client
	baseURL string
}

// NewClient construye el cliente HTTP con logging de cada request.
// No fija timeout: una llamada sin respuesta queda pendiente hasta que ctx se cancele.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	rc := resty.New()
	rc.AddRequestMiddleware(func(_ *resty.Client, r *resty.Request) error {
		r.SetContext(context.WithValue(r.Context(), startedAtKey{}, time.Now()))
		return nil
	})
	rc.AddResponseMiddleware(func(_ *resty.Client, r *resty.Response) error {
		start, _ := r.Request.Context().Value(startedAtKey{}).(time.Time)
		logger.Debug("chat api request",
			zap.String("method", r.Request.Method),
			zap.String("url", r.Request.URL),
			zap.Int("status", r.StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return nil
	})
	return &Client{
		client:  rc,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

// Close libera las conexiones del cliente subyacente.
func (c *Client) Close() error {
	return c.client.Close()
}

// Send envía un mensaje y devuelve el texto de la respuesta del bot.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(chatRequest{Message: message}).
		SetDoNotParseResponse(true).
		Post(c.baseURL + chatPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return "", fmt.Errorf("%w: empty response", ErrRequestFailed)
	}
	defer resp.RawResponse.Body.Close()

	body, err := io.ReadAll(resp.RawResponse.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrRequestFailed, err)
	}

	if !resp.IsSuccess() {
		return "", statusError(resp.StatusCode(), body)
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", ErrRequestFailed, err)
	}
	if out.Response == nil {
		return "", fmt.Errorf("%w: malformed response: missing response field", ErrRequestFailed)
	}
	return *out.Response, nil
}

func statusError(status int, body []byte) error {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Detail != nil {
		if detail, ok := er.Detail.(string); ok && detail != "" {
			return fmt.Errorf("%w: status %d: %s", ErrRequestFailed, status, detail)
		}
	}
	return fmt.Errorf("%w: status %d", ErrRequestFailed, status)
}
