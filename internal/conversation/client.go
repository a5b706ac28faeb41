package conversation

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"medchat/internal/domain"
)

// ErrorPrefix antecede a la descripción de cualquier fallo mostrado en el transcript.
const ErrorPrefix = "Error: "

// Transport envía un mensaje al backend de chat y devuelve la respuesta.
type Transport interface {
	Send(ctx context.Context, message string) (string, error)
}

// Client conecta el input del usuario con el backend y el transcript.
type Client struct {
	logger     *zap.Logger
	transport  Transport
	transcript *Transcript
	inflight   sync.WaitGroup
}

func NewClient(logger *zap.Logger, transport Transport, transcript *Transcript) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		logger:     logger,
		transport:  transport,
		transcript: transcript,
	}
}

// Submit toma el valor del campo y, si no está vacío, inicia un intercambio.
// Devuelve false cuando el input (recortado) está vacío; en ese caso no toca el campo.
func (c *Client) Submit(ctx context.Context, field InputField) bool {
	text := strings.TrimSpace(field.Value())
	if text == "" {
		return false
	}

	c.transcript.Append(domain.UserMessage(text))
	field.Clear()

	c.inflight.Add(1)
	go c.exchange(ctx, text)
	return true
}

// Wait bloquea hasta que todos los intercambios iniciados hayan agregado su respuesta.
func (c *Client) Wait() {
	c.inflight.Wait()
}

// Transcript expone el transcript que alimenta este cliente.
func (c *Client) Transcript() *Transcript {
	return c.transcript
}

func (c *Client) exchange(ctx context.Context, text string) {
	defer c.inflight.Done()

	reply, err := c.transport.Send(ctx, text)
	if err != nil {
		c.logger.Warn("chat exchange failed", zap.Error(err))
		c.transcript.Append(domain.BotMessage(ErrorPrefix + err.Error()))
		return
	}
	c.transcript.Append(domain.BotMessage(reply))
}
