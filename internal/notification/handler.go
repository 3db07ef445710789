package notification

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shaharia-lab/todo/internal/eventbus"
)

// EventTodoPurged mirrors the service event type the handler reacts to.
const EventTodoPurged = "todo.purged"

const sendTimeout = 30 * time.Second

// Handler turns purge events into retention reports.
type Handler struct {
	provider Provider
	logger   *slog.Logger
}

// NewHandler creates a Handler delivering through provider.
func NewHandler(provider Provider, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{provider: provider, logger: logger}
}

// Listener returns an event bus listener that reacts to purge events only.
func (h *Handler) Listener() eventbus.Listener {
	return eventbus.Only(h.Handle, EventTodoPurged)
}

// Handle builds and sends the report for e. Delivery failures are logged.
func (h *Handler) Handle(e eventbus.Event) {
	msg := Message{
		Subject: buildSubject("Completed todos purged"),
		Body: fmt.Sprintf("%s completed todos were removed by the retention job at %s.",
			e.Payload["count"], e.Timestamp.UTC().Format(time.RFC3339)),
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := h.provider.Send(ctx, msg); err != nil {
		h.logger.Error("notification delivery failed",
			"provider", h.provider.Name(), "event", e.Type, "error", err)
		return
	}
	h.logger.Info("notification sent", "provider", h.provider.Name(), "event", e.Type)
}
