package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/anonto42/forager-notifier/internal/middleware"
	"github.com/anonto42/forager-notifier/internal/triggers"
	"github.com/labstack/echo/v4"
)

// TriggerHandler turns Firestore event deliveries into handler runs
type TriggerHandler struct {
	triggers *triggers.Triggers
}

// NewTriggerHandler creates a new TriggerHandler
func NewTriggerHandler(t *triggers.Triggers) *TriggerHandler {
	return &TriggerHandler{triggers: t}
}

// TriggerResponse is returned for every well-formed delivery
type TriggerResponse struct {
	RequestID string           `json:"requestId,omitempty"`
	Caller    string           `json:"caller,omitempty"`
	Outcome   triggers.Outcome `json:"outcome"`
}

type triggerFunc func(ctx context.Context, ev triggers.Event) triggers.Outcome

// RegisterTriggerRoutes registers one route per document trigger
func (h *TriggerHandler) RegisterTriggerRoutes(g *echo.Group) {
	g.POST("/friend-requests/created", h.handle(triggers.FriendRequestPath, h.triggers.OnFriendRequestCreated))
	g.POST("/friend-requests/updated", h.handle(triggers.FriendRequestPath, h.triggers.OnFriendRequestUpdated))
	g.POST("/posts/updated", h.handle(triggers.PostPath, h.triggers.OnPostLiked))
	g.POST("/comments/created", h.handle(triggers.CommentPath, h.triggers.OnPostComment))
}

func (h *TriggerHandler) handle(pattern triggers.Pattern, run triggerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var envelope triggers.Envelope
		if err := c.Bind(&envelope); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid event body")
		}
		if envelope.Value == nil && envelope.OldValue == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Event carries no document")
		}
		if err := c.Validate(&envelope); err != nil {
			return err
		}

		ev, err := envelope.ToEvent(pattern)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		caller := middleware.TriggerCaller(c)
		outcome := run(c.Request().Context(), ev)
		log.Printf("[%s] %s from %q -> recipient=%q stored=%t pushed=%t skipped=%q",
			requestID, outcome.Trigger, caller, outcome.Recipient, outcome.Stored, outcome.Pushed, outcome.Skipped)

		// Handler exits are never platform errors, so the delivery is always acknowledged.
		return c.JSON(http.StatusOK, TriggerResponse{RequestID: requestID, Caller: caller, Outcome: outcome})
	}
}
