// Package relay implements the consumer side of the free-tier streaming
// relay: the chat backend hands the assembled prompt to the caller, and
// the caller (or this client on its behalf) opens a websocket to the
// relay service, which generates and pushes the answer as raw text
// fragments.
package relay

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/xeoai/chatbot-saas-be/internal/core/apperr"
)

// Request is the single handoff frame sent after connecting.
type Request struct {
	SessionID    string `json:"sessionId"`
	AppID        string `json:"appId"`
	SystemPrompt string `json:"systemPrompt"`
	Message      string `json:"message"`
}

// FragmentFunc receives each raw text fragment pushed by the relay.
type FragmentFunc func(fragment string) error

type Client struct {
	url    string
	appID  string
	dialer *websocket.Dialer
}

func NewClient(url, appID string) *Client {
	return &Client{
		url:   url,
		appID: appID,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// Stream connects, sends the handoff payload and forwards fragments to
// onFragment until the relay closes the connection. A clean closure means
// the answer is complete; anything else is a mid-stream failure.
func (c *Client) Stream(ctx context.Context, sessionID, systemPrompt, message string, onFragment FragmentFunc) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return apperr.Wrap(apperr.KindUpstream, "failed to reach streaming relay", err)
	}
	defer conn.Close()

	req := Request{
		SessionID:    sessionID,
		AppID:        c.appID,
		SystemPrompt: systemPrompt,
		Message:      message,
	}
	if err := conn.WriteJSON(req); err != nil {
		return apperr.Wrap(apperr.KindUpstream, "failed to send prompt to relay", err)
	}

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return apperr.Wrap(apperr.KindUpstream, "relay connection dropped mid-stream", err)
		}

		if msgType != websocket.TextMessage || len(data) == 0 {
			continue
		}

		if err := onFragment(string(data)); err != nil {
			return err
		}
	}
}
