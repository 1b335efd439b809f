// Package ws implements the WebSocket command API: two read queries for the
// stored translation metadata plus the internal push channel that replaces
// it. One goroutine reads and answers commands per connection; all shared
// state lives behind the store's lock.
package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"langsync/internal/fetcher"
	"langsync/internal/store"
)

type Handler struct {
	store    *store.Store
	fetcher  *fetcher.Fetcher
	upgrader websocket.Upgrader
}

func NewHandler(s *store.Store, f *fetcher.Fetcher) *Handler {
	return &Handler{
		store:   s,
		fetcher: f,
		upgrader: websocket.Upgrader{
			// The host transport authenticates connections before they reach
			// this API; origin filtering happens there as well.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the request and answers commands until the client
// disconnects.
func (h *Handler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Debug("WebSocket upgrade failed", "remote_ip", c.RealIP(), "error", err)
		return err
	}
	defer conn.Close()

	log.Debug("WebSocket client connected", "remote_ip", c.RealIP())

	ctx := c.Request().Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("WebSocket read error", "remote_ip", c.RealIP(), "error", err)
			}
			return nil
		}

		resp := h.dispatch(ctx, data)
		if err := conn.WriteJSON(resp); err != nil {
			log.Debug("WebSocket write error", "remote_ip", c.RealIP(), "error", err)
			return nil
		}
	}
}

func (h *Handler) dispatch(ctx context.Context, data []byte) ResultMessage {
	var msg CommandMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return resultError(0, ErrInvalidFormat, "message is not valid JSON")
	}

	switch msg.Type {
	case CmdGetAllMetadata:
		return resultOK(msg.ID, map[string]interface{}{
			"languages": NormalizedLanguages(h.store.All()),
		})

	case CmdGetLanguage:
		if msg.Language == "" {
			return resultError(msg.ID, ErrInvalidFormat, "language is required")
		}
		return resultOK(msg.ID, h.fetcher.Fetch(ctx, msg.Language))

	case CmdStoreMetadata:
		if msg.Metadata == nil {
			return resultError(msg.ID, ErrInvalidFormat, "metadata is required")
		}
		changed, err := h.store.Replace(msg.Metadata)
		if err != nil {
			log.Error("Error storing metadata", "error", err)
			return resultError(msg.ID, ErrStorageError, err.Error())
		}
		result := map[string]interface{}{"success": true}
		if !changed {
			result["unchanged"] = true
		}
		return resultOK(msg.ID, result)

	default:
		return resultError(msg.ID, ErrUnknownCommand, "unknown command: "+msg.Type)
	}
}

// NormalizedLanguages reduces each language entry to the three keys the
// frontend language picker needs, defaulting anything the push left out.
func NormalizedLanguages(blob store.Blob) map[string]map[string]interface{} {
	languages := make(map[string]map[string]interface{}, len(blob))
	for lang, entry := range blob {
		languages[lang] = map[string]interface{}{
			"nativeName": entry.NativeName(lang),
			"isRTL":      entry.IsRTL(),
			"hash":       entry.Hash(),
		}
	}
	return languages
}
