// Package agent implements the metadata pusher: it watches a directory of
// translation files, derives the metadata blob and forwards it to the
// backend over the WebSocket API. Pushes are best effort; a failed push is
// logged and retried on the next trigger, never queued.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"

	"langsync/internal/config"
	"langsync/internal/store"
	"langsync/internal/ws"
)

const ackTimeout = 10 * time.Second

type Agent struct {
	cfg config.AgentConfig

	conn     *websocket.Conn
	lastSent string
	nextID   int
}

func New(cfg config.AgentConfig) *Agent {
	return &Agent{cfg: cfg}
}

// Run pushes until the context is cancelled. Triggers: a warm-up push after
// start, filesystem change notifications, and a periodic ticker as a
// fallback for missed events.
func (a *Agent) Run(ctx context.Context) error {
	log.Info("Starting translation agent",
		"server_url", a.cfg.ServerURL,
		"translations_dir", a.cfg.TranslationsDir,
		"poll_interval", a.cfg.PollInterval)

	if a.cfg.WarmupDelay > 0 {
		select {
		case <-time.After(a.cfg.WarmupDelay):
		case <-ctx.Done():
			return nil
		}
	}

	// Change notification is the primary trigger; polling only backstops it.
	var fsEvents chan fsnotify.Event
	var fsErrors chan error
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn("Filesystem watcher unavailable, relying on polling", "error", err)
	} else {
		defer watcher.Close()
		if err := watcher.Add(a.cfg.TranslationsDir); err != nil {
			log.Warn("Cannot watch translations directory, relying on polling", "error", err)
		} else {
			fsEvents = watcher.Events
			fsErrors = watcher.Errors
		}
	}

	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	a.detectAndPush(ctx)

	for {
		select {
		case <-ctx.Done():
			a.disconnect()
			return nil
		case <-ticker.C:
			a.detectAndPush(ctx)
		case ev, ok := <-fsEvents:
			if !ok {
				fsEvents = nil
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				a.detectAndPush(ctx)
			}
		case err, ok := <-fsErrors:
			if !ok {
				fsErrors = nil
				continue
			}
			log.Debug("Filesystem watcher error", "error", err)
		}
	}
}

// detectAndPush snapshots the translations directory and pushes only when
// the serialized blob differs from the last one sent. All failures are
// logged and swallowed; the next trigger retries.
func (a *Agent) detectAndPush(ctx context.Context) {
	blob, err := Snapshot(a.cfg.TranslationsDir)
	if err != nil {
		log.Error("Failed to snapshot translations", "error", err)
		return
	}

	snapshot, err := json.Marshal(blob)
	if err != nil {
		log.Error("Failed to serialize metadata", "error", err)
		return
	}

	if string(snapshot) == a.lastSent {
		return
	}

	if err := a.push(ctx, blob); err != nil {
		log.Warn("Push failed", "error", err)
		a.disconnect()
		return
	}

	a.lastSent = string(snapshot)
	log.Info("Pushed translation metadata", "languages", len(blob))
}

func (a *Agent) push(ctx context.Context, blob store.Blob) error {
	if err := a.connect(ctx); err != nil {
		return err
	}

	a.nextID++
	msg := ws.CommandMessage{
		ID:       a.nextID,
		Type:     ws.CmdStoreMetadata,
		Metadata: blob,
	}

	if err := a.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to send metadata: %w", err)
	}

	if err := a.conn.SetReadDeadline(time.Now().Add(ackTimeout)); err != nil {
		return err
	}

	var resp ws.ResultMessage
	if err := a.conn.ReadJSON(&resp); err != nil {
		return fmt.Errorf("failed to read acknowledgement: %w", err)
	}

	if !resp.Success {
		if resp.Error != nil {
			return fmt.Errorf("push rejected: %s: %s", resp.Error.Code, resp.Error.Message)
		}
		return fmt.Errorf("push rejected")
	}

	return nil
}

func (a *Agent) connect(ctx context.Context) error {
	if a.conn != nil {
		return nil
	}

	operation := func() error {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, a.cfg.ServerURL, nil)
		if err != nil {
			log.Debug("Dial failed, retrying", "server_url", a.cfg.ServerURL, "error", err)
			return err
		}
		a.conn = conn
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", a.cfg.ServerURL, err)
	}

	log.Debug("Connected to backend", "server_url", a.cfg.ServerURL)
	return nil
}

func (a *Agent) disconnect() {
	if a.conn == nil {
		return
	}
	a.conn.Close()
	a.conn = nil
}
