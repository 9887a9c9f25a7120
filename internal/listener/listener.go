// Package listener provides a Postgres LISTEN/NOTIFY consumer that tells
// the API when a new dataset has been loaded. It holds a dedicated pgx
// connection (not from the pool) listening on the `dataset_loaded` channel.
//
// `squadgraph load` calls Notify after a successful save; the API reloads
// the dataset from the tables and swaps its engine.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Channel is the NOTIFY channel name.
const Channel = "dataset_loaded"

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// DatasetEvent is the JSON payload sent on Channel.
type DatasetEvent struct {
	Matches   int   `json:"matches"`
	Players   int   `json:"players"`
	Timestamp int64 `json:"ts"`
}

// Handler receives each decoded event.
type Handler func(ctx context.Context, event DatasetEvent)

// Notify publishes event on Channel through pool.
func Notify(ctx context.Context, pool *pgxpool.Pool, event DatasetEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, "SELECT pg_notify($1, $2)", Channel, string(payload)); err != nil {
		return fmt.Errorf("notify %s: %w", Channel, err)
	}
	return nil
}

// ParseEvent decodes a notification payload.
func ParseEvent(payload string) (DatasetEvent, error) {
	var event DatasetEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return event, fmt.Errorf("parse %s payload: %w", Channel, err)
	}
	return event, nil
}

// Start opens a dedicated connection and listens on Channel. It reconnects
// automatically on connection loss. Blocks until ctx is cancelled.
// Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, handle Handler, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, handle, logger)
		if ctx.Err() != nil {
			logger.Info("Dataset listener stopped (context cancelled)")
			return
		}

		logger.Error("Dataset listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection
// drops or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, handle Handler, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+Channel); err != nil {
		return fmt.Errorf("LISTEN %s: %w", Channel, err)
	}
	logger.Info("Dataset listener connected", "channel", Channel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		event, err := ParseEvent(notification.Payload)
		if err != nil {
			logger.Warn("Failed to parse dataset event",
				"payload", notification.Payload, "error", err)
			continue
		}

		logger.Info("Dataset event received",
			"matches", event.Matches,
			"players", event.Players)

		// Reloads run one at a time on this goroutine; further
		// notifications queue on the connection.
		handle(ctx, event)
	}
}
