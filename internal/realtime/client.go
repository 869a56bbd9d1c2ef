// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/tellnab/tellnab/internal/platform/config"
	"github.com/tellnab/tellnab/internal/platform/ctxutil"
)

// Client is a websocket [Transport] with a buffered outbound queue.
type Client struct {
	ws      *websocket.Conn
	send    chan []byte
	config  config.RealtimeConfig
	limiter *rate.Limiter

	mu     sync.Mutex
	closed bool
}

// NewClient wraps an upgraded websocket connection.
func NewClient(ws *websocket.Conn, cfg config.RealtimeConfig) *Client {
	return &Client{
		ws:      ws,
		send:    make(chan []byte, cfg.SendBuffer),
		config:  cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.MessageRate), cfg.MessageBurst),
	}
}

// Send queues a frame without blocking.
func (client *Client) Send(frame []byte) error {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.closed {
		return ErrTransportClosed
	}

	select {
	case client.send <- frame:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close stops accepting frames. Queued frames are still flushed before the
// write pump sends a close frame. Safe to call more than once.
func (client *Client) Close() error {
	client.mu.Lock()
	defer client.mu.Unlock()

	if !client.closed {
		client.closed = true
		close(client.send)
	}
	return nil
}

/*
ReadPump forwards inbound frames to the hub until the socket fails.

Description: Enforces the read limit and pong deadline, and drops frames that
exceed the per-connection rate. On exit the connection is unregistered.
Diagnostics go to the logger carried by ctx.
*/
func (client *Client) ReadPump(ctx context.Context, hub *Hub, conn *Connection) {
	logger := ctxutil.GetLogger(ctx)

	defer func() {
		if err := hub.Close(context.WithoutCancel(ctx), conn); err != nil && !errors.Is(err, ErrHubStopped) {
			logger.Warn("connection_unregister_failed", slog.Any("error", err))
		}
		_ = client.Close()
		_ = client.ws.Close()
	}()

	client.ws.SetReadLimit(client.config.MaxMessageSize)
	_ = client.ws.SetReadDeadline(time.Now().Add(client.config.PongWait))
	client.ws.SetPongHandler(func(string) error {
		return client.ws.SetReadDeadline(time.Now().Add(client.config.PongWait))
	})

	for {
		_, message, err := client.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Debug("websocket_read_failed", slog.Any("error", err))
			}
			return
		}

		if !client.limiter.Allow() {
			logger.Debug("frame_rate_limited")
			continue
		}

		if err := hub.HandleFrame(ctx, conn, message); err != nil {
			return
		}
	}
}

// WritePump drains the outbound queue and keeps the connection alive with pings.
func (client *Client) WritePump() {
	ticker := time.NewTicker(client.config.PingInterval)
	defer func() {
		ticker.Stop()
		_ = client.ws.Close()
	}()

	for {
		select {
		case frame, ok := <-client.send:
			_ = client.ws.SetWriteDeadline(time.Now().Add(client.config.WriteWait))
			if !ok {
				_ = client.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			_ = client.ws.SetWriteDeadline(time.Now().Add(client.config.WriteWait))
			if err := client.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
