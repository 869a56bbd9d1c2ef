// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tellnab/tellnab/internal/platform/config"
	"github.com/tellnab/tellnab/internal/platform/constants"
	"github.com/tellnab/tellnab/internal/platform/ctxutil"
)

// Handler upgrades HTTP requests to hub connections.
type Handler struct {
	ctx      context.Context
	hub      *Hub
	config   config.RealtimeConfig
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

/*
NewHandler constructs the websocket endpoint.

Parameters:
  - ctx: Lifetime of every connection; request contexts end at the upgrade
  - originAllowed: Origin policy shared with CORS. Requests without an Origin are accepted
*/
func NewHandler(ctx context.Context, hub *Hub, cfg config.RealtimeConfig, originAllowed func(origin string) bool, logger *slog.Logger) *Handler {
	return &Handler{
		ctx:    ctx,
		hub:    hub,
		config: cfg,
		logger: logger.With(slog.String("component", "realtime")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  constants.RealtimeSocketBufferSize,
			WriteBufferSize: constants.RealtimeSocketBufferSize,
			CheckOrigin: func(request *http.Request) bool {
				origin := request.Header.Get(constants.HeaderOrigin)
				return origin == "" || originAllowed(origin)
			},
		},
	}
}

/*
ServeHTTP handles GET /ws.

Description: The connection starts unauthenticated; the first frame is
expected to be an auth frame.
*/
func (handler *Handler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	ws, err := handler.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		// The upgrader has already written an HTTP error.
		ctxutil.GetLogger(request.Context()).Debug("websocket_upgrade_failed", slog.Any("error", err))
		return
	}

	client := NewClient(ws, handler.config)

	conn, err := handler.hub.Open(request.Context(), client)
	if err != nil {
		handler.logger.Warn("connection_open_failed", slog.Any("error", err))
		_ = ws.Close()
		return
	}

	pumpCtx := ctxutil.WithLogAttrs(ctxutil.WithLogger(handler.ctx, handler.logger),
		slog.String("handle", conn.Handle),
		slog.String("request_id", ctxutil.GetRequestID(request.Context())),
	)

	go client.WritePump()
	go client.ReadPump(pumpCtx, handler.hub, conn)
}
