// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tellnab/tellnab/internal/platform/constants"
)

// BridgeEnvelope is the message published on the relay channel.
type BridgeEnvelope struct {
	TicketID string          `json:"ticketId"`
	Payload  json.RawMessage `json:"payload"`
}

// EncodeBridgeEnvelope wraps an outbound room frame for publication.
func EncodeBridgeEnvelope(ticketID string, frame any) ([]byte, error) {
	payload, err := encodeFrame(frame)
	if err != nil {
		return nil, fmt.Errorf("realtime_bridge_encode_frame: %w", err)
	}
	return json.Marshal(BridgeEnvelope{TicketID: ticketID, Payload: payload})
}

// DecodeBridgeEnvelope parses a published envelope.
func DecodeBridgeEnvelope(data []byte) (BridgeEnvelope, error) {
	var envelope BridgeEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return BridgeEnvelope{}, err
	}
	if envelope.TicketID == "" || len(envelope.Payload) == 0 {
		return BridgeEnvelope{}, errors.New("realtime: incomplete bridge envelope")
	}
	return envelope, nil
}

// # Publisher

// RedisNotifier publishes ticket room frames so that every process relays them.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier constructs a [RedisNotifier] on channel.
func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

// NotifyTicketMessage publishes frame for the ticket's room.
func (notifier *RedisNotifier) NotifyTicketMessage(ctx context.Context, ticketID string, frame any) error {
	data, err := EncodeBridgeEnvelope(ticketID, frame)
	if err != nil {
		return err
	}
	if err := notifier.client.Publish(ctx, notifier.channel, data).Err(); err != nil {
		return fmt.Errorf("realtime_bridge_publish_failed: %w", err)
	}
	return nil
}

// # Subscriber

// RedisSubscriber feeds frames from the relay channel into the local hub.
type RedisSubscriber struct {
	client  *redis.Client
	channel string
	hub     *Hub
	logger  *slog.Logger
	retry   time.Duration
}

// NewRedisSubscriber constructs a [RedisSubscriber].
func NewRedisSubscriber(client *redis.Client, channel string, hub *Hub, logger *slog.Logger) *RedisSubscriber {
	return &RedisSubscriber{
		client:  client,
		channel: channel,
		hub:     hub,
		logger:  logger.With(slog.String("component", "realtime_bridge")),
		retry:   constants.RealtimeResubscribeDelay,
	}
}

// Run subscribes until ctx is done, resubscribing after receive errors.
func (subscriber *RedisSubscriber) Run(ctx context.Context) {
	for {
		err := subscriber.subscribe(ctx)
		if ctx.Err() != nil {
			return
		}

		subscriber.logger.Warn("bridge_subscription_lost", slog.Any("error", err), slog.Duration("retry_in", subscriber.retry))
		select {
		case <-ctx.Done():
			return
		case <-time.After(subscriber.retry):
		}
	}
}

func (subscriber *RedisSubscriber) subscribe(ctx context.Context) error {
	pubsub := subscriber.client.Subscribe(ctx, subscriber.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	subscriber.logger.Info("bridge_subscribed", slog.String("channel", subscriber.channel))

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case message, ok := <-messages:
			if !ok {
				return errors.New("realtime: bridge channel closed")
			}
			subscriber.handle(ctx, message.Payload)
		}
	}
}

func (subscriber *RedisSubscriber) handle(ctx context.Context, payload string) {
	envelope, err := DecodeBridgeEnvelope([]byte(payload))
	if err != nil {
		subscriber.logger.Warn("bridge_payload_invalid", slog.Any("error", err))
		return
	}

	if err := subscriber.hub.RelayEncoded(ctx, envelope.TicketID, envelope.Payload); err != nil {
		subscriber.logger.Debug("bridge_relay_failed", slog.String("ticket_id", envelope.TicketID), slog.Any("error", err))
	}
}
