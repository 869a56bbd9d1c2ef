// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime

import (
	"encoding/json"
	"time"
)

// # Frame Types

// Inbound frame types.
const (
	TypeAuth               = "auth"
	TypeJoinTicketRoom     = "join_ticket_room"
	TypeLeaveTicketRoom    = "leave_ticket_room"
	TypeTicketMessageSent  = "ticket_message_sent"
	TypePrivateMessageSent = "private_message_sent"
)

// Outbound frame types.
const (
	TypeAuthError              = "auth_error"
	TypeError                  = "error"
	TypeTicketMessageReceived  = "ticket_message_received"
	TypePrivateMessageReceived = "private_message_received"
	TypePresenceUpdate         = "presence_update"
	TypeTicketUpdated          = "ticket_updated"
)

// # Inbound Frames

// Envelope carries only the discriminator of an inbound frame.
type Envelope struct {
	Type string `json:"type"`
}

// AuthFrame presents a credential. Either field may be empty.
type AuthFrame struct {
	Token   string `json:"token,omitempty"`
	ActorID string `json:"actorId,omitempty"`
}

// RoomFrame names a ticket room to join or leave.
type RoomFrame struct {
	TicketID string `json:"ticketId"`
}

// TicketMessageSentFrame is a chat line a client relays to a ticket room.
type TicketMessageSentFrame struct {
	TicketID       string `json:"ticketId"`
	MessageID      string `json:"messageId,omitempty"`
	Body           string `json:"body"`
	AttachmentURL  string `json:"attachmentUrl,omitempty"`
	AttachmentName string `json:"attachmentName,omitempty"`
}

// PrivateMessageSentFrame is a direct message to another actor.
type PrivateMessageSentFrame struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// # Outbound Frames

// ErrorFrame reports a rejected frame. Type is auth_error or error.
type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// TicketMessageReceived is fanned out to every member of a ticket room.
type TicketMessageReceived struct {
	Type           string    `json:"type"`
	TicketID       string    `json:"ticketId"`
	MessageID      string    `json:"messageId,omitempty"`
	Body           string    `json:"body"`
	AttachmentURL  string    `json:"attachmentUrl,omitempty"`
	AttachmentName string    `json:"attachmentName,omitempty"`
	SenderID       string    `json:"senderId"`
	SenderName     string    `json:"senderName"`
	SenderRole     string    `json:"senderRole"`
	SentAt         time.Time `json:"sentAt"`
}

// NewTicketMessageReceived stamps a chat line with its sender.
func NewTicketMessageReceived(sent TicketMessageSentFrame, sender Actor, sentAt time.Time) TicketMessageReceived {
	return TicketMessageReceived{
		Type:           TypeTicketMessageReceived,
		TicketID:       sent.TicketID,
		MessageID:      sent.MessageID,
		Body:           sent.Body,
		AttachmentURL:  sent.AttachmentURL,
		AttachmentName: sent.AttachmentName,
		SenderID:       sender.ID,
		SenderName:     sender.Name,
		SenderRole:     sender.Role,
		SentAt:         sentAt.UTC(),
	}
}

// PrivateMessageReceived is delivered to the target and echoed to the sender.
type PrivateMessageReceived struct {
	Type     string    `json:"type"`
	From     string    `json:"from"`
	FromName string    `json:"fromName"`
	To       string    `json:"to"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sentAt"`
}

// PresenceAgent is one staff actor in a presence snapshot.
type PresenceAgent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// PresenceUpdate lists every connected staff actor.
type PresenceUpdate struct {
	Type   string          `json:"type"`
	Agents []PresenceAgent `json:"agents"`
}

// TicketUpdated tells a ticket room that ticket fields changed.
type TicketUpdated struct {
	Type            string    `json:"type"`
	TicketID        string    `json:"ticketId"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	AssignedAgentID string    `json:"assignedAgentId,omitempty"`
	UpdatedBy       string    `json:"updatedBy"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// # Codec

func encodeFrame(frame any) ([]byte, error) {
	return json.Marshal(frame)
}

func decodeFrame(raw []byte, target any) error {
	return json.Unmarshal(raw, target)
}
