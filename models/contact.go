// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MessageStatus is the admin-side processing state of a contact message.
type MessageStatus string

const (
	MessageUnread  MessageStatus = "unread"
	MessageRead    MessageStatus = "read"
	MessageReplied MessageStatus = "replied"
)

// ContactMessage is a message left by a visitor through the public contact
// form. IP is the caller address the message was received from.
type ContactMessage struct {
	Meta

	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Subject string        `json:"subject"`
	Message string        `json:"message"`
	Status  MessageStatus `json:"status"`
	IP      string        `json:"ip"`
}

func (m *ContactMessage) ApplyDefaults() {
	if m.Status == "" {
		m.Status = MessageUnread
	}
}

// ContactRequest is the public contact form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// StatusUpdateRequest changes the status of a contact message.
type StatusUpdateRequest struct {
	Status MessageStatus `json:"status"`
}

// BlockedIP is an address whose contact submissions are rejected.
// Membership is an exact string match; there are no ranges and no expiry.
type BlockedIP struct {
	Meta

	IP        string    `json:"ip"`
	Reason    string    `json:"reason"`
	BlockedBy string    `json:"blocked_by"`
	BlockedAt time.Time `json:"blocked_at"`
}

// BlockIPRequest is the admin payload for adding an address to the block list.
type BlockIPRequest struct {
	IP     string `json:"ip"`
	Reason string `json:"reason"`
}

// RateLimitResponse is returned with HTTP 429 when a caller submits
// too many contact messages.
type RateLimitResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after"`
}

// BlockedResponse is returned with HTTP 403 when the caller IP is blocked.
type BlockedResponse struct {
	Error   string `json:"error"`
	Blocked bool   `json:"blocked"`
}

// UnreadCountResponse reports the number of unread contact messages.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}
