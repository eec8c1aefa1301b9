// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Message types of the push channel.
const (
	MessageSubscribe    = "subscribe"
	MessageUnsubscribe  = "unsubscribe"
	MessageSubscribed   = "subscribed"
	MessageUnsubscribed = "unsubscribed"
	MessageEvent        = "event"
	MessageError        = "error"
)

// RealtimeMessage is a frame of the push channel. Clients send subscribe and
// unsubscribe frames; the server answers with subscribed, unsubscribed or
// error frames and delivers one event frame per matching subscription.
type RealtimeMessage struct {
	Type  string         `json:"type"`
	Topic string         `json:"topic,omitempty"`
	Event *MutationEvent `json:"event,omitempty"`
	Error string         `json:"error,omitempty"`
}
