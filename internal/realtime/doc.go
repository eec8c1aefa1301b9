// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtime implements the server side of the push channel.
//
// A [Hub] accepts websocket connections, keeps the topics every connection
// subscribed to and fans published [models.MutationEvent] values out to the
// connections whose topics match. A connection that cannot keep up with its
// send buffer is closed rather than allowed to slow the publisher down.
package realtime
