// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It restores the remembered session or runs the login flow, then runs the
// feed screens until the user quits. Logging out returns to the login flow.
package client
