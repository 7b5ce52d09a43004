// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the staff terminal client runtime.
//
// It ties the sign-in screen, the register screens and the periodic
// refresh worker into one process lifecycle.
package client
