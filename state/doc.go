// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state keeps the storage of native contracts and the native balances of accounts.
//
// Every contract owns the storage slots under its own address. A slot is addressed by a
// 32-byte key derived from a stable name, so replacing the Go logic that operates on a
// contract never changes where its data lives.
package state
