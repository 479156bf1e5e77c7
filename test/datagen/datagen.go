// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package datagen produces random fixtures for tests.
package datagen

import (
	"crypto/ecdsa"
	"crypto/rand"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/standby-warden/warden/warden"
)

func fill(b []byte) {
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
}

// RandomHash returns a random block hash.
func RandomHash() (h warden.Bytes32) {
	fill(h[:])
	return
}

// RandomHashes returns n random block hashes.
func RandomHashes(n int) []warden.Bytes32 {
	out := make([]warden.Bytes32, n)
	for i := range out {
		out[i] = RandomHash()
	}
	return out
}

// RandomAddress returns a random, never zero, address.
func RandomAddress() (a warden.Address) {
	for a.IsZero() {
		fill(a[:])
	}
	return
}

// RandomAddresses returns n distinct random addresses, usable as a node set.
func RandomAddresses(n int) []warden.Address {
	seen := make(map[warden.Address]struct{}, n)
	out := make([]warden.Address, 0, n)
	for len(out) < n {
		a := RandomAddress()
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// RandomAccount returns a fresh key and the address it signs for.
func RandomAccount() (warden.Address, *ecdsa.PrivateKey) {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return warden.Address(crypto.PubkeyToAddress(key.PublicKey)), key
}
