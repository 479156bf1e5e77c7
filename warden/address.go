// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package warden

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// AddressLength is the size of an account address in bytes.
const AddressLength = common.AddressLength

// Address identifies an account: an owner, a node, a treasury owner or one of
// the native contracts. It renders as 0x-prefixed lower case hex in JSON, YAML
// and as a JSON map key.
type Address common.Address

func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }

// Bytes returns a copy-free slice over the address.
func (a Address) Bytes() []byte { return a[:] }

func (a Address) IsZero() bool { return a == Address{} }

func (a Address) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Address) UnmarshalText(text []byte) error {
	return decodeFixedHex(string(text), a[:])
}

// ParseAddress accepts 40 hex digits, with or without the 0x prefix.
func ParseAddress(s string) (Address, error) {
	var a Address
	if err := decodeFixedHex(s, a[:]); err != nil {
		return Address{}, err
	}
	return a, nil
}

// MustParseAddress is ParseAddress for literals, it panics on malformed input.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// BytesToAddress keeps the trailing AddressLength bytes of b, left padding with zeros when b is shorter.
func BytesToAddress(b []byte) Address {
	return Address(common.BytesToAddress(b))
}

// decodeFixedHex fills dst from s, which must hold exactly len(dst) bytes of hex.
func decodeFixedHex(s string, dst []byte) error {
	if len(s) == len(dst)*2+2 {
		if !strings.EqualFold(s[:2], "0x") {
			return errors.New("invalid prefix")
		}
		s = s[2:]
	}
	if len(s) != len(dst)*2 {
		return errors.Errorf("invalid length, want %d hex digits", len(dst)*2)
	}
	if _, err := hex.Decode(dst, []byte(s)); err != nil {
		return errors.Wrap(err, "invalid hex")
	}
	return nil
}
