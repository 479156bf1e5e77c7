// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package warden

// NamedAddress derives a stable account address from a name, the same way for every deployment.
func NamedAddress(name string) Address {
	h := Keccak256([]byte(name))
	return BytesToAddress(h[12:])
}

// Well-known addresses of the native contracts. They never change across logic upgrades,
// all contract state is read and written under them.
var (
	BlockSignerAddress = BytesToAddress([]byte{0x89})
	RewardsAddress     = NamedAddress("Rewards")
	TreasuryAddress    = NamedAddress("Treasury")
)
