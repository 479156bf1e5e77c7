// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/standby-warden/warden/warden"
)

// Ledger is the part of the confirmation ledger the engine reads.
type Ledger interface {
	Address() warden.Address
	CountConfirmations(blockHashes []warden.Bytes32, nodes []warden.Address) (map[warden.Address]uint64, error)
}

// Treasury is the part of the treasury the engine writes.
type Treasury interface {
	Address() warden.Address
	CreateTransaction(caller, to warden.Address, value *big.Int) (uint64, error)
}

// Contracts resolves collaborating contracts by address.
type Contracts interface {
	Ledger(addr warden.Address) (Ledger, error)
	Treasury(addr warden.Address) (Treasury, error)
}

// NodeReward is the outcome of one node in an epoch computation.
type NodeReward struct {
	Node     warden.Address `json:"node"`
	Verified uint64         `json:"verified"`
	Slashed  bool           `json:"slashed"`
	Reward   *big.Int       `json:"reward"`
}

// Transfer is a payout queued in the treasury.
type Transfer struct {
	Node          warden.Address `json:"node"`
	Amount        *big.Int       `json:"amount"`
	TransactionID uint64         `json:"transactionId"`
}

// Result summarizes a successful epoch computation.
type Result struct {
	Epoch          uint64        `json:"epoch"`
	TotalConfirmed uint64        `json:"totalConfirmed"`
	Nodes          []*NodeReward `json:"nodes"`
	Transfers      []*Transfer   `json:"transfers"`
}

// Distributed returns the sum of all rewards of the epoch.
func (r *Result) Distributed() *big.Int {
	sum := new(big.Int)
	for _, n := range r.Nodes {
		sum.Add(sum, n.Reward)
	}
	return sum
}

// SlashedCount returns the number of slashed nodes of the epoch.
func (r *Result) SlashedCount() int {
	var n int
	for _, node := range r.Nodes {
		if node.Slashed {
			n++
		}
	}
	return n
}

type payeeEntry struct {
	Listed bool
	Next   *warden.Address `rlp:"nil"`
}
