// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/builtin/rewards"
	"github.com/standby-warden/warden/warden"
)

type Engine struct {
	Owner               warden.Address   `json:"owner"`
	Ledger              warden.Address   `json:"ledger"`
	Treasury            warden.Address   `json:"treasury"`
	CurrentEpoch        uint64           `json:"currentEpoch"`
	SlashWindow         uint64           `json:"slashWindow"`
	RewardTransferEpoch uint64           `json:"rewardTransferEpoch"`
	Formula             string           `json:"formula"`
	SchemaVersion       uint64           `json:"schemaVersion"`
	Payees              []warden.Address `json:"payees"`
}

type Epoch struct {
	Epoch          uint64 `json:"epoch"`
	Computed       bool   `json:"computed"`
	TotalConfirmed uint64 `json:"totalConfirmed"`
}

type Window struct {
	Size        uint64 `json:"size"`
	Misses      uint64 `json:"misses"`
	CleanStreak uint64 `json:"cleanStreak"`
	LastEpoch   uint64 `json:"lastEpoch"`
}

type Node struct {
	Node          warden.Address        `json:"node"`
	Whitelisted   bool                  `json:"whitelisted"`
	Slashed       bool                  `json:"slashed"`
	PendingReward *math.HexOrDecimal256 `json:"pendingReward"`
	Window        *Window               `json:"window"`
	// set when queried with an epoch
	Epoch    *uint64 `json:"epoch,omitempty"`
	Computed *bool   `json:"computed,omitempty"`
	Verified *uint64 `json:"verified,omitempty"`
}

type NodeReward struct {
	Node     warden.Address        `json:"node"`
	Verified uint64                `json:"verified"`
	Slashed  bool                  `json:"slashed"`
	Reward   *math.HexOrDecimal256 `json:"reward"`
}

type Transfer struct {
	Node          warden.Address        `json:"node"`
	Amount        *math.HexOrDecimal256 `json:"amount"`
	TransactionID uint64                `json:"transactionId"`
}

type Calculation struct {
	Receipt        *utils.Receipt `json:"receipt"`
	Epoch          uint64         `json:"epoch"`
	TotalConfirmed uint64         `json:"totalConfirmed"`
	Nodes          []*NodeReward  `json:"nodes"`
	Transfers      []*Transfer    `json:"transfers"`
}

func convertCalculation(receipt *utils.Receipt, result *rewards.Result) *Calculation {
	calc := &Calculation{
		Receipt:        receipt,
		Epoch:          result.Epoch,
		TotalConfirmed: result.TotalConfirmed,
		Nodes:          make([]*NodeReward, 0, len(result.Nodes)),
		Transfers:      make([]*Transfer, 0, len(result.Transfers)),
	}
	for _, n := range result.Nodes {
		calc.Nodes = append(calc.Nodes, &NodeReward{
			Node:     n.Node,
			Verified: n.Verified,
			Slashed:  n.Slashed,
			Reward:   utils.Amount(n.Reward),
		})
	}
	for _, tr := range result.Transfers {
		calc.Transfers = append(calc.Transfers, &Transfer{
			Node:          tr.Node,
			Amount:        utils.Amount(tr.Amount),
			TransactionID: tr.TransactionID,
		})
	}
	return calc
}

type CalculateRequest struct {
	Caller       warden.Address        `json:"caller"`
	ChainReward  *math.HexOrDecimal256 `json:"chainReward"`
	BlockHashes  []warden.Bytes32      `json:"blockHashes"`
	StandbyNodes []warden.Address      `json:"standbyNodes"`
	Epoch        uint64                `json:"epoch"`
}

func (r *CalculateRequest) CallerAddress() warden.Address { return r.Caller }

type AddressRequest struct {
	Caller  warden.Address `json:"caller"`
	Address warden.Address `json:"address"`
}

func (r *AddressRequest) CallerAddress() warden.Address { return r.Caller }

type EpochRequest struct {
	Caller warden.Address `json:"caller"`
	Epoch  uint64         `json:"epoch"`
}

func (r *EpochRequest) CallerAddress() warden.Address { return r.Caller }

type FormulaRequest struct {
	Caller  warden.Address `json:"caller"`
	Formula string         `json:"formula"`
}

func (r *FormulaRequest) CallerAddress() warden.Address { return r.Caller }
