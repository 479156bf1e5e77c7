// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the native contracts to their fixed addresses.
package builtin

import (
	"github.com/pkg/errors"

	"github.com/standby-warden/warden/builtin/blocksigner"
	"github.com/standby-warden/warden/builtin/rewards"
	"github.com/standby-warden/warden/builtin/solidity"
	"github.com/standby-warden/warden/builtin/treasury"
	"github.com/standby-warden/warden/state"
	"github.com/standby-warden/warden/warden"
)

// Builtin contracts binding.
var (
	BlockSigner = &blockSignerContract{contract{"BlockSigner", warden.BlockSignerAddress}}
	Rewards     = &rewardsContract{contract{"Rewards", warden.RewardsAddress}}
	Treasury    = &treasuryContract{contract{"Treasury", warden.TreasuryAddress}}
)

type contract struct {
	Name    string
	Address warden.Address
}

type (
	blockSignerContract struct{ contract }
	rewardsContract     struct{ contract }
	treasuryContract    struct{ contract }
)

func (b *blockSignerContract) Native(state *state.State, emit solidity.EmitFunc) *blocksigner.BlockSigner {
	return blocksigner.New(b.Address, state, emit)
}

func (r *rewardsContract) Native(state *state.State, emit solidity.EmitFunc) *rewards.Rewards {
	return rewards.New(r.Address, state, emit, &resolver{state, emit})
}

func (t *treasuryContract) Native(state *state.State, emit solidity.EmitFunc) *treasury.Treasury {
	return treasury.New(t.Address, state, emit)
}

// Contracts is the set of native contracts bound over one state.
type Contracts struct {
	BlockSigner *blocksigner.BlockSigner
	Rewards     *rewards.Rewards
	Treasury    *treasury.Treasury
}

// New binds all native contracts over state. Events go to emit, which may be nil.
func New(state *state.State, emit solidity.EmitFunc) *Contracts {
	return &Contracts{
		BlockSigner: BlockSigner.Native(state, emit),
		Rewards:     Rewards.Native(state, emit),
		Treasury:    Treasury.Native(state, emit),
	}
}

// NameOf returns the name of the native contract at addr.
func NameOf(addr warden.Address) (string, bool) {
	for _, c := range []contract{BlockSigner.contract, Rewards.contract, Treasury.contract} {
		if c.Address == addr {
			return c.Name, true
		}
	}
	return "", false
}

// resolver lets the reward engine reach the other contracts at their stored addresses.
type resolver struct {
	state *state.State
	emit  solidity.EmitFunc
}

func (r *resolver) Ledger(addr warden.Address) (rewards.Ledger, error) {
	if addr != BlockSigner.Address {
		return nil, errors.Errorf("no ledger contract at %v", addr)
	}
	return BlockSigner.Native(r.state, r.emit), nil
}

func (r *resolver) Treasury(addr warden.Address) (rewards.Treasury, error) {
	if addr != Treasury.Address {
		return nil, errors.Errorf("no treasury contract at %v", addr)
	}
	return Treasury.Native(r.state, r.emit), nil
}
