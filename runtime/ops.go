// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"context"
	"math/big"

	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/builtin/reverts"
	"github.com/standby-warden/warden/builtin/rewards"
	"github.com/standby-warden/warden/state"
	"github.com/standby-warden/warden/warden"
)

// Transfer moves native value from the caller's balance.
func (rt *Runtime) Transfer(ctx context.Context, caller, to warden.Address, amount *big.Int) (*Receipt, error) {
	return rt.exec(ctx, "transfer", caller, func(st *state.State, _ *builtin.Contracts, transfers *[]*Transfer) error {
		if to.IsZero() || amount == nil || amount.Sign() <= 0 {
			return reverts.ErrInvalidArgument
		}
		from, err := st.GetBalance(caller)
		if err != nil {
			return err
		}
		if from.Cmp(amount) < 0 {
			return reverts.ErrInsufficientFunds
		}
		if err := st.SetBalance(caller, from.Sub(from, amount)); err != nil {
			return err
		}
		bal, err := st.GetBalance(to)
		if err != nil {
			return err
		}
		if err := st.SetBalance(to, bal.Add(bal, amount)); err != nil {
			return err
		}
		*transfers = append(*transfers, &Transfer{Sender: caller, Recipient: to, Amount: new(big.Int).Set(amount)})
		return nil
	})
}

// Sign records the caller's confirmation of a block in the ledger.
func (rt *Runtime) Sign(ctx context.Context, caller warden.Address, blockIndex uint64, blockHash warden.Bytes32) (*Receipt, error) {
	return rt.exec(ctx, "sign", caller, func(_ *state.State, c *builtin.Contracts, _ *[]*Transfer) error {
		return c.BlockSigner.Sign(caller, blockIndex, blockHash)
	})
}

// CalculateRewards computes the rewards of epoch.
func (rt *Runtime) CalculateRewards(
	ctx context.Context,
	caller warden.Address,
	chainReward *big.Int,
	blockHashes []warden.Bytes32,
	standbyNodes []warden.Address,
	epoch uint64,
) (*Receipt, *rewards.Result, error) {
	var result *rewards.Result
	receipt, err := rt.exec(ctx, "calculateRewards", caller, func(_ *state.State, c *builtin.Contracts, _ *[]*Transfer) (err error) {
		result, err = c.Rewards.CalculateRewards(caller, chainReward, blockHashes, standbyNodes, epoch)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	recordEpoch(result)
	return receipt, result, nil
}

func (rt *Runtime) TransferOwnership(ctx context.Context, caller, newOwner warden.Address) (*Receipt, error) {
	return rt.exec(ctx, "transferOwnership", caller, func(_ *state.State, c *builtin.Contracts, _ *[]*Transfer) error {
		return c.Rewards.TransferOwnership(caller, newOwner)
	})
}

func (rt *Runtime) SetTreasuryAddress(ctx context.Context, caller, addr warden.Address) (*Receipt, error) {
	return rt.exec(ctx, "setTreasuryAddress", caller, func(_ *state.State, c *builtin.Contracts, _ *[]*Transfer) error {
		return c.Rewards.SetTreasuryAddress(caller, addr)
	})
}

func (rt *Runtime) AddWhitelisted(ctx context.Context, caller, addr warden.Address) (*Receipt, error) {
	return rt.exec(ctx, "addWhitelisted", caller, func(_ *state.State, c *builtin.Contracts, _ *[]*Transfer) error {
		return c.Rewards.AddWhitelisted(caller, addr)
	})
}

func (rt *Runtime) RemoveWhitelisted(ctx context.Context, caller, addr warden.Address) (*Receipt, error) {
	return rt.exec(ctx, "removeWhitelisted", caller, func(_ *state.State, c *builtin.Contracts, _ *[]*Transfer) error {
		return c.Rewards.RemoveWhitelisted(caller, addr)
	})
}

func (rt *Runtime) SetCurrentEpochByOwner(ctx context.Context, caller warden.Address, epoch uint64) (*Receipt, error) {
	return rt.exec(ctx, "setCurrentEpochByOwner", caller, func(_ *state.State, c *builtin.Contracts, _ *[]*Transfer) error {
		return c.Rewards.SetCurrentEpochByOwner(caller, epoch)
	})
}

func (rt *Runtime) SetRewardTransferEpoch(ctx context.Context, caller warden.Address, n uint64) (*Receipt, error) {
	return rt.exec(ctx, "setRewardTransferEpoch", caller, func(_ *state.State, c *builtin.Contracts, _ *[]*Transfer) error {
		return c.Rewards.SetRewardTransferEpoch(caller, n)
	})
}

func (rt *Runtime) SetFormula(ctx context.Context, caller warden.Address, name string) (*Receipt, error) {
	return rt.exec(ctx, "setFormula", caller, func(_ *state.State, c *builtin.Contracts, _ *[]*Transfer) error {
		return c.Rewards.SetFormula(caller, name)
	})
}

// CreateTransaction submits a treasury transaction, returning its id.
func (rt *Runtime) CreateTransaction(ctx context.Context, caller, to warden.Address, value *big.Int) (*Receipt, uint64, error) {
	var id uint64
	receipt, err := rt.exec(ctx, "createTransaction", caller, func(_ *state.State, c *builtin.Contracts, _ *[]*Transfer) (err error) {
		id, err = c.Treasury.CreateTransaction(caller, to, value)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return receipt, id, nil
}

// ConfirmTransaction confirms a treasury transaction, executing it on quorum.
func (rt *Runtime) ConfirmTransaction(ctx context.Context, caller warden.Address, id uint64) (*Receipt, error) {
	return rt.exec(ctx, "confirmTransaction", caller, func(_ *state.State, c *builtin.Contracts, _ *[]*Transfer) error {
		return c.Treasury.ConfirmTransaction(caller, id)
	})
}
