// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/standby-warden/warden/builtin/reverts"
	"github.com/standby-warden/warden/builtin/solidity"
	"github.com/standby-warden/warden/warden"
)

// CalculateRewards computes the rewards of epoch, which must directly follow the current epoch.
//
// Every listed node is credited its share of chainReward according to the confirmations it
// recorded on blockHashes, unless its window shows a miss. When epoch is a multiple of the
// reward transfer epoch, all pending balances are queued in the treasury and reset.
// Any error leaves the caller to revert the state to where the call started.
func (r *Rewards) CalculateRewards(
	caller warden.Address,
	chainReward *big.Int,
	blockHashes []warden.Bytes32,
	standbyNodes []warden.Address,
	epoch uint64,
) (*Result, error) {
	if err := r.requireInitialized(); err != nil {
		return nil, err
	}
	if ok, err := r.whitelist.Get(caller); err != nil {
		return nil, err
	} else if !ok {
		return nil, reverts.ErrNotWhitelisted
	}
	if chainReward == nil || chainReward.Sign() < 0 {
		return nil, reverts.ErrInvalidArgument
	}
	current, err := r.currentEpoch.Get()
	if err != nil {
		return nil, err
	}
	// current+1 would wrap to 0 past the last epoch
	if current == math.MaxUint64 || epoch != current+1 {
		return nil, reverts.ErrInvalidEpoch
	}
	if done, err := r.epochComputed.Get(solidity.Uint64Key(epoch)); err != nil {
		return nil, err
	} else if done {
		return nil, reverts.ErrInvalidEpoch
	}

	nodes := dedupNodes(standbyNodes)
	for _, n := range nodes {
		if n.IsZero() {
			return nil, reverts.ErrInvalidArgument
		}
	}

	counts, err := r.countConfirmations(blockHashes, nodes)
	if err != nil {
		return nil, err
	}
	var total uint64
	for _, n := range nodes {
		total += counts[n]
	}

	epochKey := solidity.Uint64Key(epoch)
	for _, n := range nodes {
		if err := r.verifiedBlocks.Set(solidity.PairKey(epochKey, n), counts[n]); err != nil {
			return nil, err
		}
	}
	if err := r.confirmed.Set(epochKey, total); err != nil {
		return nil, err
	}

	formula, err := r.loadFormula()
	if err != nil {
		return nil, err
	}
	window, err := r.slashWindow.Get()
	if err != nil {
		return nil, err
	}

	result := &Result{Epoch: epoch, TotalConfirmed: total}
	for _, n := range nodes {
		nr, err := r.processNode(epoch, n, counts[n], total, chainReward, window, formula)
		if err != nil {
			return nil, errors.WithMessagef(err, "process node %v", n)
		}
		result.Nodes = append(result.Nodes, nr)
	}

	if err := r.epochComputed.Set(epochKey, true); err != nil {
		return nil, err
	}
	r.currentEpoch.Set(epoch)

	r.context.Emit("RewardsCalculated", []warden.Bytes32{warden.BytesToBytes32(epochKey.Bytes())}, map[string]any{
		"epoch":          epoch,
		"chainReward":    chainReward.String(),
		"totalConfirmed": total,
		"nodes":          len(nodes),
	})

	cadence, err := r.transferEpoch.Get()
	if err != nil {
		return nil, err
	}
	if cadence != 0 && epoch%cadence == 0 {
		if result.Transfers, err = r.transferRewards(epoch); err != nil {
			return nil, err
		}
	}

	logger.Debug("rewards calculated",
		"epoch", epoch,
		"nodes", len(nodes),
		"confirmed", total,
		"distributed", result.Distributed(),
		"slashed", result.SlashedCount(),
		"transfers", len(result.Transfers),
	)
	return result, nil
}

func (r *Rewards) countConfirmations(blockHashes []warden.Bytes32, nodes []warden.Address) (map[warden.Address]uint64, error) {
	addr, err := r.ledger.Get()
	if err != nil {
		return nil, err
	}
	ledger, err := r.contracts.Ledger(addr)
	if err != nil {
		return nil, errors.WithMessage(err, "resolve ledger")
	}
	return ledger.CountConfirmations(blockHashes, nodes)
}

func (r *Rewards) processNode(
	epoch uint64,
	node warden.Address,
	verified, total uint64,
	chainReward *big.Int,
	size uint64,
	formula Formula,
) (*NodeReward, error) {
	w, err := r.windows.Get(node)
	if err != nil {
		return nil, err
	}
	if w.Size == 0 {
		// first evaluation starts from a clean record
		w = NewWindow(size, epoch-1)
	}
	w.Record(epoch, verified > 0)
	if err := r.windows.Set(node, w); err != nil {
		return nil, err
	}
	slashed := w.Slashed()

	reward := formula.Reward(chainReward, verified, total, slashed)
	if reward.Sign() > 0 {
		bal, err := r.PendingReward(node)
		if err != nil {
			return nil, err
		}
		if err := r.pending.Set(node, bal.Add(bal, reward)); err != nil {
			return nil, err
		}
		if err := r.addPayee(node); err != nil {
			return nil, err
		}
	}
	if err := r.nodeComputed.Set(solidity.PairKey(solidity.Uint64Key(epoch), node), true); err != nil {
		return nil, err
	}

	nodeTopic := warden.BytesToBytes32(node.Bytes())
	if slashed {
		r.context.Emit("NodeSlashed", []warden.Bytes32{nodeTopic}, map[string]any{
			"epoch":    epoch,
			"node":     node,
			"verified": verified,
			"misses":   w.Misses,
		})
	} else {
		r.context.Emit("NodeRewarded", []warden.Bytes32{nodeTopic}, map[string]any{
			"epoch":    epoch,
			"node":     node,
			"verified": verified,
			"reward":   reward.String(),
		})
	}
	return &NodeReward{Node: node, Verified: verified, Slashed: slashed, Reward: reward}, nil
}

// transferRewards queues every pending balance as a treasury transaction and resets it.
func (r *Rewards) transferRewards(epoch uint64) ([]*Transfer, error) {
	payees, err := r.Payees()
	if err != nil {
		return nil, err
	}
	if len(payees) == 0 {
		return nil, nil
	}
	addr, err := r.treasury.Get()
	if err != nil {
		return nil, err
	}
	if addr.IsZero() {
		return nil, reverts.ErrTreasuryNotSet
	}
	treasury, err := r.contracts.Treasury(addr)
	if err != nil {
		return nil, errors.WithMessage(err, "resolve treasury")
	}

	var transfers []*Transfer
	for _, node := range payees {
		bal, err := r.PendingReward(node)
		if err != nil {
			return nil, err
		}
		if bal.Sign() == 0 {
			continue
		}
		id, err := treasury.CreateTransaction(r.Address(), node, bal)
		if err != nil {
			return nil, errors.WithMessagef(err, "queue reward of %v", node)
		}
		r.pending.Delete(node)
		transfers = append(transfers, &Transfer{Node: node, Amount: bal, TransactionID: id})

		r.context.Emit("RewardTransferred", []warden.Bytes32{warden.BytesToBytes32(node.Bytes())}, map[string]any{
			"epoch":         epoch,
			"node":          node,
			"amount":        bal.String(),
			"transactionId": id,
		})
	}
	r.clearPayees(payees)
	return transfers, nil
}

func dedupNodes(nodes []warden.Address) []warden.Address {
	seen := make(map[warden.Address]bool, len(nodes))
	list := make([]warden.Address, 0, len(nodes))
	for _, n := range nodes {
		if seen[n] {
			continue
		}
		seen[n] = true
		list = append(list, n)
	}
	return list
}
