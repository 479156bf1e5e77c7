// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package blocksigner implements the confirmation ledger: standby nodes record which block
// hash they saw at a block index, and the reward engine counts those records.
package blocksigner

import (
	"github.com/pkg/errors"

	"github.com/standby-warden/warden/builtin/reverts"
	"github.com/standby-warden/warden/builtin/solidity"
	"github.com/standby-warden/warden/log"
	"github.com/standby-warden/warden/state"
	"github.com/standby-warden/warden/warden"
)

var logger = log.WithContext("pkg", "blocksigner")

var (
	slotInitialized = solidity.NameToSlot("initialized")
	slotEpochNumber = solidity.NameToSlot("epoch-number")
	slotSigners     = solidity.NameToSlot("block-signers")
	slotBlocks      = solidity.NameToSlot("blocks")
)

// BlockSigner implements native methods of `BlockSigner` contract.
type BlockSigner struct {
	context     *solidity.Context
	initialized *solidity.Bool
	epochNumber *solidity.Uint64
	signers     *solidity.Mapping[warden.Bytes32, []warden.Address]
	blocks      *solidity.Mapping[solidity.Uint64Key, []warden.Bytes32]
}

// New create a new instance.
func New(addr warden.Address, state *state.State, emit solidity.EmitFunc) *BlockSigner {
	ctx := solidity.NewContext(addr, state, emit)
	return &BlockSigner{
		context:     ctx,
		initialized: solidity.NewBool(ctx, slotInitialized),
		epochNumber: solidity.NewUint64(ctx, slotEpochNumber),
		signers:     solidity.NewMapping[warden.Bytes32, []warden.Address](ctx, slotSigners),
		blocks:      solidity.NewMapping[solidity.Uint64Key, []warden.Bytes32](ctx, slotBlocks),
	}
}

// Address returns the contract address.
func (b *BlockSigner) Address() warden.Address {
	return b.context.Address()
}

// Initialize sets the ledger-wide epoch number parameter. It can be done only once.
func (b *BlockSigner) Initialize(epochNumber uint64) error {
	done, err := b.initialized.Get()
	if err != nil {
		return err
	}
	if done {
		return reverts.ErrAlreadyInitialized
	}
	b.initialized.Set(true)
	b.epochNumber.Set(epochNumber)
	return nil
}

// EpochNumber returns the parameter given at initialization.
func (b *BlockSigner) EpochNumber() (uint64, error) {
	return b.epochNumber.Get()
}

// Sign records that the caller confirms blockHash at blockIndex.
// Every call is a distinct record, signing twice yields two entries.
func (b *BlockSigner) Sign(caller warden.Address, blockIndex uint64, blockHash warden.Bytes32) error {
	signers, err := b.signers.Get(blockHash)
	if err != nil {
		return errors.Wrap(err, "get signers")
	}
	if err := b.signers.Set(blockHash, append(signers, caller)); err != nil {
		return errors.Wrap(err, "set signers")
	}

	hashes, err := b.blocks.Get(solidity.Uint64Key(blockIndex))
	if err != nil {
		return errors.Wrap(err, "get block hashes")
	}
	if err := b.blocks.Set(solidity.Uint64Key(blockIndex), append(hashes, blockHash)); err != nil {
		return errors.Wrap(err, "set block hashes")
	}

	b.context.Emit("Sign", []warden.Bytes32{warden.BytesToBytes32(caller.Bytes()), blockHash}, map[string]any{
		"signer":     caller,
		"blockIndex": blockIndex,
		"blockHash":  blockHash,
	})
	logger.Trace("block signed", "signer", caller, "index", blockIndex, "hash", blockHash.AbbrevString())
	return nil
}

// Signers returns every recorded signer of the block hash, in signing order.
func (b *BlockSigner) Signers(blockHash warden.Bytes32) ([]warden.Address, error) {
	return b.signers.Get(blockHash)
}

// BlockHashes returns the hashes signed at the block index, in signing order.
func (b *BlockSigner) BlockHashes(blockIndex uint64) ([]warden.Bytes32, error) {
	return b.blocks.Get(solidity.Uint64Key(blockIndex))
}

// HasConfirmed reports whether node signed the block hash at least once.
func (b *BlockSigner) HasConfirmed(node warden.Address, blockHash warden.Bytes32) (bool, error) {
	signers, err := b.signers.Get(blockHash)
	if err != nil {
		return false, err
	}
	for _, s := range signers {
		if s == node {
			return true, nil
		}
	}
	return false, nil
}

// CountConfirmations counts, per node, the raw confirmation records among the given hashes.
// Every node of the list is present in the result, with zero if it confirmed nothing.
func (b *BlockSigner) CountConfirmations(blockHashes []warden.Bytes32, nodes []warden.Address) (map[warden.Address]uint64, error) {
	counts := make(map[warden.Address]uint64, len(nodes))
	for _, n := range nodes {
		counts[n] = 0
	}
	for _, h := range blockHashes {
		signers, err := b.signers.Get(h)
		if err != nil {
			return nil, errors.Wrap(err, "get signers")
		}
		for _, s := range signers {
			if c, ok := counts[s]; ok {
				counts[s] = c + 1
			}
		}
	}
	return counts, nil
}
