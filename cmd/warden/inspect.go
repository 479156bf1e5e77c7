// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/genesis"
	"github.com/standby-warden/warden/runtime"
	"github.com/standby-warden/warden/warden"
)

type engineState struct {
	owner         warden.Address
	treasury      warden.Address
	currentEpoch  uint64
	slashWindow   uint64
	transferEpoch uint64
	formula       string
	epochNumber   uint64
	owners        []warden.Address
	required      uint64
	balance       *big.Int
	txCount       uint64
	pendingTxs    []uint64
	prevComputed  bool
	prevConfirmed uint64
	schemaVersion uint64
	engineBalance *big.Int
}

func loadEngineState(rt *runtime.Runtime) (*engineState, error) {
	var s engineState
	err := rt.View(func(c *builtin.Contracts) (err error) {
		if s.owner, err = c.Rewards.Owner(); err != nil {
			return
		}
		if s.treasury, err = c.Rewards.Treasury(); err != nil {
			return
		}
		if s.currentEpoch, err = c.Rewards.CurrentEpoch(); err != nil {
			return
		}
		if s.slashWindow, err = c.Rewards.SlashWindow(); err != nil {
			return
		}
		if s.transferEpoch, err = c.Rewards.RewardTransferEpoch(); err != nil {
			return
		}
		if s.formula, err = c.Rewards.Formula(); err != nil {
			return
		}
		if s.schemaVersion, err = c.Rewards.SchemaVersion(); err != nil {
			return
		}
		if s.currentEpoch > 1 {
			if s.prevComputed, err = c.Rewards.EpochComputed(s.currentEpoch - 1); err != nil {
				return
			}
			if s.prevConfirmed, err = c.Rewards.ConfirmedHistory(s.currentEpoch - 1); err != nil {
				return
			}
		}
		if s.epochNumber, err = c.BlockSigner.EpochNumber(); err != nil {
			return
		}
		if s.owners, err = c.Treasury.Owners(); err != nil {
			return
		}
		if s.required, err = c.Treasury.RequiredConfirmations(); err != nil {
			return
		}
		if s.balance, err = c.Treasury.Balance(); err != nil {
			return
		}
		if s.txCount, err = c.Treasury.TransactionCount(); err != nil {
			return
		}
		s.pendingTxs, err = c.Treasury.PendingTransactions()
		return
	})
	if err != nil {
		return nil, err
	}
	if s.engineBalance, err = rt.Balance(builtin.Rewards.Address); err != nil {
		return nil, err
	}
	return &s, nil
}

func inspect(w io.Writer, gene *genesis.Genesis, rt *runtime.Runtime) error {
	id, err := rt.GenesisID()
	if err != nil {
		return errors.Wrap(err, "read genesis id")
	}
	if id != gene.ID() {
		return errors.Errorf("instance built with genesis %v, not %v", id, gene.ID())
	}

	s, err := loadEngineState(rt)
	if err != nil {
		return errors.Wrap(err, "load engine state")
	}

	owners := make([]string, 0, len(s.owners))
	for _, o := range s.owners {
		name := o.String()
		if n, ok := builtin.NameOf(o); ok {
			name += " (" + n + ")"
		}
		owners = append(owners, name)
	}
	pending := "none"
	if len(s.pendingTxs) > 0 {
		ids := make([]string, 0, len(s.pendingTxs))
		for _, txID := range s.pendingTxs {
			ids = append(ids, fmt.Sprint(txID))
		}
		pending = strings.Join(ids, ",")
	}

	fmt.Fprintf(w, `Instance of %v %v
    Operations       [ #%v ]
Engine
    Owner            [ %v ]
    Treasury         [ %v ]
    Current epoch    [ %v ]
    Previous epoch   [ computed=%v confirmed=%v ]
    Slash window     [ %v ]
    Transfer epoch   [ %v ]
    Formula          [ %v ]
    Schema version   [ %v ]
    Balance          [ %v ]
Ledger
    Epoch number     [ %v ]
Treasury
    Owners           [ %v ]
    Required         [ %v ]
    Balance          [ %v ]
    Transactions     [ %v ]
    Pending          [ %v ]
`,
		gene.ID(), gene.Name(),
		rt.Seq(),
		s.owner,
		s.treasury,
		s.currentEpoch,
		s.prevComputed, s.prevConfirmed,
		s.slashWindow,
		s.transferEpoch,
		s.formula,
		s.schemaVersion,
		s.engineBalance,
		s.epochNumber,
		strings.Join(owners, ", "),
		s.required,
		s.balance,
		s.txCount,
		pending,
	)
	return nil
}
