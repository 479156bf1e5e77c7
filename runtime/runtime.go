// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes operations on the native contracts one at a time.
// An operation either commits all of its effects, or none of them.
package runtime

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"math/big"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/builtin/reverts"
	"github.com/standby-warden/warden/builtin/solidity"
	"github.com/standby-warden/warden/kv"
	"github.com/standby-warden/warden/log"
	"github.com/standby-warden/warden/logdb"
	"github.com/standby-warden/warden/state"
	"github.com/standby-warden/warden/warden"
)

var logger = log.WithContext("pkg", "runtime")

const metaBucket = kv.Bucket("m")

var (
	seqKey     = []byte("op-seq")
	genesisKey = []byte("genesis-id")
)

// Receipt describes a committed operation.
type Receipt struct {
	Seq       uint64            `json:"seq"`
	Op        string            `json:"op"`
	Caller    warden.Address    `json:"caller"`
	Time      uint64            `json:"time"`
	Events    []*solidity.Event `json:"events"`
	Transfers []*Transfer       `json:"transfers"`
}

// Transfer is a native value movement done by an operation.
type Transfer struct {
	Sender    warden.Address `json:"sender"`
	Recipient warden.Address `json:"recipient"`
	Amount    *big.Int       `json:"amount"`
}

// Runtime serializes operations over a state. Every operation runs inside a checkpoint,
// reverted on error, committed to the store on success.
type Runtime struct {
	mu    sync.Mutex
	store kv.Store
	meta  kv.Store
	state *state.State
	logDB *logdb.LogDB
	seq   uint64
	now   func() time.Time
}

// New create a runtime over store. The event log is optional.
func New(store kv.Store, logDB *logdb.LogDB) (*Runtime, error) {
	rt := &Runtime{
		store: store,
		meta:  metaBucket.NewStore(store),
		state: state.New(store),
		logDB: logDB,
		now:   time.Now,
	}
	raw, err := rt.meta.Get(seqKey)
	if err != nil && !rt.meta.IsNotFound(err) {
		return nil, errors.Wrap(err, "load operation sequence")
	}
	if len(raw) == 8 {
		rt.seq = binary.BigEndian.Uint64(raw)
	}
	return rt, nil
}

// Seq returns the sequence number of the last committed operation.
func (rt *Runtime) Seq() uint64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.seq
}

// Balance returns the native balance of addr.
func (rt *Runtime) Balance(addr warden.Address) (*big.Int, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.state.GetBalance(addr)
}

// View runs fn over the contracts, read only. Changes fn makes are dropped.
func (rt *Runtime) View(fn func(c *builtin.Contracts) error) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	cp := rt.state.NewCheckpoint()
	defer rt.state.RevertTo(cp)
	return fn(builtin.New(rt.state, nil))
}

// Setup applies fn as an operation without caller, used to build the initial state.
func (rt *Runtime) Setup(ctx context.Context, fn func(st *state.State, c *builtin.Contracts) error) (*Receipt, error) {
	return rt.run(ctx, "setup", warden.Address{}, func(st *state.State, c *builtin.Contracts, _ *[]*Transfer) error {
		return fn(st, c)
	})
}

// Bootstrap builds the initial state with fn, once per store. Later calls with the same
// genesis ID are no-op, a different ID is an error.
func (rt *Runtime) Bootstrap(ctx context.Context, id warden.Bytes32, fn func(st *state.State, c *builtin.Contracts) error) (bool, error) {
	stored, err := rt.meta.Get(genesisKey)
	if err != nil && !rt.meta.IsNotFound(err) {
		return false, errors.Wrap(err, "load genesis id")
	}
	if len(stored) > 0 {
		if warden.BytesToBytes32(stored) != id {
			return false, errors.Errorf("genesis mismatch: store has %v, want %v", warden.BytesToBytes32(stored), id)
		}
		return false, nil
	}
	// the genesis id lands in the same batch as the state it marks
	if _, err := rt.run(ctx, "setup", warden.Address{}, func(st *state.State, c *builtin.Contracts, _ *[]*Transfer) error {
		return fn(st, c)
	}, func(p kv.Putter) error {
		return metaBucket.NewPutter(p).Put(genesisKey, id.Bytes())
	}); err != nil {
		return false, errors.WithMessage(err, "build genesis")
	}
	logger.Info("genesis built", "id", id)
	return true, nil
}

// GenesisID returns the ID of the genesis the store was built with.
func (rt *Runtime) GenesisID() (warden.Bytes32, error) {
	stored, err := rt.meta.Get(genesisKey)
	if err != nil {
		return warden.Bytes32{}, err
	}
	return warden.BytesToBytes32(stored), nil
}

type opFunc func(st *state.State, c *builtin.Contracts, transfers *[]*Transfer) error

// exec runs an operation on behalf of an external caller. The native contracts
// act on their own only from inside another operation, never as its caller.
func (rt *Runtime) exec(ctx context.Context, op string, caller warden.Address, fn opFunc) (*Receipt, error) {
	if _, ok := builtin.NameOf(caller); ok {
		recordOp(op, reverts.ErrBuiltinCaller, 0)
		logger.Debug("operation rejected", "op", op, "caller", caller, "err", reverts.ErrBuiltinCaller)
		return nil, reverts.ErrBuiltinCaller
	}
	return rt.run(ctx, op, caller, fn)
}

// run executes fn in a checkpoint. The next sequence number and extra are
// written in the same batch as the state changes.
func (rt *Runtime) run(ctx context.Context, op string, caller warden.Address, fn opFunc, extra ...func(kv.Putter) error) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := rt.now()
	var (
		events    []*solidity.Event
		transfers []*Transfer
	)
	emit := func(ev *solidity.Event) {
		events = append(events, ev)
		if tr := executionTransfer(ev); tr != nil {
			transfers = append(transfers, tr)
		}
	}

	cp := rt.state.NewCheckpoint()
	if err := fn(rt.state, builtin.New(rt.state, emit), &transfers); err != nil {
		rt.state.RevertTo(cp)
		recordOp(op, err, rt.now().Sub(start))
		if reverts.IsRevertErr(err) {
			logger.Debug("operation reverted", "op", op, "caller", caller, "err", err)
		} else {
			logger.Warn("operation failed", "op", op, "caller", caller, "err", err)
		}
		return nil, err
	}
	seq := rt.seq + 1
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], seq)
	puts := append([]func(kv.Putter) error{func(p kv.Putter) error {
		return metaBucket.NewPutter(p).Put(seqKey, raw[:])
	}}, extra...)
	if err := rt.state.Commit(puts...); err != nil {
		rt.state.RevertTo(cp)
		recordOp(op, err, rt.now().Sub(start))
		logger.Error("failed to commit operation", "op", op, "err", err)
		return nil, errors.WithMessage(err, "commit")
	}
	rt.seq = seq

	receipt := &Receipt{
		Seq:       rt.seq,
		Op:        op,
		Caller:    caller,
		Time:      uint64(start.Unix()),
		Events:    events,
		Transfers: transfers,
	}
	if rt.logDB != nil {
		batch := rt.logDB.NewBatch(receipt.Seq, receipt.Time, op, caller)
		for _, ev := range events {
			batch.InsertEvent(ev.Address, ev.Name, ev.Topics, ev.Data)
		}
		for _, tr := range transfers {
			batch.InsertTransfer(tr.Sender, tr.Recipient, tr.Amount)
		}
		if err := batch.Commit(); err != nil {
			// state is committed already, the operation stands
			logger.Error("failed to write event log", "seq", receipt.Seq, "op", op, "err", err)
		}
	}
	recordOp(op, nil, rt.now().Sub(start))
	recordTreasury(events)
	logger.Debug("operation committed", "seq", receipt.Seq, "op", op, "caller", caller, "events", len(events))
	return receipt, nil
}

// executionTransfer extracts the value movement of a treasury execution.
func executionTransfer(ev *solidity.Event) *Transfer {
	if ev.Address != builtin.Treasury.Address || ev.Name != "Execution" {
		return nil
	}
	var data struct {
		To    warden.Address `json:"to"`
		Value string         `json:"value"`
	}
	if err := json.Unmarshal(ev.Data, &data); err != nil {
		return nil
	}
	value, ok := new(big.Int).SetString(data.Value, 10)
	if !ok {
		return nil
	}
	return &Transfer{Sender: ev.Address, Recipient: data.To, Amount: value}
}
