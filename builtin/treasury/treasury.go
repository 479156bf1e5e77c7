// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package treasury implements the multisig wallet that custodies the reward funds.
// A transaction moves value only once the required number of owners confirmed it.
package treasury

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/standby-warden/warden/builtin/reverts"
	"github.com/standby-warden/warden/builtin/solidity"
	"github.com/standby-warden/warden/log"
	"github.com/standby-warden/warden/state"
	"github.com/standby-warden/warden/warden"
)

var logger = log.WithContext("pkg", "treasury")

var (
	slotInitialized   = solidity.NameToSlot("initialized")
	slotOwnerCount    = solidity.NameToSlot("owner-count")
	slotOwners        = solidity.NameToSlot("owners")
	slotIsOwner       = solidity.NameToSlot("is-owner")
	slotRequired      = solidity.NameToSlot("required")
	slotTxCount       = solidity.NameToSlot("transaction-count")
	slotTransactions  = solidity.NameToSlot("transactions")
	slotConfirmed     = solidity.NameToSlot("confirmations")
	slotConfirmCounts = solidity.NameToSlot("confirmation-count")
	slotCreatedFor    = solidity.NameToSlot("created-for")
	slotExecutedFor   = solidity.NameToSlot("executed-for")
)

// Treasury implements native methods of `Treasury` contract.
type Treasury struct {
	context      *solidity.Context
	initialized  *solidity.Bool
	ownerCount   *solidity.Uint64
	owners       *solidity.Mapping[solidity.Uint64Key, warden.Address]
	isOwner      *solidity.Mapping[warden.Address, bool]
	required     *solidity.Uint64
	txCount      *solidity.Uint64
	transactions *solidity.Mapping[solidity.Uint64Key, *Transaction]
	confirmed    *solidity.Mapping[warden.Bytes32, bool]
	confirmCount *solidity.Mapping[solidity.Uint64Key, uint64]
	createdFor   *solidity.Mapping[warden.Address, uint64]
	executedFor  *solidity.Mapping[warden.Address, uint64]
}

// New create a new instance.
func New(addr warden.Address, state *state.State, emit solidity.EmitFunc) *Treasury {
	ctx := solidity.NewContext(addr, state, emit)
	return &Treasury{
		context:      ctx,
		initialized:  solidity.NewBool(ctx, slotInitialized),
		ownerCount:   solidity.NewUint64(ctx, slotOwnerCount),
		owners:       solidity.NewMapping[solidity.Uint64Key, warden.Address](ctx, slotOwners),
		isOwner:      solidity.NewMapping[warden.Address, bool](ctx, slotIsOwner),
		required:     solidity.NewUint64(ctx, slotRequired),
		txCount:      solidity.NewUint64(ctx, slotTxCount),
		transactions: solidity.NewMapping[solidity.Uint64Key, *Transaction](ctx, slotTransactions),
		confirmed:    solidity.NewMapping[warden.Bytes32, bool](ctx, slotConfirmed),
		confirmCount: solidity.NewMapping[solidity.Uint64Key, uint64](ctx, slotConfirmCounts),
		createdFor:   solidity.NewMapping[warden.Address, uint64](ctx, slotCreatedFor),
		executedFor:  solidity.NewMapping[warden.Address, uint64](ctx, slotExecutedFor),
	}
}

// Address returns the contract address.
func (t *Treasury) Address() warden.Address {
	return t.context.Address()
}

// Initialize sets the owner set and the confirmation quorum. Both are fixed afterwards.
func (t *Treasury) Initialize(owners []warden.Address, required uint64) error {
	done, err := t.initialized.Get()
	if err != nil {
		return err
	}
	if done {
		return reverts.ErrAlreadyInitialized
	}
	if len(owners) == 0 || required == 0 || required > uint64(len(owners)) {
		return reverts.ErrInvalidArgument
	}
	seen := make(map[warden.Address]bool, len(owners))
	for _, o := range owners {
		if o.IsZero() || seen[o] {
			return reverts.ErrInvalidArgument
		}
		seen[o] = true
	}

	for i, o := range owners {
		if err := t.owners.Set(solidity.Uint64Key(i), o); err != nil {
			return err
		}
		if err := t.isOwner.Set(o, true); err != nil {
			return err
		}
	}
	t.ownerCount.Set(uint64(len(owners)))
	t.required.Set(required)
	t.initialized.Set(true)
	return nil
}

func (t *Treasury) requireOwner(caller warden.Address) error {
	ok, err := t.isOwner.Get(caller)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrNotOwner
	}
	return nil
}

// CreateTransaction submits a transfer of value to the given address, returning its id.
// It does not confirm the transaction on behalf of the caller.
func (t *Treasury) CreateTransaction(caller, to warden.Address, value *big.Int) (uint64, error) {
	if err := t.requireOwner(caller); err != nil {
		return 0, err
	}
	if to.IsZero() || value == nil || value.Sign() < 0 {
		return 0, reverts.ErrInvalidArgument
	}

	id, err := t.txCount.Get()
	if err != nil {
		return 0, err
	}
	if err := t.transactions.Set(solidity.Uint64Key(id), &Transaction{To: to, Value: new(big.Int).Set(value)}); err != nil {
		return 0, errors.Wrap(err, "set transaction")
	}
	t.txCount.Set(id + 1)

	created, err := t.createdFor.Get(to)
	if err != nil {
		return 0, err
	}
	if err := t.createdFor.Set(to, created+1); err != nil {
		return 0, err
	}

	t.context.Emit("Submission", []warden.Bytes32{idTopic(id)}, map[string]any{
		"transactionId": id,
		"to":            to,
		"value":         value.String(),
	})
	logger.Debug("transaction submitted", "id", id, "to", to, "value", value)
	return id, nil
}

// ConfirmTransaction records the caller's confirmation. Reaching the quorum executes the transfer
// out of the treasury balance.
func (t *Treasury) ConfirmTransaction(caller warden.Address, id uint64) error {
	if err := t.requireOwner(caller); err != nil {
		return err
	}
	tx, err := t.getTransaction(id)
	if err != nil {
		return err
	}
	if tx.Executed {
		return reverts.ErrAlreadyExecuted
	}
	key := confirmationKey(id, caller)
	confirmed, err := t.confirmed.Get(key)
	if err != nil {
		return err
	}
	if confirmed {
		return reverts.ErrAlreadyConfirmed
	}

	if err := t.confirmed.Set(key, true); err != nil {
		return err
	}
	count, err := t.confirmCount.Get(solidity.Uint64Key(id))
	if err != nil {
		return err
	}
	count++
	if err := t.confirmCount.Set(solidity.Uint64Key(id), count); err != nil {
		return err
	}
	t.context.Emit("Confirmation", []warden.Bytes32{warden.BytesToBytes32(caller.Bytes()), idTopic(id)}, map[string]any{
		"sender":        caller,
		"transactionId": id,
	})

	required, err := t.required.Get()
	if err != nil {
		return err
	}
	if count < required {
		return nil
	}
	return t.execute(id, tx)
}

func (t *Treasury) execute(id uint64, tx *Transaction) error {
	st := t.context.State()
	bal, err := st.GetBalance(t.Address())
	if err != nil {
		return err
	}
	if bal.Cmp(tx.Value) < 0 {
		return reverts.ErrInsufficientFunds
	}
	toBal, err := st.GetBalance(tx.To)
	if err != nil {
		return err
	}
	if err := st.SetBalance(t.Address(), bal.Sub(bal, tx.Value)); err != nil {
		return err
	}
	if err := st.SetBalance(tx.To, toBal.Add(toBal, tx.Value)); err != nil {
		return err
	}

	tx.Executed = true
	if err := t.transactions.Set(solidity.Uint64Key(id), tx); err != nil {
		return errors.Wrap(err, "set transaction")
	}
	executed, err := t.executedFor.Get(tx.To)
	if err != nil {
		return err
	}
	if err := t.executedFor.Set(tx.To, executed+1); err != nil {
		return err
	}

	t.context.Emit("Execution", []warden.Bytes32{idTopic(id)}, map[string]any{
		"transactionId": id,
		"to":            tx.To,
		"value":         tx.Value.String(),
	})
	logger.Debug("transaction executed", "id", id, "to", tx.To, "value", tx.Value)
	return nil
}

func (t *Treasury) getTransaction(id uint64) (*Transaction, error) {
	count, err := t.txCount.Get()
	if err != nil {
		return nil, err
	}
	if id >= count {
		return nil, reverts.ErrTransactionNotFound
	}
	tx, err := t.transactions.Get(solidity.Uint64Key(id))
	if err != nil {
		return nil, errors.Wrap(err, "get transaction")
	}
	if tx.Value == nil {
		tx.Value = new(big.Int)
	}
	return tx, nil
}

// Transaction returns the transaction with its confirmation count.
func (t *Treasury) Transaction(id uint64) (*TransactionInfo, error) {
	tx, err := t.getTransaction(id)
	if err != nil {
		return nil, err
	}
	count, err := t.confirmCount.Get(solidity.Uint64Key(id))
	if err != nil {
		return nil, err
	}
	return &TransactionInfo{
		ID:            id,
		To:            tx.To,
		Value:         tx.Value,
		Executed:      tx.Executed,
		Confirmations: count,
	}, nil
}

// TransactionCount returns the number of transactions ever created.
func (t *Treasury) TransactionCount() (uint64, error) {
	return t.txCount.Get()
}

// PendingTransactions returns the ids of all transactions not executed yet, in creation order.
func (t *Treasury) PendingTransactions() ([]uint64, error) {
	count, err := t.txCount.Get()
	if err != nil {
		return nil, err
	}
	var ids []uint64
	for id := uint64(0); id < count; id++ {
		tx, err := t.transactions.Get(solidity.Uint64Key(id))
		if err != nil {
			return nil, err
		}
		if !tx.Executed {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// TransactionCountFor returns the number of transactions created towards addr, executed or not.
func (t *Treasury) TransactionCountFor(addr warden.Address) (uint64, error) {
	return t.createdFor.Get(addr)
}

// ExecutedCountFor returns the number of executed transactions towards addr.
func (t *Treasury) ExecutedCountFor(addr warden.Address) (uint64, error) {
	return t.executedFor.Get(addr)
}

// IsConfirmed reports whether owner confirmed the transaction.
func (t *Treasury) IsConfirmed(id uint64, owner warden.Address) (bool, error) {
	return t.confirmed.Get(confirmationKey(id, owner))
}

// ConfirmationCount returns the number of confirmations of the transaction.
func (t *Treasury) ConfirmationCount(id uint64) (uint64, error) {
	if _, err := t.getTransaction(id); err != nil {
		return 0, err
	}
	return t.confirmCount.Get(solidity.Uint64Key(id))
}

func (t *Treasury) IsOwner(addr warden.Address) (bool, error) {
	return t.isOwner.Get(addr)
}

// Owners returns the owner set in initialization order.
func (t *Treasury) Owners() ([]warden.Address, error) {
	n, err := t.ownerCount.Get()
	if err != nil {
		return nil, err
	}
	owners := make([]warden.Address, 0, n)
	for i := uint64(0); i < n; i++ {
		o, err := t.owners.Get(solidity.Uint64Key(i))
		if err != nil {
			return nil, err
		}
		owners = append(owners, o)
	}
	return owners, nil
}

func (t *Treasury) RequiredConfirmations() (uint64, error) {
	return t.required.Get()
}

// Balance returns the native balance held by the treasury.
func (t *Treasury) Balance() (*big.Int, error) {
	return t.context.State().GetBalance(t.Address())
}

func confirmationKey(id uint64, owner warden.Address) warden.Bytes32 {
	return solidity.PairKey(solidity.Uint64Key(id), owner)
}

func idTopic(id uint64) warden.Bytes32 {
	return warden.BytesToBytes32(solidity.Uint64Key(id).Bytes())
}
