// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards implements the reward engine. Per epoch it tallies the confirmations of the
// standby nodes, computes their share of the chain reward, tracks non-participation over a
// sliding window and, on payout epochs, queues pending balances in the treasury.
//
// All data lives in storage slots derived from stable names under the engine address.
// The logic built on top of them can be switched with SetFormula, without touching the data.
package rewards

import (
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/standby-warden/warden/builtin/reverts"
	"github.com/standby-warden/warden/builtin/solidity"
	"github.com/standby-warden/warden/log"
	"github.com/standby-warden/warden/state"
	"github.com/standby-warden/warden/warden"
)

var logger = log.WithContext("pkg", "rewards")

// SchemaVersion is the storage layout version written by this code.
// Layout changes are additive only.
const SchemaVersion = 1

var (
	slotInitialized    = solidity.NameToSlot("initialized")
	slotSchemaVersion  = solidity.NameToSlot("schema-version")
	slotOwner          = solidity.NameToSlot("owner")
	slotLedger         = solidity.NameToSlot("ledger")
	slotTreasury       = solidity.NameToSlot("treasury")
	slotSlashWindow    = solidity.NameToSlot("slash-window")
	slotTransferEpoch  = solidity.NameToSlot("transfer-epoch")
	slotCurrentEpoch   = solidity.NameToSlot("current-epoch")
	slotFormula        = solidity.NameToSlot("formula")
	slotWhitelist      = solidity.NameToSlot("whitelist")
	slotEpochComputed  = solidity.NameToSlot("epoch-computed")
	slotNodeComputed   = solidity.NameToSlot("epoch-node-computed")
	slotConfirmed      = solidity.NameToSlot("confirmed-history")
	slotVerifiedBlocks = solidity.NameToSlot("verified-blocks")
	slotPending        = solidity.NameToSlot("pending")
	slotWindows        = solidity.NameToSlot("slash-windows")
	slotPayees         = solidity.NameToSlot("payees")
	slotPayeeHead      = solidity.NameToSlot("payee-head")
	slotPayeeTail      = solidity.NameToSlot("payee-tail")
)

// Rewards implements native methods of `Rewards` contract.
type Rewards struct {
	context   *solidity.Context
	contracts Contracts

	initialized   *solidity.Bool
	schemaVersion *solidity.Uint64
	owner         *solidity.Address
	ledger        *solidity.Address
	treasury      *solidity.Address
	slashWindow   *solidity.Uint64
	transferEpoch *solidity.Uint64
	currentEpoch  *solidity.Uint64
	formula       *solidity.String

	whitelist      *solidity.Mapping[warden.Address, bool]
	epochComputed  *solidity.Mapping[solidity.Uint64Key, bool]
	nodeComputed   *solidity.Mapping[warden.Bytes32, bool]
	confirmed      *solidity.Mapping[solidity.Uint64Key, uint64]
	verifiedBlocks *solidity.Mapping[warden.Bytes32, uint64]
	pending        *solidity.Mapping[warden.Address, *big.Int]
	windows        *solidity.Mapping[warden.Address, *Window]
	payees         *solidity.Mapping[warden.Address, *payeeEntry]
	payeeHead      *solidity.Address
	payeeTail      *solidity.Address
}

// New create a new instance. The ledger and treasury are resolved through contracts.
func New(addr warden.Address, state *state.State, emit solidity.EmitFunc, contracts Contracts) *Rewards {
	ctx := solidity.NewContext(addr, state, emit)
	return &Rewards{
		context:   ctx,
		contracts: contracts,

		initialized:   solidity.NewBool(ctx, slotInitialized),
		schemaVersion: solidity.NewUint64(ctx, slotSchemaVersion),
		owner:         solidity.NewAddress(ctx, slotOwner),
		ledger:        solidity.NewAddress(ctx, slotLedger),
		treasury:      solidity.NewAddress(ctx, slotTreasury),
		slashWindow:   solidity.NewUint64(ctx, slotSlashWindow),
		transferEpoch: solidity.NewUint64(ctx, slotTransferEpoch),
		currentEpoch:  solidity.NewUint64(ctx, slotCurrentEpoch),
		formula:       solidity.NewString(ctx, slotFormula),

		whitelist:      solidity.NewMapping[warden.Address, bool](ctx, slotWhitelist),
		epochComputed:  solidity.NewMapping[solidity.Uint64Key, bool](ctx, slotEpochComputed),
		nodeComputed:   solidity.NewMapping[warden.Bytes32, bool](ctx, slotNodeComputed),
		confirmed:      solidity.NewMapping[solidity.Uint64Key, uint64](ctx, slotConfirmed),
		verifiedBlocks: solidity.NewMapping[warden.Bytes32, uint64](ctx, slotVerifiedBlocks),
		pending:        solidity.NewMapping[warden.Address, *big.Int](ctx, slotPending),
		windows:        solidity.NewMapping[warden.Address, *Window](ctx, slotWindows),
		payees:         solidity.NewMapping[warden.Address, *payeeEntry](ctx, slotPayees),
		payeeHead:      solidity.NewAddress(ctx, slotPayeeHead),
		payeeTail:      solidity.NewAddress(ctx, slotPayeeTail),
	}
}

// Address returns the contract address.
func (r *Rewards) Address() warden.Address {
	return r.context.Address()
}

// Config holds the initialization parameters of the engine.
type Config struct {
	Owner               warden.Address
	Ledger              warden.Address
	SlashWindow         uint64
	RewardTransferEpoch uint64
	InitialEpoch        uint64 // 1 when zero
}

// Initialize sets up the engine. It can be done only once.
// The owner is whitelisted for CalculateRewards.
func (r *Rewards) Initialize(cfg Config) error {
	done, err := r.initialized.Get()
	if err != nil {
		return err
	}
	if done {
		return reverts.ErrAlreadyInitialized
	}
	if cfg.Owner.IsZero() || cfg.SlashWindow == 0 || cfg.RewardTransferEpoch == 0 {
		return reverts.ErrInvalidArgument
	}
	if _, err := r.contracts.Ledger(cfg.Ledger); err != nil {
		return reverts.ErrInvalidArgument
	}
	initialEpoch := cfg.InitialEpoch
	if initialEpoch == 0 {
		initialEpoch = 1
	} else if initialEpoch == math.MaxUint64 {
		return reverts.ErrInvalidEpoch
	}

	r.owner.Set(&cfg.Owner)
	r.ledger.Set(&cfg.Ledger)
	r.slashWindow.Set(cfg.SlashWindow)
	r.transferEpoch.Set(cfg.RewardTransferEpoch)
	r.currentEpoch.Set(initialEpoch)
	if err := r.formula.Set(DefaultFormula); err != nil {
		return err
	}
	if err := r.whitelist.Set(cfg.Owner, true); err != nil {
		return err
	}
	r.schemaVersion.Set(SchemaVersion)
	r.initialized.Set(true)
	return nil
}

func (r *Rewards) requireInitialized() error {
	done, err := r.initialized.Get()
	if err != nil {
		return err
	}
	if !done {
		return reverts.ErrNotInitialized
	}
	return nil
}

func (r *Rewards) requireOwner(caller warden.Address) error {
	if err := r.requireInitialized(); err != nil {
		return err
	}
	owner, err := r.owner.Get()
	if err != nil {
		return err
	}
	if caller != owner {
		return reverts.ErrNotContractOwner
	}
	return nil
}

// TransferOwnership hands the owner role over to newOwner.
func (r *Rewards) TransferOwnership(caller, newOwner warden.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.ErrInvalidArgument
	}
	r.owner.Set(&newOwner)
	r.context.Emit("OwnershipTransferred", []warden.Bytes32{warden.BytesToBytes32(caller.Bytes()), warden.BytesToBytes32(newOwner.Bytes())}, map[string]any{
		"previousOwner": caller,
		"newOwner":      newOwner,
	})
	return nil
}

// SetTreasuryAddress sets the treasury the payouts are queued in.
func (r *Rewards) SetTreasuryAddress(caller, addr warden.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if _, err := r.contracts.Treasury(addr); err != nil {
		return reverts.ErrInvalidArgument
	}
	r.treasury.Set(&addr)
	return nil
}

func (r *Rewards) AddWhitelisted(caller, addr warden.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if err := r.whitelist.Set(addr, true); err != nil {
		return err
	}
	r.context.Emit("WhitelistAdded", []warden.Bytes32{warden.BytesToBytes32(addr.Bytes())}, map[string]any{"account": addr})
	return nil
}

func (r *Rewards) RemoveWhitelisted(caller, addr warden.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	r.whitelist.Delete(addr)
	r.context.Emit("WhitelistRemoved", []warden.Bytes32{warden.BytesToBytes32(addr.Bytes())}, map[string]any{"account": addr})
	return nil
}

// SetCurrentEpochByOwner moves the current epoch, so the next computation is for epoch+1.
// The last representable epoch is rejected since it has no successor.
func (r *Rewards) SetCurrentEpochByOwner(caller warden.Address, epoch uint64) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if epoch == math.MaxUint64 {
		return reverts.ErrInvalidEpoch
	}
	r.currentEpoch.Set(epoch)
	return nil
}

// SetRewardTransferEpoch changes the payout cadence.
func (r *Rewards) SetRewardTransferEpoch(caller warden.Address, n uint64) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if n == 0 {
		return reverts.ErrInvalidArgument
	}
	r.transferEpoch.Set(n)
	return nil
}

// SetFormula switches the reward logic. Stored balances, windows and history are kept.
func (r *Rewards) SetFormula(caller warden.Address, name string) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if _, ok := LookupFormula(name); !ok {
		return reverts.ErrInvalidArgument
	}
	if err := r.formula.Set(name); err != nil {
		return err
	}
	r.context.Emit("FormulaChanged", nil, map[string]any{"formula": name})
	logger.Info("reward formula switched", "formula", name)
	return nil
}

func (r *Rewards) Owner() (warden.Address, error) {
	return r.owner.Get()
}

func (r *Rewards) CurrentEpoch() (uint64, error) {
	return r.currentEpoch.Get()
}

func (r *Rewards) IsWhitelisted(addr warden.Address) (bool, error) {
	return r.whitelist.Get(addr)
}

func (r *Rewards) EpochComputed(epoch uint64) (bool, error) {
	return r.epochComputed.Get(solidity.Uint64Key(epoch))
}

func (r *Rewards) EpochComputedForNode(epoch uint64, node warden.Address) (bool, error) {
	return r.nodeComputed.Get(solidity.PairKey(solidity.Uint64Key(epoch), node))
}

// ConfirmedHistory returns the sum of all nodes' confirmations counted in the epoch.
func (r *Rewards) ConfirmedHistory(epoch uint64) (uint64, error) {
	return r.confirmed.Get(solidity.Uint64Key(epoch))
}

// VerifiedBlocks returns the confirmations of the node counted in the epoch.
func (r *Rewards) VerifiedBlocks(epoch uint64, node warden.Address) (uint64, error) {
	return r.verifiedBlocks.Get(solidity.PairKey(solidity.Uint64Key(epoch), node))
}

// PendingReward returns the balance accrued by node and not yet queued in the treasury.
func (r *Rewards) PendingReward(node warden.Address) (*big.Int, error) {
	return r.pending.Get(node)
}

// IsSlashed reports whether the node missed any epoch of its window, as of its last recorded epoch.
func (r *Rewards) IsSlashed(node warden.Address) (bool, error) {
	w, err := r.windows.Get(node)
	if err != nil {
		return false, err
	}
	if w.Size == 0 {
		return false, nil
	}
	return w.Slashed(), nil
}

// NodeWindow returns the participation window of the node, nil if it was never evaluated.
func (r *Rewards) NodeWindow(node warden.Address) (*Window, error) {
	w, err := r.windows.Get(node)
	if err != nil {
		return nil, err
	}
	if w.Size == 0 {
		return nil, nil
	}
	return w, nil
}

func (r *Rewards) SlashWindow() (uint64, error) {
	return r.slashWindow.Get()
}

func (r *Rewards) RewardTransferEpoch() (uint64, error) {
	return r.transferEpoch.Get()
}

func (r *Rewards) Treasury() (warden.Address, error) {
	return r.treasury.Get()
}

func (r *Rewards) Ledger() (warden.Address, error) {
	return r.ledger.Get()
}

// Formula returns the name of the installed reward formula.
func (r *Rewards) Formula() (string, error) {
	return r.formula.Get()
}

func (r *Rewards) SchemaVersion() (uint64, error) {
	return r.schemaVersion.Get()
}

func (r *Rewards) loadFormula() (Formula, error) {
	name, err := r.formula.Get()
	if err != nil {
		return nil, err
	}
	f, ok := LookupFormula(name)
	if !ok {
		return nil, errors.Errorf("unknown reward formula %q", name)
	}
	return f, nil
}
