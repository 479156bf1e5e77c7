// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"context"
	"math/big"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/runtime"
	"github.com/standby-warden/warden/warden"
)

type Rewards struct {
	rt   *runtime.Runtime
	auth *utils.Authenticator
}

func New(rt *runtime.Runtime, auth *utils.Authenticator) *Rewards {
	return &Rewards{rt, auth}
}

func (r *Rewards) handleGetEngine(w http.ResponseWriter, _ *http.Request) error {
	var engine Engine
	if err := r.rt.View(func(c *builtin.Contracts) (err error) {
		e := c.Rewards
		if engine.Owner, err = e.Owner(); err != nil {
			return err
		}
		if engine.Ledger, err = e.Ledger(); err != nil {
			return err
		}
		if engine.Treasury, err = e.Treasury(); err != nil {
			return err
		}
		if engine.CurrentEpoch, err = e.CurrentEpoch(); err != nil {
			return err
		}
		if engine.SlashWindow, err = e.SlashWindow(); err != nil {
			return err
		}
		if engine.RewardTransferEpoch, err = e.RewardTransferEpoch(); err != nil {
			return err
		}
		if engine.Formula, err = e.Formula(); err != nil {
			return err
		}
		if engine.SchemaVersion, err = e.SchemaVersion(); err != nil {
			return err
		}
		engine.Payees, err = e.Payees()
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &engine)
}

func (r *Rewards) handleGetEpoch(w http.ResponseWriter, req *http.Request) error {
	epoch, err := utils.Uint64Var(req, "epoch")
	if err != nil {
		return err
	}
	result := Epoch{Epoch: epoch}
	if err := r.rt.View(func(c *builtin.Contracts) (err error) {
		if result.Computed, err = c.Rewards.EpochComputed(epoch); err != nil {
			return err
		}
		result.TotalConfirmed, err = c.Rewards.ConfirmedHistory(epoch)
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &result)
}

func (r *Rewards) handleGetNode(w http.ResponseWriter, req *http.Request) error {
	node, err := utils.AddressVar(req, "node")
	if err != nil {
		return err
	}
	var epoch *uint64
	if s := req.URL.Query().Get("epoch"); s != "" {
		n, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "epoch"))
		}
		epoch = &n
	}

	result := Node{Node: node, Epoch: epoch}
	if err := r.rt.View(func(c *builtin.Contracts) error {
		e := c.Rewards
		whitelisted, err := e.IsWhitelisted(node)
		if err != nil {
			return err
		}
		slashed, err := e.IsSlashed(node)
		if err != nil {
			return err
		}
		pending, err := e.PendingReward(node)
		if err != nil {
			return err
		}
		window, err := e.NodeWindow(node)
		if err != nil {
			return err
		}
		result.Whitelisted = whitelisted
		result.Slashed = slashed
		result.PendingReward = utils.Amount(pending)
		if window != nil {
			result.Window = &Window{
				Size:        window.Size,
				Misses:      window.Misses,
				CleanStreak: window.CleanStreak(),
				LastEpoch:   window.LastEpoch,
			}
		}
		if epoch == nil {
			return nil
		}
		computed, err := e.EpochComputedForNode(*epoch, node)
		if err != nil {
			return err
		}
		verified, err := e.VerifiedBlocks(*epoch, node)
		if err != nil {
			return err
		}
		result.Computed = &computed
		result.Verified = &verified
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &result)
}

func (r *Rewards) handleCalculate(w http.ResponseWriter, req *http.Request) error {
	var body CalculateRequest
	if err := r.auth.ParseJSON(req, &body); err != nil {
		return err
	}
	if body.ChainReward == nil {
		return utils.BadRequest(errors.New("body: chainReward required"))
	}
	receipt, result, err := r.rt.CalculateRewards(
		req.Context(),
		body.Caller,
		(*big.Int)(body.ChainReward),
		body.BlockHashes,
		body.StandbyNodes,
		body.Epoch,
	)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertCalculation(utils.ConvertReceipt(receipt), result))
}

// handleAddressOp serves the owner operations taking an address argument.
func (r *Rewards) handleAddressOp(op func(ctx context.Context, caller, addr warden.Address) (*runtime.Receipt, error)) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		var body AddressRequest
		if err := r.auth.ParseJSON(req, &body); err != nil {
			return err
		}
		receipt, err := op(req.Context(), body.Caller, body.Address)
		if err != nil {
			return err
		}
		return utils.WriteJSON(w, utils.ConvertReceipt(receipt))
	}
}

// handleEpochOp serves the owner operations taking an epoch argument.
func (r *Rewards) handleEpochOp(op func(ctx context.Context, caller warden.Address, epoch uint64) (*runtime.Receipt, error)) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		var body EpochRequest
		if err := r.auth.ParseJSON(req, &body); err != nil {
			return err
		}
		receipt, err := op(req.Context(), body.Caller, body.Epoch)
		if err != nil {
			return err
		}
		return utils.WriteJSON(w, utils.ConvertReceipt(receipt))
	}
}

func (r *Rewards) handleSetFormula(w http.ResponseWriter, req *http.Request) error {
	var body FormulaRequest
	if err := r.auth.ParseJSON(req, &body); err != nil {
		return err
	}
	receipt, err := r.rt.SetFormula(req.Context(), body.Caller, body.Formula)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.ConvertReceipt(receipt))
}

func (r *Rewards) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /rewards").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetEngine))
	sub.Path("/epochs/{epoch}").
		Methods(http.MethodGet).
		Name("GET /rewards/epochs/{epoch}").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetEpoch))
	sub.Path("/nodes/{node}").
		Methods(http.MethodGet).
		Name("GET /rewards/nodes/{node}").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetNode))

	sub.Path("/calculations").
		Methods(http.MethodPost).
		Name("POST /rewards/calculations").
		HandlerFunc(utils.WrapHandlerFunc(r.handleCalculate))
	sub.Path("/owner").
		Methods(http.MethodPost).
		Name("POST /rewards/owner").
		HandlerFunc(utils.WrapHandlerFunc(r.handleAddressOp(r.rt.TransferOwnership)))
	sub.Path("/treasury").
		Methods(http.MethodPost).
		Name("POST /rewards/treasury").
		HandlerFunc(utils.WrapHandlerFunc(r.handleAddressOp(r.rt.SetTreasuryAddress)))
	sub.Path("/whitelist/add").
		Methods(http.MethodPost).
		Name("POST /rewards/whitelist/add").
		HandlerFunc(utils.WrapHandlerFunc(r.handleAddressOp(r.rt.AddWhitelisted)))
	sub.Path("/whitelist/remove").
		Methods(http.MethodPost).
		Name("POST /rewards/whitelist/remove").
		HandlerFunc(utils.WrapHandlerFunc(r.handleAddressOp(r.rt.RemoveWhitelisted)))
	sub.Path("/current-epoch").
		Methods(http.MethodPost).
		Name("POST /rewards/current-epoch").
		HandlerFunc(utils.WrapHandlerFunc(r.handleEpochOp(r.rt.SetCurrentEpochByOwner)))
	sub.Path("/transfer-epoch").
		Methods(http.MethodPost).
		Name("POST /rewards/transfer-epoch").
		HandlerFunc(utils.WrapHandlerFunc(r.handleEpochOp(r.rt.SetRewardTransferEpoch)))
	sub.Path("/formula").
		Methods(http.MethodPost).
		Name("POST /rewards/formula").
		HandlerFunc(utils.WrapHandlerFunc(r.handleSetFormula))
}
