// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/runtime"
)

type Treasury struct {
	rt   *runtime.Runtime
	auth *utils.Authenticator
}

func New(rt *runtime.Runtime, auth *utils.Authenticator) *Treasury {
	return &Treasury{rt, auth}
}

func (t *Treasury) handleGetTreasury(w http.ResponseWriter, _ *http.Request) error {
	var result Summary
	if err := t.rt.View(func(c *builtin.Contracts) (err error) {
		tr := c.Treasury
		if result.Owners, err = tr.Owners(); err != nil {
			return err
		}
		if result.Required, err = tr.RequiredConfirmations(); err != nil {
			return err
		}
		balance, err := tr.Balance()
		if err != nil {
			return err
		}
		result.Balance = utils.Amount(balance)
		if result.TransactionCount, err = tr.TransactionCount(); err != nil {
			return err
		}
		result.Pending, err = tr.PendingTransactions()
		return err
	}); err != nil {
		return err
	}
	if result.Pending == nil {
		result.Pending = []uint64{}
	}
	return utils.WriteJSON(w, &result)
}

func (t *Treasury) handleGetTransaction(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Uint64Var(req, "id")
	if err != nil {
		return err
	}
	var result *Transaction
	if err := t.rt.View(func(c *builtin.Contracts) error {
		info, err := c.Treasury.Transaction(id)
		if err != nil {
			return err
		}
		result = convertTransaction(info)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (t *Treasury) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	result := Account{Address: addr}
	if err := t.rt.View(func(c *builtin.Contracts) (err error) {
		if result.IsOwner, err = c.Treasury.IsOwner(addr); err != nil {
			return err
		}
		if result.TransactionCount, err = c.Treasury.TransactionCountFor(addr); err != nil {
			return err
		}
		result.ExecutedCount, err = c.Treasury.ExecutedCountFor(addr)
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &result)
}

func (t *Treasury) handleCreateTransaction(w http.ResponseWriter, req *http.Request) error {
	var body CreateRequest
	if err := t.auth.ParseJSON(req, &body); err != nil {
		return err
	}
	if body.Value == nil {
		return utils.BadRequest(errors.New("body: value required"))
	}
	receipt, id, err := t.rt.CreateTransaction(req.Context(), body.Caller, body.To, (*big.Int)(body.Value))
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Created{ID: id, Receipt: utils.ConvertReceipt(receipt)})
}

func (t *Treasury) handleConfirmTransaction(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Uint64Var(req, "id")
	if err != nil {
		return err
	}
	var body ConfirmRequest
	if err := t.auth.ParseJSON(req, &body); err != nil {
		return err
	}
	receipt, err := t.rt.ConfirmTransaction(req.Context(), body.Caller, id)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.ConvertReceipt(receipt))
}

func (t *Treasury) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /treasury").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetTreasury))
	sub.Path("/transactions").
		Methods(http.MethodPost).
		Name("POST /treasury/transactions").
		HandlerFunc(utils.WrapHandlerFunc(t.handleCreateTransaction))
	sub.Path("/transactions/{id}").
		Methods(http.MethodGet).
		Name("GET /treasury/transactions/{id}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetTransaction))
	sub.Path("/transactions/{id}/confirmations").
		Methods(http.MethodPost).
		Name("POST /treasury/transactions/{id}/confirmations").
		HandlerFunc(utils.WrapHandlerFunc(t.handleConfirmTransaction))
	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /treasury/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetAccount))
}
