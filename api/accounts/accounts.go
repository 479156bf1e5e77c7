// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/runtime"
	"github.com/standby-warden/warden/warden"
)

type Accounts struct {
	rt   *runtime.Runtime
	auth *utils.Authenticator
}

func New(rt *runtime.Runtime, auth *utils.Authenticator) *Accounts {
	return &Accounts{rt, auth}
}

type Account struct {
	Address  warden.Address        `json:"address"`
	Balance  *math.HexOrDecimal256 `json:"balance"`
	Contract string                `json:"contract,omitempty"`
}

type TransferRequest struct {
	Caller warden.Address        `json:"caller"`
	To     warden.Address        `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

func (r *TransferRequest) CallerAddress() warden.Address { return r.Caller }

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	balance, err := a.rt.Balance(addr)
	if err != nil {
		return err
	}
	name, _ := builtin.NameOf(addr)
	return utils.WriteJSON(w, &Account{
		Address:  addr,
		Balance:  utils.Amount(balance),
		Contract: name,
	})
}

func (a *Accounts) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	var body TransferRequest
	if err := a.auth.ParseJSON(req, &body); err != nil {
		return err
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("body: amount required"))
	}
	receipt, err := a.rt.Transfer(req.Context(), body.Caller, body.To, (*big.Int)(body.Amount))
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.ConvertReceipt(receipt))
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/transfers").
		Methods(http.MethodPost).
		Name("POST /accounts/transfers").
		HandlerFunc(utils.WrapHandlerFunc(a.handleTransfer))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
}
