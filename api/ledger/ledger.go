// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/runtime"
	"github.com/standby-warden/warden/warden"
)

type Ledger struct {
	rt   *runtime.Runtime
	auth *utils.Authenticator
}

func New(rt *runtime.Runtime, auth *utils.Authenticator) *Ledger {
	return &Ledger{rt, auth}
}

type Summary struct {
	Address     warden.Address `json:"address"`
	EpochNumber uint64         `json:"epochNumber"`
}

type Block struct {
	Hash    warden.Bytes32   `json:"hash"`
	Signers []warden.Address `json:"signers"`
}

type Index struct {
	Index  uint64           `json:"index"`
	Hashes []warden.Bytes32 `json:"hashes"`
}

type SignRequest struct {
	Caller     warden.Address `json:"caller"`
	BlockIndex uint64         `json:"blockIndex"`
	BlockHash  warden.Bytes32 `json:"blockHash"`
}

func (r *SignRequest) CallerAddress() warden.Address { return r.Caller }

func (l *Ledger) handleGetLedger(w http.ResponseWriter, _ *http.Request) error {
	result := Summary{Address: builtin.BlockSigner.Address}
	if err := l.rt.View(func(c *builtin.Contracts) (err error) {
		result.EpochNumber, err = c.BlockSigner.EpochNumber()
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &result)
}

func (l *Ledger) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	hash, err := utils.Bytes32Var(req, "hash")
	if err != nil {
		return err
	}
	result := Block{Hash: hash}
	if err := l.rt.View(func(c *builtin.Contracts) (err error) {
		result.Signers, err = c.BlockSigner.Signers(hash)
		return err
	}); err != nil {
		return err
	}
	if result.Signers == nil {
		result.Signers = []warden.Address{}
	}
	return utils.WriteJSON(w, &result)
}

func (l *Ledger) handleGetIndex(w http.ResponseWriter, req *http.Request) error {
	index, err := utils.Uint64Var(req, "index")
	if err != nil {
		return err
	}
	result := Index{Index: index}
	if err := l.rt.View(func(c *builtin.Contracts) (err error) {
		result.Hashes, err = c.BlockSigner.BlockHashes(index)
		return err
	}); err != nil {
		return err
	}
	if result.Hashes == nil {
		result.Hashes = []warden.Bytes32{}
	}
	return utils.WriteJSON(w, &result)
}

func (l *Ledger) handleSign(w http.ResponseWriter, req *http.Request) error {
	var body SignRequest
	if err := l.auth.ParseJSON(req, &body); err != nil {
		return err
	}
	receipt, err := l.rt.Sign(req.Context(), body.Caller, body.BlockIndex, body.BlockHash)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.ConvertReceipt(receipt))
}

func (l *Ledger) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /ledger").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetLedger))
	sub.Path("/blocks/{hash}").
		Methods(http.MethodGet).
		Name("GET /ledger/blocks/{hash}").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetBlock))
	sub.Path("/indexes/{index}").
		Methods(http.MethodGet).
		Name("GET /ledger/indexes/{index}").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetIndex))
	sub.Path("/signatures").
		Methods(http.MethodPost).
		Name("POST /ledger/signatures").
		HandlerFunc(utils.WrapHandlerFunc(l.handleSign))
}
