// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/builtin/treasury"
	"github.com/standby-warden/warden/warden"
)

type Summary struct {
	Owners           []warden.Address      `json:"owners"`
	Required         uint64                `json:"required"`
	Balance          *math.HexOrDecimal256 `json:"balance"`
	TransactionCount uint64                `json:"transactionCount"`
	Pending          []uint64              `json:"pending"`
}

type Transaction struct {
	ID            uint64                `json:"id"`
	To            warden.Address        `json:"to"`
	Value         *math.HexOrDecimal256 `json:"value"`
	Executed      bool                  `json:"executed"`
	Confirmations uint64                `json:"confirmations"`
}

func convertTransaction(info *treasury.TransactionInfo) *Transaction {
	return &Transaction{
		ID:            info.ID,
		To:            info.To,
		Value:         utils.Amount(info.Value),
		Executed:      info.Executed,
		Confirmations: info.Confirmations,
	}
}

type Account struct {
	Address          warden.Address `json:"address"`
	IsOwner          bool           `json:"isOwner"`
	TransactionCount uint64         `json:"transactionCount"`
	ExecutedCount    uint64         `json:"executedCount"`
}

type CreateRequest struct {
	Caller warden.Address        `json:"caller"`
	To     warden.Address        `json:"to"`
	Value  *math.HexOrDecimal256 `json:"value"`
}

func (r *CreateRequest) CallerAddress() warden.Address { return r.Caller }

type Created struct {
	ID      uint64         `json:"id"`
	Receipt *utils.Receipt `json:"receipt"`
}

type ConfirmRequest struct {
	Caller warden.Address `json:"caller"`
}

func (r *ConfirmRequest) CallerAddress() warden.Address { return r.Caller }
