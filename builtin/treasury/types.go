// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury

import (
	"math/big"

	"github.com/standby-warden/warden/warden"
)

// Transaction is a value transfer waiting for, or having reached, owner quorum.
type Transaction struct {
	To       warden.Address
	Value    *big.Int
	Executed bool
}

// IsEmpty returns whether the slot holds no transaction.
func (t *Transaction) IsEmpty() bool {
	return t.To.IsZero() && (t.Value == nil || t.Value.Sign() == 0) && !t.Executed
}

// TransactionInfo is a transaction with its id and current confirmation count.
type TransactionInfo struct {
	ID            uint64         `json:"id"`
	To            warden.Address `json:"to"`
	Value         *big.Int       `json:"value"`
	Executed      bool           `json:"executed"`
	Confirmations uint64         `json:"confirmations"`
}
