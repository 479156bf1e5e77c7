// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/standby-warden/warden/runtime"
	"github.com/standby-warden/warden/warden"
)

// Event is a contract event in api responses.
type Event struct {
	Address warden.Address   `json:"address"`
	Name    string           `json:"name"`
	Topics  []warden.Bytes32 `json:"topics"`
	Data    json.RawMessage  `json:"data"`
}

// Transfer is a native value movement in api responses.
type Transfer struct {
	Sender    warden.Address        `json:"sender"`
	Recipient warden.Address        `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
}

// Receipt is responded for a committed operation.
type Receipt struct {
	Seq       uint64         `json:"seq"`
	Op        string         `json:"op"`
	Caller    warden.Address `json:"caller"`
	Time      uint64         `json:"time"`
	Events    []*Event       `json:"events"`
	Transfers []*Transfer    `json:"transfers"`
}

// Amount converts a big integer for json encoding.
func Amount(v *big.Int) *math.HexOrDecimal256 {
	if v == nil {
		return nil
	}
	return (*math.HexOrDecimal256)(new(big.Int).Set(v))
}

// ConvertReceipt converts a runtime receipt.
func ConvertReceipt(r *runtime.Receipt) *Receipt {
	receipt := &Receipt{
		Seq:       r.Seq,
		Op:        r.Op,
		Caller:    r.Caller,
		Time:      r.Time,
		Events:    make([]*Event, 0, len(r.Events)),
		Transfers: make([]*Transfer, 0, len(r.Transfers)),
	}
	for _, ev := range r.Events {
		receipt.Events = append(receipt.Events, &Event{
			Address: ev.Address,
			Name:    ev.Name,
			Topics:  ev.Topics,
			Data:    ev.Data,
		})
	}
	for _, tr := range r.Transfers {
		receipt.Transfers = append(receipt.Transfers, &Transfer{
			Sender:    tr.Sender,
			Recipient: tr.Recipient,
			Amount:    Amount(tr.Amount),
		})
	}
	return receipt
}
