// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/logdb"
	"github.com/standby-warden/warden/warden"
)

type TransferCriteria struct {
	Caller    *warden.Address `json:"caller"`
	Sender    *warden.Address `json:"sender"`
	Recipient *warden.Address `json:"recipient"`
}

type TransferFilter struct {
	CriteriaSet []*TransferCriteria `json:"criteriaSet"`
	Range       *utils.Range        `json:"range"`
	Options     *utils.Options      `json:"options"`
	Order       string              `json:"order"`
}

type Meta struct {
	Seq    uint64         `json:"seq"`
	Index  uint32         `json:"index"`
	Time   uint64         `json:"time"`
	Caller warden.Address `json:"caller"`
}

type FilteredTransfer struct {
	Sender    warden.Address        `json:"sender"`
	Recipient warden.Address        `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Meta      Meta                  `json:"meta"`
}

func convertTransfer(tr *logdb.Transfer) *FilteredTransfer {
	return &FilteredTransfer{
		Sender:    tr.Sender,
		Recipient: tr.Recipient,
		Amount:    utils.Amount(tr.Amount),
		Meta: Meta{
			Seq:    tr.Seq,
			Index:  tr.Index,
			Time:   tr.Time,
			Caller: tr.Caller,
		},
	}
}
