// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"encoding/json"
	"math/big"

	"github.com/standby-warden/warden/warden"
)

// Event is a contract event emitted by a committed operation.
type Event struct {
	Seq     uint64
	Index   uint32
	Time    uint64
	Op      string
	Caller  warden.Address
	Address warden.Address
	Name    string
	Topics  [4]*warden.Bytes32
	Data    json.RawMessage
}

// Transfer is a native value movement caused by a committed operation.
type Transfer struct {
	Seq       uint64
	Index     uint32
	Time      uint64
	Caller    warden.Address
	Sender    warden.Address
	Recipient warden.Address
	Amount    *big.Int
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds the operation sequence numbers, both ends included.
// To below From means no upper bound.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventCriteria matches events by address, name and topics. Nil fields match anything.
type EventCriteria struct {
	Address *warden.Address
	Name    string
	Topics  [4]*warden.Bytes32
}

type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}

type TransferCriteria struct {
	Caller    *warden.Address
	Sender    *warden.Address
	Recipient *warden.Address
}

type TransferFilter struct {
	CriteriaSet []*TransferCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}
