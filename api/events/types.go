// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"encoding/json"

	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/logdb"
	"github.com/standby-warden/warden/warden"
)

type EventCriteria struct {
	Address *warden.Address `json:"address"`
	Name    string          `json:"name"`
	Topic0  *warden.Bytes32 `json:"topic0"`
	Topic1  *warden.Bytes32 `json:"topic1"`
	Topic2  *warden.Bytes32 `json:"topic2"`
	Topic3  *warden.Bytes32 `json:"topic3"`
}

type EventFilter struct {
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *utils.Range     `json:"range"`
	Options     *utils.Options   `json:"options"`
	Order       string           `json:"order"`
}

type Meta struct {
	Seq    uint64         `json:"seq"`
	Index  uint32         `json:"index"`
	Time   uint64         `json:"time"`
	Op     string         `json:"op"`
	Caller warden.Address `json:"caller"`
}

type FilteredEvent struct {
	Address warden.Address   `json:"address"`
	Name    string           `json:"name"`
	Topics  []warden.Bytes32 `json:"topics"`
	Data    json.RawMessage  `json:"data"`
	Meta    Meta             `json:"meta"`
}

func convertCriteria(c *EventCriteria) *logdb.EventCriteria {
	return &logdb.EventCriteria{
		Address: c.Address,
		Name:    c.Name,
		Topics:  [4]*warden.Bytes32{c.Topic0, c.Topic1, c.Topic2, c.Topic3},
	}
}

func convertEvent(ev *logdb.Event) *FilteredEvent {
	fe := &FilteredEvent{
		Address: ev.Address,
		Name:    ev.Name,
		Topics:  make([]warden.Bytes32, 0, 4),
		Data:    ev.Data,
		Meta: Meta{
			Seq:    ev.Seq,
			Index:  ev.Index,
			Time:   ev.Time,
			Op:     ev.Op,
			Caller: ev.Caller,
		},
	}
	for _, topic := range ev.Topics {
		if topic != nil {
			fe.Topics = append(fe.Topics, *topic)
		}
	}
	return fe
}
