// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"encoding/json"

	"github.com/standby-warden/warden/state"
	"github.com/standby-warden/warden/warden"
)

// Event is a log emitted by a native contract, similar to a solidity event.
// Topics carry the indexed parameters, Data the rest of them as a json object.
type Event struct {
	Address warden.Address
	Name    string
	Topics  []warden.Bytes32
	Data    json.RawMessage
}

// EmitFunc receives the events emitted by contracts.
type EmitFunc func(ev *Event)

// Context binds a contract address to the state it reads and writes.
type Context struct {
	address warden.Address
	state   *state.State
	emit    EmitFunc
}

func NewContext(address warden.Address, state *state.State, emit EmitFunc) *Context {
	return &Context{
		address: address,
		state:   state,
		emit:    emit,
	}
}

func (c *Context) Address() warden.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Emit records an event of the contract. Non-json-encodable data is a programming error.
func (c *Context) Emit(name string, topics []warden.Bytes32, data map[string]any) {
	if c.emit == nil {
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	c.emit(&Event{
		Address: c.address,
		Name:    name,
		Topics:  topics,
		Data:    raw,
	})
}

// NameToSlot converts a variable name into its storage position.
func NameToSlot(name string) warden.Bytes32 {
	return warden.BytesToBytes32([]byte(name))
}
