// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/state"
)

// Builder helper to build the genesis state.
type Builder struct {
	stateProcs []func(state *state.State, c *builtin.Contracts) error
}

// State add a state process.
func (b *Builder) State(proc func(state *state.State, c *builtin.Contracts) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Build runs all state processes in order, stopping at the first failure.
func (b *Builder) Build(state *state.State, c *builtin.Contracts) error {
	for i, proc := range b.stateProcs {
		if err := proc(state, c); err != nil {
			return errors.WithMessagef(err, "state process #%d", i)
		}
	}
	return nil
}
