// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial state of the native contracts.
package genesis

import (
	"math/big"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/builtin/rewards"
	"github.com/standby-warden/warden/state"
	"github.com/standby-warden/warden/warden"
)

// Genesis to build the initial state.
type Genesis struct {
	builder *Builder
	id      warden.Bytes32
	name    string
	config  *Config
}

// New validates cfg and creates the genesis it describes.
func New(name string, cfg *Config) (*Genesis, error) {
	r, err := cfg.resolve()
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "encode genesis config")
	}

	owner := r.rewards.Owner
	builder := new(Builder).
		State(func(_ *state.State, c *builtin.Contracts) error {
			return errors.WithMessage(c.BlockSigner.Initialize(r.epochNumber), "block signer")
		}).
		State(func(_ *state.State, c *builtin.Contracts) error {
			return errors.WithMessage(c.Treasury.Initialize(r.treasuryOwners, r.required), "treasury")
		}).
		State(func(_ *state.State, c *builtin.Contracts) error {
			if err := c.Rewards.Initialize(r.rewards); err != nil {
				return errors.WithMessage(err, "rewards")
			}
			if err := c.Rewards.SetTreasuryAddress(owner, builtin.Treasury.Address); err != nil {
				return errors.WithMessage(err, "rewards treasury")
			}
			for _, addr := range r.whitelist {
				if err := c.Rewards.AddWhitelisted(owner, addr); err != nil {
					return errors.WithMessagef(err, "whitelist %v", addr)
				}
			}
			if r.formula != rewards.DefaultFormula {
				return errors.WithMessage(c.Rewards.SetFormula(owner, r.formula), "rewards formula")
			}
			return nil
		}).
		State(func(st *state.State, _ *builtin.Contracts) error {
			for _, addr := range r.accountOrder {
				if err := addBalance(st, addr, r.accounts[addr]); err != nil {
					return err
				}
			}
			if r.funds.Sign() > 0 {
				return addBalance(st, builtin.Treasury.Address, r.funds)
			}
			return nil
		})

	return &Genesis{
		builder: builder,
		id:      warden.Blake2b([]byte(name), data),
		name:    name,
		config:  cfg,
	}, nil
}

// Load reads the genesis file at path.
func Load(path string) (*Genesis, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	g, err := New("custom", cfg)
	if err != nil {
		return nil, errors.WithMessagef(err, "genesis file %s", path)
	}
	return g, nil
}

func addBalance(st *state.State, addr warden.Address, amount *big.Int) error {
	bal, err := st.GetBalance(addr)
	if err != nil {
		return err
	}
	return st.SetBalance(addr, new(big.Int).Add(bal, amount))
}

// Build applies the genesis onto the contracts bound over st.
func (g *Genesis) Build(st *state.State, c *builtin.Contracts) error {
	return g.builder.Build(st, c)
}

// ID returns the genesis ID, a hash over the name and the config.
func (g *Genesis) ID() warden.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// Config returns the config the genesis is made of.
func (g *Genesis) Config() *Config {
	return g.config
}
