// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/builtin/rewards"
	"github.com/standby-warden/warden/warden"
)

// EngineAlias stands for the reward engine address in the treasury owner list.
const EngineAlias = "engine"

// Config is the genesis file content.
type Config struct {
	Ledger   LedgerConfig   `yaml:"ledger"`
	Rewards  RewardsConfig  `yaml:"rewards"`
	Treasury TreasuryConfig `yaml:"treasury"`
	Accounts []Account      `yaml:"accounts,omitempty"`
}

type LedgerConfig struct {
	EpochNumber uint64 `yaml:"epochNumber"`
}

type RewardsConfig struct {
	Owner               string   `yaml:"owner"`
	Whitelist           []string `yaml:"whitelist,omitempty"`
	SlashWindow         uint64   `yaml:"slashWindow"`
	RewardTransferEpoch uint64   `yaml:"rewardTransferEpoch"`
	InitialEpoch        uint64   `yaml:"initialEpoch,omitempty"`
	Formula             string   `yaml:"formula,omitempty"`
}

type TreasuryConfig struct {
	Owners   []string `yaml:"owners"`
	Required uint64   `yaml:"required"`
	Funds    string   `yaml:"funds,omitempty"`
}

// Account is a native balance allocated at genesis.
type Account struct {
	Address string `yaml:"address"`
	Balance string `yaml:"balance"`
}

// LoadConfig reads a YAML genesis file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML genesis document. Unknown fields are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	return &cfg, nil
}

// resolved is a validated Config, with all addresses and amounts parsed.
type resolved struct {
	epochNumber    uint64
	rewards        rewards.Config
	formula        string
	whitelist      []warden.Address
	treasuryOwners []warden.Address
	required       uint64
	funds          *big.Int
	accounts       map[warden.Address]*big.Int
	accountOrder   []warden.Address
}

func parseAddress(field, s string) (warden.Address, error) {
	addr, err := warden.ParseAddress(s)
	if err != nil {
		return warden.Address{}, errors.WithMessagef(err, "%s", field)
	}
	return addr, nil
}

func parseAmount(field, s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, errors.Errorf("%s: invalid amount %q", field, s)
	}
	return v, nil
}

func (cfg *Config) resolve() (*resolved, error) {
	r := &resolved{
		epochNumber: cfg.Ledger.EpochNumber,
		formula:     cfg.Rewards.Formula,
		required:    cfg.Treasury.Required,
		accounts:    make(map[warden.Address]*big.Int),
	}
	if r.formula == "" {
		r.formula = rewards.DefaultFormula
	}
	if _, ok := rewards.LookupFormula(r.formula); !ok {
		return nil, errors.Errorf("rewards.formula: unknown formula %q, want one of %v", r.formula, rewards.FormulaNames())
	}

	owner, err := parseAddress("rewards.owner", cfg.Rewards.Owner)
	if err != nil {
		return nil, err
	}
	if cfg.Rewards.SlashWindow == 0 {
		return nil, errors.New("rewards.slashWindow: must be positive")
	}
	if cfg.Rewards.RewardTransferEpoch == 0 {
		return nil, errors.New("rewards.rewardTransferEpoch: must be positive")
	}
	r.rewards = rewards.Config{
		Owner:               owner,
		Ledger:              builtin.BlockSigner.Address,
		SlashWindow:         cfg.Rewards.SlashWindow,
		RewardTransferEpoch: cfg.Rewards.RewardTransferEpoch,
		InitialEpoch:        cfg.Rewards.InitialEpoch,
	}
	for i, s := range cfg.Rewards.Whitelist {
		addr, err := parseAddress("rewards.whitelist["+strconv.Itoa(i)+"]", s)
		if err != nil {
			return nil, err
		}
		r.whitelist = append(r.whitelist, addr)
	}

	if len(cfg.Treasury.Owners) == 0 {
		return nil, errors.New("treasury.owners: must not be empty")
	}
	for i, s := range cfg.Treasury.Owners {
		if strings.EqualFold(s, EngineAlias) {
			r.treasuryOwners = append(r.treasuryOwners, builtin.Rewards.Address)
			continue
		}
		addr, err := parseAddress("treasury.owners["+strconv.Itoa(i)+"]", s)
		if err != nil {
			return nil, err
		}
		r.treasuryOwners = append(r.treasuryOwners, addr)
	}
	if r.required == 0 || r.required > uint64(len(r.treasuryOwners)) {
		return nil, errors.Errorf("treasury.required: must be in [1, %d]", len(r.treasuryOwners))
	}
	if r.funds, err = parseAmount("treasury.funds", cfg.Treasury.Funds); err != nil {
		return nil, err
	}

	for i, a := range cfg.Accounts {
		field := "accounts[" + strconv.Itoa(i) + "]"
		addr, err := parseAddress(field+".address", a.Address)
		if err != nil {
			return nil, err
		}
		if _, dup := r.accounts[addr]; dup {
			return nil, errors.Errorf("%s: duplicated address %v", field, addr)
		}
		bal, err := parseAmount(field+".balance", a.Balance)
		if err != nil {
			return nil, err
		}
		if bal.Sign() == 0 {
			return nil, errors.Errorf("%s: balance must be a non-zero integer", field)
		}
		r.accounts[addr] = bal
		r.accountOrder = append(r.accountOrder, addr)
	}
	return r, nil
}
