// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"
	"sort"
)

// Formula computes the share of the chain reward a node earned in an epoch.
type Formula interface {
	Name() string
	Reward(chainReward *big.Int, verified, total uint64, slashed bool) *big.Int
}

const (
	FormulaProportional = "proportional"
	FormulaZero         = "zero"

	// DefaultFormula is installed at initialization.
	DefaultFormula = FormulaProportional
)

var formulas = map[string]Formula{
	FormulaProportional: proportional{},
	FormulaZero:         zero{},
}

// LookupFormula returns the formula registered under name.
func LookupFormula(name string) (Formula, bool) {
	f, ok := formulas[name]
	return f, ok
}

// FormulaNames returns the names of all registered formulas, sorted.
func FormulaNames() []string {
	names := make([]string, 0, len(formulas))
	for name := range formulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// proportional pays chainReward * verified / total, rounding down.
type proportional struct{}

func (proportional) Name() string { return FormulaProportional }

func (proportional) Reward(chainReward *big.Int, verified, total uint64, slashed bool) *big.Int {
	if slashed || total == 0 || verified == 0 {
		return new(big.Int)
	}
	r := new(big.Int).Mul(chainReward, new(big.Int).SetUint64(verified))
	return r.Quo(r, new(big.Int).SetUint64(total))
}

// zero pays nothing. It is installed to stop payouts while keeping all records.
type zero struct{}

func (zero) Name() string { return FormulaZero }

func (zero) Reward(*big.Int, uint64, uint64, bool) *big.Int {
	return new(big.Int)
}
