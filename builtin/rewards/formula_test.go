// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProportional(t *testing.T) {
	f, ok := LookupFormula(FormulaProportional)
	assert.True(t, ok)

	tests := []struct {
		name     string
		verified uint64
		total    uint64
		slashed  bool
		expected int64
	}{
		{"share", 5, 20, false, 250},
		{"slashed", 5, 20, true, 0},
		{"no confirmations at all", 5, 0, false, 0},
		{"no confirmations of node", 0, 20, false, 0},
		{"rounds down", 1, 3, false, 333},
		{"sole signer", 7, 7, false, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.Reward(big.NewInt(1000), tt.verified, tt.total, tt.slashed).Int64())
		})
	}
}

func TestProportionalMultipliesFirst(t *testing.T) {
	f, _ := LookupFormula(FormulaProportional)
	// 10 * 3 / 4 would be 6 if divided first
	assert.Equal(t, int64(7), f.Reward(big.NewInt(10), 3, 4, false).Int64())

	huge, _ := new(big.Int).SetString("1000000000000000000000000", 10)
	assert.Equal(t, "333333333333333333333333", f.Reward(huge, 1, 3, false).String())
}

func TestZero(t *testing.T) {
	f, ok := LookupFormula(FormulaZero)
	assert.True(t, ok)
	assert.Equal(t, 0, f.Reward(big.NewInt(1000), 5, 20, false).Sign())

	_, ok = LookupFormula("unknown")
	assert.False(t, ok)
	assert.Equal(t, []string{FormulaProportional, FormulaZero}, FormulaNames())
}
