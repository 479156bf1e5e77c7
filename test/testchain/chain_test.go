// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/genesis"
	"github.com/standby-warden/warden/warden"
)

func TestChain(t *testing.T) {
	chain, err := NewDefault()
	require.NoError(t, err)
	defer chain.Close()

	node := genesis.DevAccounts()[2].Address
	hashes, err := chain.SignBlocks(3, map[warden.Address][]int{node: {0, 2}})
	require.NoError(t, err)
	require.Len(t, hashes, 3)

	receipt, err := chain.CalculateNext(90, hashes, []warden.Address{node})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), receipt.Seq)

	require.NoError(t, chain.Runtime().View(func(c *builtin.Contracts) error {
		verified, err := c.Rewards.VerifiedBlocks(2, node)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), verified)
		return nil
	}))
}
