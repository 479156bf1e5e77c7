// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocksigner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standby-warden/warden/builtin/reverts"
	"github.com/standby-warden/warden/builtin/solidity"
	"github.com/standby-warden/warden/lvldb"
	"github.com/standby-warden/warden/state"
	"github.com/standby-warden/warden/warden"
)

func newTestSigner(t *testing.T) (*BlockSigner, *[]*solidity.Event) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var events []*solidity.Event
	bs := New(warden.BlockSignerAddress, state.New(db), func(ev *solidity.Event) { events = append(events, ev) })
	require.NoError(t, bs.Initialize(1000))
	return bs, &events
}

func TestInitialize(t *testing.T) {
	bs, _ := newTestSigner(t)

	n, err := bs.EpochNumber()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), n)

	assert.ErrorIs(t, bs.Initialize(1), reverts.ErrAlreadyInitialized)
}

func TestSign(t *testing.T) {
	bs, events := newTestSigner(t)
	n1 := warden.BytesToAddress([]byte("n1"))
	n2 := warden.BytesToAddress([]byte("n2"))
	h1 := warden.Blake2b([]byte("b1"))
	h2 := warden.Blake2b([]byte("b2"))

	require.NoError(t, bs.Sign(n1, 1, h1))
	require.NoError(t, bs.Sign(n2, 1, h1))
	require.NoError(t, bs.Sign(n1, 1, h2))

	signers, err := bs.Signers(h1)
	require.NoError(t, err)
	assert.Equal(t, []warden.Address{n1, n2}, signers)

	hashes, err := bs.BlockHashes(1)
	require.NoError(t, err)
	assert.Equal(t, []warden.Bytes32{h1, h1, h2}, hashes)

	ok, err := bs.HasConfirmed(n2, h2)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = bs.HasConfirmed(n1, h2)
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, *events, 3)
	assert.Equal(t, "Sign", (*events)[0].Name)
}

func TestCountConfirmations(t *testing.T) {
	bs, _ := newTestSigner(t)

	nodes := []warden.Address{
		warden.BytesToAddress([]byte("n1")),
		warden.BytesToAddress([]byte("n2")),
		warden.BytesToAddress([]byte("n3")),
	}
	outsider := warden.BytesToAddress([]byte("outsider"))

	var hashes []warden.Bytes32
	for i := uint64(0); i < 5; i++ {
		h := warden.Blake2b([]byte{byte(i)})
		hashes = append(hashes, h)
		require.NoError(t, bs.Sign(nodes[0], i, h))
		require.NoError(t, bs.Sign(outsider, i, h))
		if i < 2 {
			require.NoError(t, bs.Sign(nodes[1], i, h))
		}
	}
	// a repeated signature is counted as a separate record
	require.NoError(t, bs.Sign(nodes[1], 0, hashes[0]))

	counts, err := bs.CountConfirmations(hashes, nodes)
	require.NoError(t, err)
	assert.Equal(t, map[warden.Address]uint64{
		nodes[0]: 5,
		nodes[1]: 3,
		nodes[2]: 0,
	}, counts)

	// unknown hashes count nothing
	counts, err = bs.CountConfirmations([]warden.Bytes32{warden.Blake2b([]byte("unknown"))}, nodes[:1])
	require.NoError(t, err)
	assert.Equal(t, uint64(0), counts[nodes[0]])
}
