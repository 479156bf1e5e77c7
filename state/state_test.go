// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standby-warden/warden/lvldb"
	"github.com/standby-warden/warden/warden"
)

func newTestState(t *testing.T) (*State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestStateBalance(t *testing.T) {
	st, _ := newTestState(t)
	addr := warden.BytesToAddress([]byte("acc"))

	bal, err := st.GetBalance(addr)
	require.NoError(t, err)
	assert.Equal(t, 0, bal.Sign())

	require.NoError(t, st.SetBalance(addr, big.NewInt(100)))
	bal, err = st.GetBalance(addr)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), bal)

	// returned value is a copy
	bal.SetInt64(1)
	bal, _ = st.GetBalance(addr)
	assert.Equal(t, big.NewInt(100), bal)

	assert.Error(t, st.SetBalance(addr, big.NewInt(-1)))
}

func TestStateStorage(t *testing.T) {
	st, _ := newTestState(t)
	addr := warden.BytesToAddress([]byte("contract"))
	key := warden.BytesToBytes32([]byte("slot"))

	v, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	val := warden.BytesToBytes32([]byte{1, 2, 3})
	st.SetStorage(addr, key, val)
	v, err = st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, val, v)

	st.SetStorage(addr, key, warden.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	require.NoError(t, err)
	assert.Len(t, raw, 0)
}

func TestStateRevert(t *testing.T) {
	st, _ := newTestState(t)
	addr := warden.BytesToAddress([]byte("acc"))
	key := warden.BytesToBytes32([]byte("slot"))

	require.NoError(t, st.SetBalance(addr, big.NewInt(10)))
	chk := st.NewCheckpoint()
	require.NoError(t, st.SetBalance(addr, big.NewInt(20)))
	st.SetStorage(addr, key, warden.BytesToBytes32([]byte{9}))

	st.RevertTo(chk)

	bal, _ := st.GetBalance(addr)
	assert.Equal(t, big.NewInt(10), bal)
	v, _ := st.GetStorage(addr, key)
	assert.True(t, v.IsZero())
}

func TestStateCommit(t *testing.T) {
	st, db := newTestState(t)
	addr := warden.BytesToAddress([]byte("contract"))
	key := warden.BytesToBytes32([]byte("slot"))

	require.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes([]uint64{1, 2, 3})
	}))
	require.NoError(t, st.SetBalance(addr, big.NewInt(42)))
	assert.Equal(t, 2, st.Changes())
	require.NoError(t, st.Commit())
	assert.Equal(t, 0, st.Changes())

	// a fresh state over the same store sees the committed data
	reopened := New(db)
	var decoded []uint64
	require.NoError(t, reopened.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &decoded)
	}))
	assert.Equal(t, []uint64{1, 2, 3}, decoded)

	bal, err := reopened.GetBalance(addr)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), bal)

	// zeroing deletes
	require.NoError(t, reopened.SetBalance(addr, big.NewInt(0)))
	reopened.SetRawStorage(addr, key, nil)
	require.NoError(t, reopened.Commit())

	again := New(db)
	bal, _ = again.GetBalance(addr)
	assert.Equal(t, 0, bal.Sign())
	raw, _ := again.GetRawStorage(addr, key)
	assert.Len(t, raw, 0)
}

func TestStateDecodeError(t *testing.T) {
	st, _ := newTestState(t)
	addr := warden.BytesToAddress([]byte("contract"))
	key := warden.BytesToBytes32([]byte("slot"))
	st.SetRawStorage(addr, key, []byte{0xff})

	var v uint64
	err := st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &v)
	})
	var stateErr *Error
	assert.ErrorAs(t, err, &stateErr)
}
