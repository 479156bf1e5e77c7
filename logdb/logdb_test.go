// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standby-warden/warden/logdb"
	"github.com/standby-warden/warden/warden"
)

var (
	contractA = warden.BytesToAddress([]byte("contractA"))
	contractB = warden.BytesToAddress([]byte("contractB"))
	caller    = warden.BytesToAddress([]byte("caller"))
	topicX    = warden.BytesToBytes32([]byte("x"))
	topicY    = warden.BytesToBytes32([]byte("y"))
)

func newTestDB(t *testing.T) *logdb.LogDB {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	for seq := uint64(1); seq <= 10; seq++ {
		b := db.NewBatch(seq, 1000+seq, "op", caller)
		topic := topicX
		if seq%2 == 0 {
			topic = topicY
		}
		b.InsertEvent(contractA, "Ping", []warden.Bytes32{topic}, []byte(`{"n":1}`))
		b.InsertEvent(contractB, "Pong", nil, nil)
		if seq%5 == 0 {
			b.InsertTransfer(contractA, caller, big.NewInt(int64(seq)))
		}
		require.NoError(t, b.Commit())
	}
	last, err := db.LastSeq(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(10), last)
	return db
}

func TestFilterEvents(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	all, err := db.FilterEvents(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 20)
	assert.Equal(t, uint64(1), all[0].Seq)
	assert.Equal(t, uint32(1), all[1].Index)
	assert.Equal(t, "Pong", all[1].Name)
	assert.Equal(t, caller, all[0].Caller)
	assert.Equal(t, `{"n":1}`, string(all[0].Data))
	assert.Equal(t, topicX, *all[0].Topics[0])
	assert.Nil(t, all[0].Topics[1])

	tests := []struct {
		name   string
		filter *logdb.EventFilter
		count  int
		first  uint64
	}{
		{"by address", &logdb.EventFilter{CriteriaSet: []*logdb.EventCriteria{{Address: &contractA}}}, 10, 1},
		{"by name", &logdb.EventFilter{CriteriaSet: []*logdb.EventCriteria{{Name: "Pong"}}}, 10, 1},
		{"by topic", &logdb.EventFilter{CriteriaSet: []*logdb.EventCriteria{{Topics: [4]*warden.Bytes32{&topicY}}}}, 5, 2},
		{"any criteria", &logdb.EventFilter{CriteriaSet: []*logdb.EventCriteria{
			{Topics: [4]*warden.Bytes32{&topicY}},
			{Address: &contractB},
		}}, 15, 1},
		{"range", &logdb.EventFilter{Range: &logdb.Range{From: 3, To: 4}}, 4, 3},
		{"open range", &logdb.EventFilter{Range: &logdb.Range{From: 9}}, 4, 9},
		{"desc with limit", &logdb.EventFilter{Order: logdb.DESC, Options: &logdb.Options{Offset: 0, Limit: 3}}, 3, 10},
		{"offset", &logdb.EventFilter{Options: &logdb.Options{Offset: 18, Limit: 10}}, 2, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := db.FilterEvents(ctx, tt.filter)
			require.NoError(t, err)
			require.Len(t, events, tt.count)
			assert.Equal(t, tt.first, events[0].Seq)
		})
	}
}

func TestFilterTransfers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	all, err := db.FilterTransfers(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(5), all[0].Amount.Int64())
	assert.Equal(t, uint64(1005), all[0].Time)

	transfers, err := db.FilterTransfers(ctx, &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{{Recipient: &caller}},
		Order:       logdb.DESC,
	})
	require.NoError(t, err)
	require.Len(t, transfers, 2)
	assert.Equal(t, uint64(10), transfers[0].Seq)

	transfers, err = db.FilterTransfers(ctx, &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{{Sender: &caller}},
	})
	require.NoError(t, err)
	assert.Empty(t, transfers)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.db")
	db, err := logdb.New(path)
	require.NoError(t, err)
	require.NoError(t, db.NewBatch(7, 1, "sign", caller).InsertEvent(contractA, "Sign", nil, nil).Commit())
	require.NoError(t, db.Close())

	db, err = logdb.New(path)
	require.NoError(t, err)
	defer db.Close()
	last, err := db.LastSeq(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(7), last)
	assert.NotEmpty(t, db.DriverVersion())
}
