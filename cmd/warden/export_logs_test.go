// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standby-warden/warden/genesis"
	"github.com/standby-warden/warden/test/testchain"
	"github.com/standby-warden/warden/warden"
)

func TestExportLogs(t *testing.T) {
	chain, err := testchain.NewDefault()
	require.NoError(t, err)
	defer chain.Close()

	node := genesis.DevAccounts()[3].Address
	hashes, err := chain.SignBlocks(2, map[warden.Address][]int{node: {0, 1}})
	require.NoError(t, err)
	_, err = chain.CalculateNext(100, hashes, []warden.Address{node})
	require.NoError(t, err)

	db := chain.LogDB()
	lastSeq, err := db.LastSeq(context.Background())
	require.NoError(t, err)
	require.NotZero(t, lastSeq)

	events, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	transfers, err := db.FilterTransfers(context.Background(), nil)
	require.NoError(t, err)

	for _, step := range []uint64{0, 1, 2, 100} {
		var (
			buf      bytes.Buffer
			reported []uint64
		)
		n, err := exportLogs(context.Background(), db, &buf, lastSeq, step, func(seq uint64) {
			reported = append(reported, seq)
		})
		require.NoError(t, err)
		assert.Equal(t, len(events)+len(transfers), n, "step %d", step)
		require.NotEmpty(t, reported)
		assert.Equal(t, lastSeq, reported[len(reported)-1])

		var (
			scanner = bufio.NewScanner(&buf)
			prevSeq uint64
			kinds   = map[string]int{}
		)
		for scanner.Scan() {
			var line exportedLog
			require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
			kinds[line.Kind]++

			var seq uint64
			switch line.Kind {
			case "event":
				require.NotNil(t, line.Event)
				seq = line.Event.Seq
			case "transfer":
				require.NotNil(t, line.Transfer)
				seq = line.Transfer.Seq
			default:
				t.Fatalf("unexpected kind %q", line.Kind)
			}
			assert.GreaterOrEqual(t, seq, prevSeq, "ordered by operation")
			prevSeq = seq
		}
		assert.Equal(t, len(events), kinds["event"])
		assert.Equal(t, len(transfers), kinds["transfer"])
	}
}

func TestExportLogsCancelled(t *testing.T) {
	chain, err := testchain.NewDefault()
	require.NoError(t, err)
	defer chain.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err = exportLogs(ctx, chain.LogDB(), &buf, 1, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.Bytes())
}
