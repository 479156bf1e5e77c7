// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger_test

import (
	"crypto/ecdsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standby-warden/warden/api/ledger"
	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/test/datagen"
	"github.com/standby-warden/warden/test/testchain"
	"github.com/standby-warden/warden/warden"
)

func TestLedger(t *testing.T) {
	chain, err := testchain.NewDefault()
	require.NoError(t, err)
	defer chain.Close()

	router := mux.NewRouter()
	ledger.New(chain.Runtime(), utils.NewAuthenticator(chain.Genesis().ID())).Mount(router, "/ledger")
	ts := httptest.NewServer(router)
	defer ts.Close()

	get := func(path string, v any) int {
		res, err := http.Get(ts.URL + path) //#nosec G107
		require.NoError(t, err)
		defer res.Body.Close()
		if v != nil && res.StatusCode == http.StatusOK {
			require.NoError(t, json.NewDecoder(res.Body).Decode(v))
		}
		return res.StatusCode
	}

	var summary ledger.Summary
	require.Equal(t, http.StatusOK, get("/ledger", &summary))
	assert.Equal(t, uint64(1), summary.EpochNumber)

	node1, key1 := datagen.RandomAccount()
	node2, key2 := datagen.RandomAccount()
	nodes := []warden.Address{node1, node2}
	hash := datagen.RandomHash()
	for i, key := range []*ecdsa.PrivateKey{key1, key2} {
		data, status, err := chain.Post(ts.URL+"/ledger/signatures", &ledger.SignRequest{Caller: nodes[i], BlockIndex: 9, BlockHash: hash}, key)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, status, string(data))
		var receipt utils.Receipt
		require.NoError(t, json.Unmarshal(data, &receipt))
		require.Len(t, receipt.Events, 1)
		assert.Equal(t, "Sign", receipt.Events[0].Name)
	}

	// a node cannot confirm on behalf of another
	_, status, err := chain.Post(ts.URL+"/ledger/signatures", &ledger.SignRequest{Caller: node2, BlockIndex: 9, BlockHash: datagen.RandomHash()}, key1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, status)

	var block ledger.Block
	require.Equal(t, http.StatusOK, get("/ledger/blocks/"+hash.String(), &block))
	assert.Equal(t, nodes, block.Signers)

	var index ledger.Index
	require.Equal(t, http.StatusOK, get("/ledger/indexes/9", &index))
	assert.Equal(t, []warden.Bytes32{hash, hash}, index.Hashes, "one entry per signature")

	require.Equal(t, http.StatusOK, get("/ledger/indexes/10", &index))
	assert.Empty(t, index.Hashes)

	assert.Equal(t, http.StatusBadRequest, get("/ledger/blocks/0x12", nil))
	assert.Equal(t, http.StatusBadRequest, get("/ledger/indexes/-1", nil))
}
