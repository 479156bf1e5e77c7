// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury_test

import (
	"crypto/ecdsa"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standby-warden/warden/api/treasury"
	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/genesis"
	"github.com/standby-warden/warden/test/datagen"
	"github.com/standby-warden/warden/test/testchain"
)

func initTreasuryServer(t *testing.T) (*httptest.Server, *testchain.Chain) {
	chain, err := testchain.NewDefault()
	require.NoError(t, err)
	t.Cleanup(func() { chain.Close() })

	router := mux.NewRouter()
	treasury.New(chain.Runtime(), utils.NewAuthenticator(chain.Genesis().ID())).Mount(router, "/treasury")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, chain
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return data, res.StatusCode
}

func httpPost(t *testing.T, chain *testchain.Chain, url string, body any, key *ecdsa.PrivateKey) ([]byte, int) {
	data, status, err := chain.Post(url, body, key)
	require.NoError(t, err)
	return data, status
}

func TestGetTreasury(t *testing.T) {
	ts, _ := initTreasuryServer(t)

	res, status := httpGet(t, ts.URL+"/treasury")
	require.Equal(t, http.StatusOK, status, string(res))
	var summary treasury.Summary
	require.NoError(t, json.Unmarshal(res, &summary))

	accs := genesis.DevAccounts()
	assert.Equal(t, builtin.Rewards.Address, summary.Owners[0])
	assert.Equal(t, accs[0].Address, summary.Owners[1])
	assert.Equal(t, uint64(1), summary.Required)
	assert.Equal(t, "1000000000000000000000000", (*big.Int)(summary.Balance).String())
	assert.Equal(t, uint64(0), summary.TransactionCount)
	assert.Empty(t, summary.Pending)
}

func TestTransactionLifecycle(t *testing.T) {
	ts, chain := initTreasuryServer(t)
	owner, ownerKey := chain.Owner().Address, chain.Owner().PrivateKey
	to, toKey := datagen.RandomAccount()

	_, status := httpPost(t, chain, ts.URL+"/treasury/transactions", &treasury.CreateRequest{
		Caller: to,
		To:     to,
		Value:  (*math.HexOrDecimal256)(big.NewInt(5)),
	}, toKey)
	assert.Equal(t, http.StatusForbidden, status)

	res, status := httpPost(t, chain, ts.URL+"/treasury/transactions", &treasury.CreateRequest{
		Caller: owner,
		To:     to,
		Value:  (*math.HexOrDecimal256)(big.NewInt(5)),
	}, ownerKey)
	require.Equal(t, http.StatusOK, status, string(res))
	var created treasury.Created
	require.NoError(t, json.Unmarshal(res, &created))
	assert.Equal(t, uint64(0), created.ID)
	require.Len(t, created.Receipt.Events, 1)
	assert.Equal(t, "Submission", created.Receipt.Events[0].Name)

	res, status = httpGet(t, ts.URL+"/treasury/transactions/0")
	require.Equal(t, http.StatusOK, status, string(res))
	var tx treasury.Transaction
	require.NoError(t, json.Unmarshal(res, &tx))
	assert.Equal(t, to, tx.To)
	assert.False(t, tx.Executed)
	assert.Equal(t, uint64(0), tx.Confirmations)

	// the reward engine is a treasury owner, but nobody can confirm in its name
	_, status = httpPost(t, chain, ts.URL+"/treasury/transactions/0/confirmations", &treasury.ConfirmRequest{Caller: builtin.Rewards.Address}, toKey)
	assert.Equal(t, http.StatusForbidden, status)

	res, status = httpPost(t, chain, ts.URL+"/treasury/transactions/0/confirmations", &treasury.ConfirmRequest{Caller: owner}, ownerKey)
	require.Equal(t, http.StatusOK, status, string(res))
	var receipt utils.Receipt
	require.NoError(t, json.Unmarshal(res, &receipt))
	require.Len(t, receipt.Transfers, 1)
	assert.Equal(t, to, receipt.Transfers[0].Recipient)
	assert.Equal(t, "5", (*big.Int)(receipt.Transfers[0].Amount).String())

	coOwner := genesis.DevAccounts()[1]
	res, status = httpPost(t, chain, ts.URL+"/treasury/transactions/0/confirmations", &treasury.ConfirmRequest{Caller: coOwner.Address}, coOwner.PrivateKey)
	assert.Equal(t, http.StatusBadRequest, status)
	var revert utils.RevertResponse
	require.NoError(t, json.Unmarshal(res, &revert))
	assert.Equal(t, "Transaction already executed", revert.Error)

	res, status = httpGet(t, ts.URL+"/treasury/accounts/"+to.String())
	require.Equal(t, http.StatusOK, status, string(res))
	var account treasury.Account
	require.NoError(t, json.Unmarshal(res, &account))
	assert.False(t, account.IsOwner)
	assert.Equal(t, uint64(1), account.TransactionCount)
	assert.Equal(t, uint64(1), account.ExecutedCount)
}

func TestTransactionErrors(t *testing.T) {
	ts, chain := initTreasuryServer(t)

	_, status := httpGet(t, ts.URL+"/treasury/transactions/7")
	assert.Equal(t, http.StatusNotFound, status)
	_, status = httpGet(t, ts.URL+"/treasury/transactions/x")
	assert.Equal(t, http.StatusBadRequest, status)
	owner := chain.Owner()
	_, status = httpPost(t, chain, ts.URL+"/treasury/transactions/7/confirmations", &treasury.ConfirmRequest{Caller: owner.Address}, owner.PrivateKey)
	assert.Equal(t, http.StatusNotFound, status)
	_, status = httpPost(t, chain, ts.URL+"/treasury/transactions", map[string]any{"caller": owner.Address}, owner.PrivateKey)
	assert.Equal(t, http.StatusBadRequest, status)
	_, status = httpPost(t, chain, ts.URL+"/treasury/transactions", map[string]any{"caller": owner.Address, "to": owner.Address, "value": "1"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	_, status = httpGet(t, ts.URL+"/treasury/accounts/nope")
	assert.Equal(t, http.StatusBadRequest, status)
}
