// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts_test

import (
	"crypto/ecdsa"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standby-warden/warden/api/accounts"
	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/test/datagen"
	"github.com/standby-warden/warden/test/testchain"
	"github.com/standby-warden/warden/warden"
)

func TestAccounts(t *testing.T) {
	chain, err := testchain.NewDefault()
	require.NoError(t, err)
	defer chain.Close()

	router := mux.NewRouter()
	accounts.New(chain.Runtime(), utils.NewAuthenticator(chain.Genesis().ID())).Mount(router, "/accounts")
	ts := httptest.NewServer(router)
	defer ts.Close()

	getAccount := func(addr warden.Address) *accounts.Account {
		res, err := http.Get(ts.URL + "/accounts/" + addr.String()) //#nosec G107
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)
		var acc accounts.Account
		require.NoError(t, json.NewDecoder(res.Body).Decode(&acc))
		return &acc
	}
	transfer := func(req *accounts.TransferRequest, key *ecdsa.PrivateKey) int {
		_, status, err := chain.Post(ts.URL+"/accounts/transfers", req, key)
		require.NoError(t, err)
		return status
	}
	owner := chain.Owner()

	treasury := getAccount(builtin.Treasury.Address)
	assert.Equal(t, "Treasury", treasury.Contract)

	to := datagen.RandomAddress()
	assert.Equal(t, 0, (*big.Int)(getAccount(to).Balance).Sign())

	amount := (*math.HexOrDecimal256)(big.NewInt(42))
	assert.Equal(t, http.StatusOK, transfer(&accounts.TransferRequest{Caller: owner.Address, To: to, Amount: amount}, owner.PrivateKey))
	assert.Equal(t, "42", (*big.Int)(getAccount(to).Balance).String())
	assert.Empty(t, getAccount(to).Contract)

	poor, poorKey := datagen.RandomAccount()
	too := (*math.HexOrDecimal256)(big.NewInt(43))
	assert.Equal(t, http.StatusBadRequest, transfer(&accounts.TransferRequest{Caller: poor, To: owner.Address, Amount: too}, poorKey))
	assert.Equal(t, http.StatusBadRequest, transfer(&accounts.TransferRequest{Caller: poor, To: owner.Address}, poorKey))

	res, err := http.Get(ts.URL + "/accounts/0xzz") //#nosec G107
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestTransferRequiresSigner(t *testing.T) {
	chain, err := testchain.NewDefault()
	require.NoError(t, err)
	defer chain.Close()

	router := mux.NewRouter()
	accounts.New(chain.Runtime(), utils.NewAuthenticator(chain.Genesis().ID())).Mount(router, "/accounts")
	ts := httptest.NewServer(router)
	defer ts.Close()

	balance := func(addr warden.Address) *big.Int {
		bal, err := chain.Runtime().Balance(addr)
		require.NoError(t, err)
		return bal
	}
	owner := chain.Owner()
	thief, thiefKey := datagen.RandomAccount()
	funds := balance(builtin.Treasury.Address)
	amount := (*math.HexOrDecimal256)(big.NewInt(1))

	// naming the treasury as caller takes its key, which nobody holds
	drain := &accounts.TransferRequest{Caller: builtin.Treasury.Address, To: thief, Amount: amount}
	_, status, err := chain.Post(ts.URL+"/accounts/transfers", drain, thiefKey)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, status)
	_, status, err = chain.Post(ts.URL+"/accounts/transfers", drain, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)

	// someone else's funds
	steal := &accounts.TransferRequest{Caller: owner.Address, To: thief, Amount: amount}
	_, status, err = chain.Post(ts.URL+"/accounts/transfers", steal, thiefKey)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, status)

	assert.Equal(t, funds, balance(builtin.Treasury.Address))
	assert.Equal(t, 0, balance(thief).Sign())
}
