// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standby-warden/warden/warden"
)

type callerBody struct {
	Caller warden.Address `json:"caller"`
	N      int            `json:"n"`
}

func (b *callerBody) CallerAddress() warden.Address { return b.Caller }

func statusOf(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.status
	}
	return 0
}

func TestAuthenticator(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := warden.Address(crypto.PubkeyToAddress(key.PublicKey))
	genesisID := warden.Blake2b([]byte("genesis"))
	now := time.Unix(1_700_000_000, 0)

	auth := NewAuthenticator(genesisID)
	auth.now = func() time.Time { return now }

	newRequest := func(body string, signedAt time.Time, id warden.Bytes32) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/accounts/transfers", bytes.NewBufferString(body))
		require.NoError(t, SignRequest(req, []byte(body), id, key, signedAt))
		return req
	}
	body := `{"caller":"` + addr.String() + `","n":1}`

	var v callerBody
	require.NoError(t, auth.ParseJSON(newRequest(body, now, genesisID), &v))
	assert.Equal(t, addr, v.Caller)
	assert.Equal(t, 1, v.N)

	t.Run("replay", func(t *testing.T) {
		err := auth.ParseJSON(newRequest(body, now, genesisID), &callerBody{})
		assert.Equal(t, http.StatusUnauthorized, statusOf(err))
	})
	t.Run("expired", func(t *testing.T) {
		err := auth.ParseJSON(newRequest(body, now.Add(-MaxRequestAge-time.Second), genesisID), &callerBody{})
		assert.Equal(t, http.StatusUnauthorized, statusOf(err))
		err = auth.ParseJSON(newRequest(body, now.Add(MaxRequestAge+time.Second), genesisID), &callerBody{})
		assert.Equal(t, http.StatusUnauthorized, statusOf(err))
	})
	t.Run("unsigned", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/accounts/transfers", bytes.NewBufferString(body))
		assert.Equal(t, http.StatusUnauthorized, statusOf(auth.ParseJSON(req, &callerBody{})))
	})
	t.Run("short signature", func(t *testing.T) {
		req := newRequest(`{"caller":"`+addr.String()+`","n":2}`, now, genesisID)
		req.Header.Set(SignatureHeader, "0x0102")
		assert.Equal(t, http.StatusUnauthorized, statusOf(auth.ParseJSON(req, &callerBody{})))
	})
	t.Run("tampered body", func(t *testing.T) {
		req := newRequest(`{"caller":"`+addr.String()+`","n":3}`, now, genesisID)
		tampered := `{"caller":"` + addr.String() + `","n":300}`
		req.Body = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tampered)).Body
		assert.Equal(t, http.StatusForbidden, statusOf(auth.ParseJSON(req, &callerBody{})))
	})
	t.Run("other network", func(t *testing.T) {
		req := newRequest(`{"caller":"`+addr.String()+`","n":4}`, now, warden.Blake2b([]byte("other")))
		assert.Equal(t, http.StatusForbidden, statusOf(auth.ParseJSON(req, &callerBody{})))
	})
	t.Run("other caller", func(t *testing.T) {
		other := warden.BytesToAddress([]byte("treasury"))
		req := newRequest(`{"caller":"`+other.String()+`","n":5}`, now, genesisID)
		assert.Equal(t, http.StatusForbidden, statusOf(auth.ParseJSON(req, &callerBody{})))
	})
	t.Run("bad body", func(t *testing.T) {
		req := newRequest(`{"caller":"`+addr.String()+`","x":6}`, now, genesisID)
		assert.Equal(t, http.StatusBadRequest, statusOf(auth.ParseJSON(req, &callerBody{})))
	})
}
