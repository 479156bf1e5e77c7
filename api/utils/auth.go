// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"bytes"
	"crypto/ecdsa"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/standby-warden/warden/warden"
)

const (
	// SignatureHeader carries the 65 bytes secp256k1 signature of a request, hex encoded.
	SignatureHeader = "x-warden-signature"
	// TimestampHeader carries the unix time, in seconds, the request was signed at.
	TimestampHeader = "x-warden-timestamp"

	// MaxRequestAge bounds the clock distance between signer and server.
	MaxRequestAge = 30 * time.Second

	seenCacheSize = 8192
)

// Unauthorized is responded 401.
var Unauthorized = withStatus(http.StatusUnauthorized)

// CallerRequest is a request body naming the account an operation runs for.
type CallerRequest interface {
	CallerAddress() warden.Address
}

// SigningHash is the hash a caller signs to authorize a request. It binds the
// request to the network, the endpoint and the exact body bytes.
func SigningHash(genesisID warden.Bytes32, method, path string, timestamp int64, body []byte) warden.Bytes32 {
	return warden.Keccak256(
		genesisID.Bytes(),
		[]byte(method), []byte{0},
		[]byte(path), []byte{0},
		[]byte(strconv.FormatInt(timestamp, 10)), []byte{0},
		body,
	)
}

// SignRequest sets the signature headers of req, whose body is body, with key.
func SignRequest(req *http.Request, body []byte, genesisID warden.Bytes32, key *ecdsa.PrivateKey, now time.Time) error {
	ts := now.Unix()
	hash := SigningHash(genesisID, req.Method, req.URL.Path, ts, body)
	sig, err := crypto.Sign(hash.Bytes(), key)
	if err != nil {
		return errors.Wrap(err, "sign request")
	}
	req.Header.Set(TimestampHeader, strconv.FormatInt(ts, 10))
	req.Header.Set(SignatureHeader, hexutil.Encode(sig))
	return nil
}

// Authenticator verifies signed requests. A signed request is accepted once.
type Authenticator struct {
	genesisID warden.Bytes32
	now       func() time.Time
	seen      *lru.Cache
}

func NewAuthenticator(genesisID warden.Bytes32) *Authenticator {
	seen, _ := lru.New(seenCacheSize)
	return &Authenticator{
		genesisID: genesisID,
		now:       time.Now,
		seen:      seen,
	}
}

// Signer recovers the account that signed req over body.
func (a *Authenticator) Signer(req *http.Request, body []byte) (warden.Address, error) {
	rawTS := req.Header.Get(TimestampHeader)
	rawSig := req.Header.Get(SignatureHeader)
	if rawTS == "" || rawSig == "" {
		return warden.Address{}, Unauthorized(errors.New("request not signed"))
	}
	ts, err := strconv.ParseInt(rawTS, 10, 64)
	if err != nil {
		return warden.Address{}, Unauthorized(errors.WithMessage(err, TimestampHeader))
	}
	if age := a.now().Sub(time.Unix(ts, 0)); age > MaxRequestAge || age < -MaxRequestAge {
		return warden.Address{}, Unauthorized(errors.New("request expired"))
	}
	sig, err := hexutil.Decode(rawSig)
	if err != nil {
		return warden.Address{}, Unauthorized(errors.WithMessage(err, SignatureHeader))
	}
	if len(sig) != crypto.SignatureLength {
		return warden.Address{}, Unauthorized(errors.Errorf("%v: want %d bytes, got %d", SignatureHeader, crypto.SignatureLength, len(sig)))
	}

	hash := SigningHash(a.genesisID, req.Method, req.URL.Path, ts, body)
	pub, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		return warden.Address{}, Unauthorized(errors.WithMessage(err, "recover signer"))
	}
	if seen, _ := a.seen.ContainsOrAdd(hash, ts); seen {
		return warden.Address{}, Unauthorized(errors.New("request already served"))
	}
	return warden.Address(crypto.PubkeyToAddress(*pub)), nil
}

// ParseJSON decodes the signed body of req into v and checks that v names its signer as caller.
func (a *Authenticator) ParseJSON(req *http.Request, v CallerRequest) error {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return BadRequest(errors.WithMessage(err, "body"))
	}
	signer, err := a.Signer(req, body)
	if err != nil {
		return err
	}
	if err := ParseJSON(bytes.NewReader(body), v); err != nil {
		return BadRequest(errors.WithMessage(err, "body"))
	}
	if caller := v.CallerAddress(); caller != signer {
		return Forbidden(errors.Errorf("caller %v is not the signer %v", caller, signer))
	}
	return nil
}
