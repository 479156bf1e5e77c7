// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testchain sets up an in-memory runtime over the dev genesis for tests.
package testchain

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/standby-warden/warden/api/utils"
	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/genesis"
	"github.com/standby-warden/warden/logdb"
	"github.com/standby-warden/warden/lvldb"
	"github.com/standby-warden/warden/runtime"
	"github.com/standby-warden/warden/test/datagen"
	"github.com/standby-warden/warden/warden"
)

// Chain is a runtime built over the dev genesis, backed by in-memory stores.
type Chain struct {
	db      *lvldb.LevelDB
	logDB   *logdb.LogDB
	rt      *runtime.Runtime
	genesis *genesis.Genesis
}

// NewDefault creates a chain over the dev genesis.
func NewDefault() (*Chain, error) {
	return New(genesis.DevGenesis())
}

// New creates a chain over the given genesis.
func New(gene *genesis.Genesis) (*Chain, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	logDB, err := logdb.NewMem()
	if err != nil {
		db.Close()
		return nil, err
	}
	rt, err := runtime.New(db, logDB)
	if err != nil {
		return nil, err
	}
	if _, err := rt.Bootstrap(context.Background(), gene.ID(), gene.Build); err != nil {
		return nil, fmt.Errorf("failed to build genesis: %w", err)
	}
	return &Chain{db, logDB, rt, gene}, nil
}

func (c *Chain) Runtime() *runtime.Runtime { return c.rt }
func (c *Chain) LogDB() *logdb.LogDB       { return c.logDB }
func (c *Chain) Genesis() *genesis.Genesis { return c.genesis }

// Owner returns the engine owner of the dev genesis.
func (c *Chain) Owner() genesis.DevAccount {
	return genesis.DevAccounts()[0]
}

// Close releases the stores.
func (c *Chain) Close() error {
	if err := c.logDB.Close(); err != nil {
		return err
	}
	return c.db.Close()
}

// SignBlocks creates n random block hashes, indexed from 1, and makes each node sign
// the blocks at the listed positions.
func (c *Chain) SignBlocks(n int, signed map[warden.Address][]int) ([]warden.Bytes32, error) {
	hashes := datagen.RandomHashes(n)
	for node, positions := range signed {
		for _, i := range positions {
			if _, err := c.rt.Sign(context.Background(), node, uint64(i+1), hashes[i]); err != nil {
				return nil, err
			}
		}
	}
	return hashes, nil
}

// CalculateNext computes the epoch after the current one as the engine owner.
func (c *Chain) CalculateNext(chainReward int64, hashes []warden.Bytes32, nodes []warden.Address) (*runtime.Receipt, error) {
	var epoch uint64
	if err := c.rt.View(func(cs *builtin.Contracts) (err error) {
		epoch, err = cs.Rewards.CurrentEpoch()
		return err
	}); err != nil {
		return nil, err
	}
	receipt, _, err := c.rt.CalculateRewards(context.Background(), c.Owner().Address, big.NewInt(chainReward), hashes, nodes, epoch+1)
	return receipt, err
}

// Post sends body as JSON to url, signed with key for the chain's genesis. A nil key
// sends the request unsigned. It returns the response body and status.
func (c *Chain) Post(url string, body any, key *ecdsa.PrivateKey) ([]byte, int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, 0, err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if key != nil {
		if err := utils.SignRequest(req, data, c.genesis.ID(), key, time.Now()); err != nil {
			return nil, 0, err
		}
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()
	out, err := io.ReadAll(res.Body)
	return out, res.StatusCode, err
}
