// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/standby-warden/warden/warden"
)

// DevAccount account for development.
type DevAccount struct {
	Address    warden.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for solo mode.
// The first one owns the engine, the first three own the treasury along with the engine.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
		"88d2d80b12b92feaa0da6d62309463d20408157723f2d7e799b6a74ead9a673b",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{warden.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// DevConfig returns the genesis config for solo mode.
func DevConfig() *Config {
	accs := DevAccounts()
	cfg := &Config{
		Ledger: LedgerConfig{EpochNumber: 1},
		Rewards: RewardsConfig{
			Owner:               accs[0].Address.String(),
			SlashWindow:         4,
			RewardTransferEpoch: 1,
			InitialEpoch:        1,
		},
		Treasury: TreasuryConfig{
			Owners:   []string{EngineAlias, accs[0].Address.String(), accs[1].Address.String()},
			Required: 1,
			// 1 million units of 10^18
			Funds: "1000000000000000000000000",
		},
	}
	for _, acc := range accs {
		cfg.Accounts = append(cfg.Accounts, Account{
			Address: acc.Address.String(),
			Balance: "1000000000000000000000",
		})
	}
	return cfg
}

// DevGenesis create genesis for solo mode.
func DevGenesis() *Genesis {
	g, err := New("devnet", DevConfig())
	if err != nil {
		panic(err)
	}
	return g
}
