// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"time"

	"github.com/standby-warden/warden/builtin"
	"github.com/standby-warden/warden/builtin/reverts"
	"github.com/standby-warden/warden/builtin/rewards"
	"github.com/standby-warden/warden/builtin/solidity"
	"github.com/standby-warden/warden/metrics"
)

var (
	metricOpCount              = metrics.LazyLoadCounterVec("op_count", []string{"op", "status"})
	metricOpDuration           = metrics.LazyLoadHistogramVec("op_duration_ms", []string{"op"}, metrics.BucketOps)
	metricEpochsComputed       = metrics.LazyLoadCounter("epochs_computed_count")
	metricRewardsDistributed   = metrics.LazyLoadCounter("rewards_distributed")
	metricSlashedNodes         = metrics.LazyLoadGauge("slashed_nodes")
	metricTreasuryTransactions = metrics.LazyLoadCounterVec("treasury_transactions_count", []string{"status"})
)

func recordOp(op string, err error, elapsed time.Duration) {
	status := "ok"
	switch {
	case err == nil:
	case reverts.IsRevertErr(err):
		status = "revert"
	default:
		status = "error"
	}
	metricOpCount().AddWithLabel(1, map[string]string{"op": op, "status": status})
	metricOpDuration().ObserveWithLabels(elapsed.Milliseconds(), map[string]string{"op": op})
}

func recordEpoch(result *rewards.Result) {
	metricEpochsComputed().Add(1)
	if d := result.Distributed(); d.IsInt64() {
		metricRewardsDistributed().Add(d.Int64())
	}
	metricSlashedNodes().Set(int64(result.SlashedCount()))
}

// treasuryActivity counts the treasury transactions submitted and executed by events,
// whichever operation made them.
func treasuryActivity(events []*solidity.Event) (created, executed int64) {
	for _, ev := range events {
		if ev.Address != builtin.Treasury.Address {
			continue
		}
		switch ev.Name {
		case "Submission":
			created++
		case "Execution":
			executed++
		}
	}
	return
}

func recordTreasury(events []*solidity.Event) {
	created, executed := treasuryActivity(events)
	if created > 0 {
		metricTreasuryTransactions().AddWithLabel(created, map[string]string{"status": "created"})
	}
	if executed > 0 {
		metricTreasuryTransactions().AddWithLabel(executed, map[string]string{"status": "executed"})
	}
}
