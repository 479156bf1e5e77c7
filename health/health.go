// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

type Clock struct {
	Offset    string     `json:"offset"`
	CheckedAt *time.Time `json:"checkedAt"`
}

type Status struct {
	Healthy      bool   `json:"healthy"`
	Bootstrapped bool   `json:"bootstrapped"`
	Seq          uint64 `json:"seq"`
	Clock        *Clock `json:"clock"`
}

// Health tracks whether the instance can be trusted with operations: the genesis
// is applied and the local clock, which timestamps receipts, is close to real time.
type Health struct {
	lock           sync.RWMutex
	maxClockOffset time.Duration
	seq            func() uint64
	bootstrapped   bool
	clockOffset    time.Duration
	clockCheckedAt time.Time
}

// New creates a health tracker. seq reports the last committed operation.
func New(maxClockOffset time.Duration, seq func() uint64) *Health {
	return &Health{
		maxClockOffset: maxClockOffset,
		seq:            seq,
	}
}

func (h *Health) BootstrapStatus(bootstrapped bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.bootstrapped = bootstrapped
}

// ClockOffset records the result of a clock check.
func (h *Health) ClockOffset(offset time.Duration) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.clockOffset = offset
	h.clockCheckedAt = time.Now()
}

func (h *Health) Status() (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	status := &Status{
		Bootstrapped: h.bootstrapped,
	}
	if h.seq != nil {
		status.Seq = h.seq()
	}

	// an unchecked clock is trusted
	clockOK := true
	if !h.clockCheckedAt.IsZero() {
		checkedAt := h.clockCheckedAt
		status.Clock = &Clock{
			Offset:    h.clockOffset.String(),
			CheckedAt: &checkedAt,
		}
		offset := h.clockOffset
		if offset < 0 {
			offset = -offset
		}
		clockOK = offset <= h.maxClockOffset
	}
	status.Healthy = h.bootstrapped && clockOK
	return status, nil
}
