// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/standby-warden/warden/logdb"
)

// Range bounds the operation sequence numbers of queried logs. A nil To means no upper bound.
type Range struct {
	From uint64  `json:"from"`
	To   *uint64 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// ConvertRange converts a query range, nil meaning all.
func ConvertRange(r *Range) (*logdb.Range, error) {
	if r == nil {
		return nil, nil
	}
	if r.From > math.MaxInt64 {
		return nil, errors.New("range.from: out of range")
	}
	if r.To == nil {
		return &logdb.Range{From: r.From, To: math.MaxInt64}, nil
	}
	if *r.To < r.From {
		return nil, errors.New("range.to: must not be less than range.from")
	}
	to := *r.To
	if to > math.MaxInt64 {
		to = math.MaxInt64
	}
	return &logdb.Range{From: r.From, To: to}, nil
}

// ConvertOptions applies limit as the default, and maximum, number of logs in a page.
func ConvertOptions(opts *Options, limit uint64) (*logdb.Options, error) {
	if opts == nil {
		return &logdb.Options{Limit: limit}, nil
	}
	if opts.Limit > limit {
		return nil, fmt.Errorf("options.limit exceeds the maximum allowed value of %d", limit)
	}
	if opts.Offset > math.MaxInt64 {
		return nil, errors.New("options.offset: out of range")
	}
	l := opts.Limit
	if l == 0 {
		l = limit
	}
	return &logdb.Options{Offset: opts.Offset, Limit: l}, nil
}

// ConvertOrder parses the order, ascending by default.
func ConvertOrder(order string) (logdb.Order, error) {
	switch logdb.Order(order) {
	case "", logdb.ASC:
		return logdb.ASC, nil
	case logdb.DESC:
		return logdb.DESC, nil
	}
	return "", fmt.Errorf("order: unknown %q", order)
}
