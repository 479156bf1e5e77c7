// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import "github.com/standby-warden/warden/metrics"

var (
	metricQueries = metrics.LazyLoadCounterVec("logdb_queries_count", []string{"table"})
	metricRecords = metrics.LazyLoadCounterVec("logdb_records_count", []string{"table"})
)
