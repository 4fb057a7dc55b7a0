// Copyright (C) 2025 indy-besu-vdr-go contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vdr"

// Registry is the collector registry every metric in this package
// registers against, and the one Handler/StartServer serve.
var Registry = prometheus.NewRegistry()

var (
	// RPCCalls tracks JSON-RPC calls issued to ledger nodes.
	RPCCalls = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "calls_total",
			Help:      "Total number of JSON-RPC calls issued to ledger nodes",
		},
		[]string{"method", "outcome"}, // eth_call/eth_sendRawTransaction/..., ok/error
	)

	// QuorumChecks tracks the outcome of read/write quorum checks.
	QuorumChecks = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quorum",
			Name:      "agreement_total",
			Help:      "Total number of quorum checks by kind and outcome",
		},
		[]string{"kind", "outcome"}, // read/write, ok/failed
	)

	// TxSubmitDuration tracks how long eth_sendRawTransaction took to
	// return a transaction hash.
	TxSubmitDuration = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tx",
			Name:      "submit_duration_seconds",
			Help:      "Duration of eth_sendRawTransaction calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
