// Package quorum implements the read- and write-quorum protocols
// described in §4.4: cross-checking a primary RPC node's answer
// against a set of replicas using a simple majority rule, fanned out
// concurrently with golang.org/x/sync/errgroup rather than polled one
// replica at a time.
package quorum

import (
	"bytes"
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hyperledger/indy-besu-vdr-go/internal/logger"
	"github.com/hyperledger/indy-besu-vdr-go/vdrerrors"
)

var log = logger.New("quorum")

// Required computes ceil((n+1)/2), the majority needed to reach
// quorum across a primary plus n replicas.
func Required(replicaCount int) int {
	total := replicaCount + 1
	return (total + 1) / 2
}

// ReplicaCall invokes one replica and returns the bytes it produced
// (a call result for reads, or an opaque presence marker for writes).
type ReplicaCall func(ctx context.Context) ([]byte, error)

// CheckRead fans `calls` out concurrently and counts how many agree
// byte-for-byte with `primary`. Quorum is reached when the agreeing
// count (including the primary itself) is at least Required(len(calls)).
func CheckRead(ctx context.Context, primary []byte, calls []ReplicaCall) error {
	if len(calls) == 0 {
		return nil
	}
	agreements := make([]bool, len(calls))

	g, gctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		i, call := i, call
		g.Go(func() error {
			result, err := call(gctx)
			if err != nil {
				log.Warn("quorum replica call failed", logger.Int("replica", i), logger.Error(err))
				return nil
			}
			agreements[i] = bytes.Equal(result, primary)
			return nil
		})
	}
	// Replica failures are recorded as disagreement, not propagated:
	// only a context-cancellation error from errgroup itself surfaces.
	if err := g.Wait(); err != nil {
		return vdrerrors.Wrap(vdrerrors.ClientQuorumNotReached, "quorum check aborted", err)
	}

	agreeing := 1 // primary counts toward its own quorum
	for _, ok := range agreements {
		if ok {
			agreeing++
		}
	}
	required := Required(len(calls))
	if agreeing < required {
		return vdrerrors.Newf(vdrerrors.ClientQuorumNotReached, "quorum not reached: %d/%d replicas agree, %d required", agreeing-1, len(calls), required)
	}
	return nil
}

// PollFunc checks one replica for a positive sighting (e.g. "this
// transaction hash is now visible"), returning ok=true on success.
type PollFunc func(ctx context.Context) (bool, error)

// CheckWrite polls each replica up to `retries` times (spaced by
// `interval`) for a positive sighting, counting each sighting toward
// the same majority rule as CheckRead. A timed-out poll counts as
// disagreement, matching §4.4's "timeouts count as disagreements".
func CheckWrite(ctx context.Context, retries int, interval time.Duration, polls []PollFunc) error {
	if len(polls) == 0 {
		return nil
	}
	sightings := make([]bool, len(polls))

	g, gctx := errgroup.WithContext(ctx)
	for i, poll := range polls {
		i, poll := i, poll
		g.Go(func() error {
			for attempt := 0; attempt < retries; attempt++ {
				ok, err := poll(gctx)
				if err == nil && ok {
					sightings[i] = true
					return nil
				}
				select {
				case <-gctx.Done():
					return nil
				case <-time.After(interval):
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return vdrerrors.Wrap(vdrerrors.ClientQuorumNotReached, "write quorum check aborted", err)
	}

	agreeing := 1
	for _, ok := range sightings {
		if ok {
			agreeing++
		}
	}
	required := Required(len(polls))
	if agreeing < required {
		return vdrerrors.Newf(vdrerrors.ClientQuorumNotReached, "write quorum not reached: %d/%d replicas confirmed, %d required", agreeing-1, len(polls), required)
	}
	return nil
}
