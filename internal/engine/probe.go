package engine

import (
	"context"
	"net"
	"time"

	"github.com/tonhe/opsdeck/internal/config"
	"golang.org/x/sync/errgroup"
)

// Prober checks whether a single address is reachable.
type Prober interface {
	Probe(ctx context.Context, address string) ProbeResult
}

// TCPProber probes by opening (and immediately closing) a TCP connection.
type TCPProber struct {
	Timeout time.Duration
}

// NewTCPProber returns a TCPProber using ProbeTimeout.
func NewTCPProber() *TCPProber {
	return &TCPProber{Timeout: ProbeTimeout}
}

// Probe dials address. A malformed address is reported offline without
// dialing.
func (p *TCPProber) Probe(ctx context.Context, address string) ProbeResult {
	if _, _, err := net.SplitHostPort(address); err != nil {
		return ProbeResult{}
	}
	d := net.Dialer{Timeout: p.Timeout}
	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return ProbeResult{}
	}
	elapsed := time.Since(start)
	conn.Close()
	return ProbeResult{Online: true, Latency: elapsed}
}

// ProbeAll probes every target concurrently and returns results in target
// order. The whole call takes about as long as the slowest probe. If ctx is
// cancelled while probing, the results are incomplete and ctx's error is
// returned alongside them.
func ProbeAll(ctx context.Context, prober Prober, targets []config.Target) ([]ProbeResult, error) {
	results := make([]ProbeResult, len(targets))
	if len(targets) == 0 {
		return results, nil
	}
	var g errgroup.Group
	g.SetLimit(len(targets))
	for i, t := range targets {
		i, addr := i, t.Address
		g.Go(func() error {
			results[i] = prober.Probe(ctx, addr)
			return ctx.Err()
		})
	}
	err := g.Wait()
	return results, err
}
