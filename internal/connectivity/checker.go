// Package connectivity answers whether the network is usable right now.
package connectivity

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/raulserranomena/QuakeReport/internal/observability"
)

// Checker reports current network reachability. Implementations answer
// synchronously and never retry or poll.
type Checker interface {
	Active(ctx context.Context) bool
}

// Dialer opens network connections; *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// DialChecker reports the network as active when a TCP connection to Addr
// can be opened within Timeout.
type DialChecker struct {
	addr    string
	timeout time.Duration
	dialer  Dialer
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewDialChecker creates a checker probing addr (host:port).
func NewDialChecker(addr string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *DialChecker {
	return &DialChecker{
		addr:    addr,
		timeout: timeout,
		dialer:  &net.Dialer{},
		metrics: metrics,
		logger:  logger,
	}
}

// Active dials the probe address once.
func (c *DialChecker) Active(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		c.logger.Info("network unreachable", "addr", c.addr, "error", err)
		c.metrics.ConnectivityChecks.WithLabelValues("offline").Inc()
		return false
	}
	_ = conn.Close()

	c.metrics.ConnectivityChecks.WithLabelValues("online").Inc()
	return true
}

// Static is a Checker with a fixed answer.
type Static bool

// Active returns the fixed answer.
func (s Static) Active(context.Context) bool { return bool(s) }
