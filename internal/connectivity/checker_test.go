package connectivity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raulserranomena/QuakeReport/internal/observability"
)

type failingDialer struct {
	calls int
}

func (d *failingDialer) DialContext(_ context.Context, _, _ string) (net.Conn, error) {
	d.calls++
	return nil, errors.New("network is unreachable")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDialChecker_Online(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	metrics := observability.NewMetricsForTesting()
	c := NewDialChecker(ln.Addr().String(), time.Second, testLogger(), metrics)

	assert.True(t, c.Active(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ConnectivityChecks.WithLabelValues("online")))
}

func TestDialChecker_Offline(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	c := NewDialChecker("earthquake.usgs.gov:443", time.Second, testLogger(), metrics)
	d := &failingDialer{}
	c.dialer = d

	assert.False(t, c.Active(context.Background()))
	assert.Equal(t, 1, d.calls, "a check must not retry")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ConnectivityChecks.WithLabelValues("offline")))
}

func TestDialChecker_ClosedPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := NewDialChecker(addr, 500*time.Millisecond, testLogger(), observability.NewMetricsForTesting())
	assert.False(t, c.Active(context.Background()))
}

func TestStatic(t *testing.T) {
	assert.True(t, Static(true).Active(context.Background()))
	assert.False(t, Static(false).Active(context.Background()))
}
